/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates JSON body binding with strict decoding and size limits so handlers
receive either a populated struct or a ready-to-send *errs.CustomError.
*/
package req

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"gatherly/internal/pkg/errs"
)

// MaxJSONBodySize caps JSON request bodies (64 KB); the workflow payloads are tiny.
const MaxJSONBodySize int64 = 64 << 10

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	return decode(io.LimitReader(r.Body, MaxJSONBodySize), dst)
}

// BindOptionalJSON behaves like BindJSON but accepts an empty body, leaving dst untouched.
func BindOptionalJSON(r *http.Request, dst any) *errs.CustomError {
	if r.Body == nil {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxJSONBodySize))
	if err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	return decode(bytes.NewReader(body), dst)
}

func decode(body io.Reader, dst any) *errs.CustomError {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
