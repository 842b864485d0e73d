/*
Package resp provides helper functions for constructing and sending standardized HTTP JSON responses.

It defines a unified JSON response structure, including a business code, message, and optional data,
and offers convenient wrappers for both success and error responses.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"gatherly/internal/pkg/errs"
	"gatherly/internal/pkg/logx"
)

// JSONResponse defines the standardized JSON response structure returned by the application to clients.
type JSONResponse struct {
	// Code is the business status code (0 for success, others for specific errors, see errs package).
	Code int `json:"code"`

	// Message is the client-friendly status description or error message.
	Message string `json:"message"`

	// Data is the optional response payload. Error responses may carry data too
	// (e.g. the tab view after a failed meeting start).
	Data any `json:"data,omitempty"`
}

// RespondJSON sets the JSON headers and writes payload with httpStatus.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-store")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends a successful HTTP response (HTTP 200 OK).
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	res := JSONResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	}
	RespondJSON(w, r, http.StatusOK, res)
}

// RespondError sends an HTTP response containing custom error information.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	RespondErrorWithData(w, r, customErr, nil)
}

// RespondErrorWithData is RespondError with an attached payload.
func RespondErrorWithData(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError, data any) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	if customErr.Cause != nil {
		zerolog.Ctx(r.Context()).Warn().
			Err(customErr.Cause).
			Int("error_code", customErr.Code).
			Msg("Request failed with underlying cause")
	}

	res := JSONResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
		Data:    data,
	}
	RespondJSON(w, r, customErr.Status, res)
}

// RespondErr maps an arbitrary error onto the envelope. Errors that are not
// *errs.CustomError become ErrUnknown.
func RespondErr(w http.ResponseWriter, r *http.Request, err error) {
	customErr := errs.As(err)
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown, err)
	}
	RespondError(w, r, customErr)
}
