package credential

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"gatherly/internal/pkg/errs"
)

// maxBodyBytes caps how much of a token response is read.
const maxBodyBytes = 1 << 20

// tokenResponse is the wire shape of both success and error bodies.
type tokenResponse struct {
	Token      string `json:"token"`
	Identity   string `json:"identity"`
	RoomName   string `json:"roomName"`
	LiveKitURL string `json:"LIVEKIT_URL"`
	Error      string `json:"error"`
}

// isMarkup reports whether the content type announces an HTML document.
func isMarkup(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// Classify turns a token endpoint response into a Credential or one of the credential
// errors. Precedence: content type, then status, then body shape.
func Classify(res *http.Response) (*Credential, error) {
	if isMarkup(res.Header.Get("Content-Type")) {
		return nil, errs.NewError(errs.ErrTokenEndpointMissing)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, errs.Wrap(errs.ErrTokenNetwork, err, err.Error())
	}

	var payload tokenResponse
	decodeErr := decodeObject(body, &payload)

	if !isSuccess(res.StatusCode) {
		if decodeErr == nil && strings.TrimSpace(payload.Error) != "" {
			return nil, errs.NewError(errs.ErrTokenServer, payload.Error)
		}
		return nil, errs.NewError(errs.ErrTokenHTTP, res.StatusCode)
	}

	if decodeErr != nil {
		return nil, errs.Wrap(errs.ErrTokenMissing, decodeErr)
	}
	if payload.Token == "" {
		return nil, errs.NewError(errs.ErrTokenMissing)
	}

	return &Credential{
		Token:     payload.Token,
		Identity:  payload.Identity,
		RoomName:  payload.RoomName,
		ServerURL: payload.LiveKitURL,
	}, nil
}

// decodeObject requires body to be a single JSON object.
func decodeObject(body []byte, dst *tokenResponse) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errors.New("response body is not a JSON object")
	}
	return json.Unmarshal(trimmed, dst)
}
