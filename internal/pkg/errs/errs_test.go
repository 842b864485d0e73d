package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatherly/internal/pkg/errs"
)

func TestNewError_FormatsDetails(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		details []any
		message string
	}{
		{"server_message", errs.ErrTokenServer, []any{"room is locked"}, "room is locked"},
		{"http_status", errs.ErrTokenHTTP, []any{502}, "HTTP error! status: 502"},
		{"network", errs.ErrTokenNetwork, []any{"connection refused"}, "Cannot connect to server: connection refused"},
		{"no_placeholder_ignores_details", errs.ErrTokenMissing, []any{"extra"}, "No token received from server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customErr := errs.NewError(tt.code, tt.details...)
			assert.Equal(t, tt.code, customErr.Code)
			assert.Equal(t, tt.message, customErr.Message)
		})
	}
}

func TestNewError_DefaultsStatusToOK(t *testing.T) {
	customErr := errs.NewError(errs.ErrTokenEndpointMissing)
	assert.Equal(t, http.StatusOK, customErr.Status)

	customErr = errs.NewError(errs.ErrTabNotFound)
	assert.Equal(t, http.StatusNotFound, customErr.Status)
}

func TestNewError_UnknownCodeFallsBack(t *testing.T) {
	customErr := errs.NewError(999999)
	assert.Equal(t, errs.ErrUnknown, customErr.Code)
	assert.Equal(t, http.StatusInternalServerError, customErr.Status)
}

func TestNewError_TemplateIsNotMutated(t *testing.T) {
	_ = errs.NewError(errs.ErrTokenHTTP, 500)
	again := errs.NewError(errs.ErrTokenHTTP, 404)
	assert.Equal(t, "HTTP error! status: 404", again.Message)
}

func TestWrapAndAs(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	wrapped := fmt.Errorf("start meeting: %w", errs.Wrap(errs.ErrTokenNetwork, cause, cause.Error()))

	customErr := errs.As(wrapped)
	require.NotNil(t, customErr)
	assert.Equal(t, errs.ErrTokenNetwork, customErr.Code)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, errs.HasCode(wrapped, errs.ErrTokenNetwork))
	assert.False(t, errs.HasCode(wrapped, errs.ErrTokenHTTP))
	assert.False(t, errs.HasCode(cause, errs.ErrTokenNetwork))
	assert.Nil(t, errs.As(nil))
}
