/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Tab, Modal and Meeting Workflow Errors
	ErrTabNotFound:       {Code: ErrTabNotFound, Message: "This page has expired. Please reload.", Status: http.StatusNotFound},
	ErrInvalidTransition: {Code: ErrInvalidTransition, Message: "That action is not available right now.", Status: http.StatusConflict},
	ErrInvalidAuthMode:   {Code: ErrInvalidAuthMode, Message: "Unknown sign-in mode.", Status: http.StatusBadRequest},
	ErrMeetingIDRequired: {Code: ErrMeetingIDRequired, Message: "Please enter a meeting ID.", Status: http.StatusBadRequest},
	ErrNoPendingSession:  {Code: ErrNoPendingSession, Message: "No meeting session found. Please start or join a meeting again.", Status: http.StatusNotFound},

	// 3xxx: Identity and Session Errors
	ErrIdentityRequired:    {Code: ErrIdentityRequired, Message: "Please sign in to start a meeting"},
	ErrInvalidEmail:        {Code: ErrInvalidEmail, Message: "Please enter a valid email address."},
	ErrInvalidPassword:     {Code: ErrInvalidPassword, Message: "Minimum 6 characters required"},
	ErrDisplayNameRequired: {Code: ErrDisplayNameRequired, Message: "Please enter your full name."},
	ErrAccountExists:       {Code: ErrAccountExists, Message: "An account with this email already exists."},
	ErrInvalidCredentials:  {Code: ErrInvalidCredentials, Message: "Incorrect email or password."},
	ErrProviderUnavailable: {Code: ErrProviderUnavailable, Message: "Google sign-in is not available."},
	ErrProviderRejected:    {Code: ErrProviderRejected, Message: "Google sign-in failed. Please try again."},
	ErrUnauthorized:        {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 4xxx: Credential Exchange Errors
	ErrTokenEndpointMissing: {Code: ErrTokenEndpointMissing, Message: "API route not found. Please check that the token endpoint exists."},
	ErrTokenServer:          {Code: ErrTokenServer, Message: "%s"},
	ErrTokenHTTP:            {Code: ErrTokenHTTP, Message: "HTTP error! status: %d"},
	ErrTokenMissing:         {Code: ErrTokenMissing, Message: "No token received from server"},
	ErrTokenNetwork:         {Code: ErrTokenNetwork, Message: "Cannot connect to server: %s"},

	// 5xxx: Internal System Errors
	ErrUnknown:       {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStorageFailed: {Code: ErrStorageFailed, Message: "Could not save the meeting session. Please try again.", Status: http.StatusInternalServerError},
}
