/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Tab, Modal and Meeting Workflow Errors
const (
	// ErrTabNotFound indicates that the referenced browser tab is unknown or has expired.
	ErrTabNotFound = 2101

	// ErrInvalidTransition indicates that a modal action is not valid in the current modal state.
	ErrInvalidTransition = 2102

	// ErrInvalidAuthMode indicates that an auth modal was requested with an unknown mode.
	ErrInvalidAuthMode = 2103

	// ErrMeetingIDRequired indicates that a join request did not carry a meeting identifier.
	ErrMeetingIDRequired = 2201

	// ErrNoPendingSession indicates that the room view found no session handoff for the tab.
	ErrNoPendingSession = 2202
)

// 3xxx: Identity and Session Errors
const (
	// ErrIdentityRequired indicates that an action needs a signed-in identity and none is present.
	ErrIdentityRequired = 3001

	// ErrInvalidEmail indicates that the supplied email address is malformed.
	ErrInvalidEmail = 3002

	// ErrInvalidPassword indicates that the supplied password does not meet the length policy.
	ErrInvalidPassword = 3003

	// ErrDisplayNameRequired indicates that a sign-up request omitted the display name.
	ErrDisplayNameRequired = 3004

	// ErrAccountExists indicates that an account with the given email already exists.
	ErrAccountExists = 3005

	// ErrInvalidCredentials indicates that the email/password pair did not match.
	ErrInvalidCredentials = 3006

	// ErrProviderUnavailable indicates that a federated sign-in provider is not configured.
	ErrProviderUnavailable = 3007

	// ErrProviderRejected indicates that the federated provider rejected the supplied credential.
	ErrProviderRejected = 3008

	// ErrUnauthorized indicates that the caller must sign in first.
	ErrUnauthorized = 3009
)

// 4xxx: Credential Exchange Errors
const (
	// ErrTokenEndpointMissing indicates that the token endpoint answered with markup,
	// which means it is absent or misrouted.
	ErrTokenEndpointMissing = 4001

	// ErrTokenServer indicates a non-success status with a JSON error message.
	ErrTokenServer = 4002

	// ErrTokenHTTP indicates a non-success status without a usable error message.
	ErrTokenHTTP = 4003

	// ErrTokenMissing indicates a success status whose body carried no token.
	ErrTokenMissing = 4004

	// ErrTokenNetwork indicates that the request could not be completed at all.
	ErrTokenNetwork = 4005
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrStorageFailed indicates that the session handoff store could not be written or read.
	ErrStorageFailed = 5001
)
