package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the claims of a Gatherly identity token.
// It carries the profile snapshot the meeting workflow needs, so restoring the
// identity session on a request never needs a directory lookup.
type Payload struct {
	jwt.StandardClaims

	// UID is the stable account identifier.
	UID string `json:"uid"`

	// DisplayName, Email and PhotoURL mirror the optional profile fields; empty means absent.
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`

	// Provider records how the identity signed in ("password" or "google").
	Provider string `json:"provider"`
}
