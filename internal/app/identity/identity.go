/*
Package identity models the signed-in user as the meeting workflow sees it and the
session object through which sign-in, sign-up, Google sign-in and sign-out happen.

The workflow never looks identity up on its own: a *Session (or anything satisfying
Current) is handed to it explicitly.
*/
package identity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Identity is the profile snapshot of a signed-in user. Empty optional fields mean absent.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// Current is satisfied by anything that can report the signed-in identity, or nil.
type Current interface {
	Current() *Identity
}

// uidLabelPrefix is how many leading uid characters make up the fallback label.
const uidLabelPrefix = 8

// Label is the participant name presented to the credential backend:
// display name, else the local part of the email, else "User-" plus a uid prefix.
func (i *Identity) Label() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}

	if local, _, _ := strings.Cut(i.Email, "@"); local != "" {
		return local
	}

	uid := i.UID
	if len(uid) > uidLabelPrefix {
		uid = uid[:uidLabelPrefix]
	}
	return "User-" + uid
}

// Initials returns the avatar initials: first and last name initials, a single
// initial for one-word names, the email's first letter, or "U".
func (i *Identity) Initials() string {
	names := strings.Fields(i.DisplayName)

	switch {
	case len(names) >= 2:
		return upperFirst(names[0]) + upperFirst(names[len(names)-1])
	case len(names) == 1:
		return upperFirst(names[0])
	case i.Email != "":
		return upperFirst(i.Email)
	default:
		return "U"
	}
}

func upperFirst(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r))
}

// Snapshot returns a copy so callers can hold it past later session changes.
func (i *Identity) Snapshot() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
