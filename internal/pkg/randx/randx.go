/*
Package randx provides functions for generating cryptographically secure random identifiers.

It is used to generate fixed-length base-36 meeting identifiers and UUID tab and
notification identifiers.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base36Chars is the lowercase base-36 alphabet (0-9, a-z).
	Base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

	// Base36Len is the number of characters in Base36Chars.
	Base36Len = int64(len(Base36Chars))

	// MeetingIDLength is the fixed length of a generated meeting identifier.
	MeetingIDLength = 9
)

// MeetingID draws a MeetingIDLength base-36 identifier from crypto/rand.
// No uniqueness check is performed.
func MeetingID() (string, error) {
	result := make([]byte, MeetingIDLength)

	for i := 0; i < MeetingIDLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base36Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for meeting id: %w", err)
		}

		result[i] = Base36Chars[num.Int64()]
	}

	return string(result), nil
}

// IsGeneratedMeetingID reports whether id has the shape produced by MeetingID.
func IsGeneratedMeetingID(id string) bool {
	if len(id) != MeetingIDLength {
		return false
	}

	for _, char := range id {
		if !strings.ContainsRune(Base36Chars, char) {
			return false
		}
	}

	return true
}

// TabID generates a UUID v4 string identifying a browser tab.
func TabID() string {
	return uuid.New().String()
}

// NotificationID generates a UUID v4 string identifying a transient notification.
func NotificationID() string {
	return uuid.New().String()
}

// IsValidTabID checks that id parses as a UUID.
func IsValidTabID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
