package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gatherly/internal/app/identity"
)

func TestIdentity_Label(t *testing.T) {
	tests := []struct {
		name string
		id   identity.Identity
		want string
	}{
		{"display_name_wins", identity.Identity{UID: "u1", DisplayName: "Ana", Email: "ana@x.io"}, "Ana"},
		{"email_local_part", identity.Identity{UID: "u1", Email: "ana.silva@x.io"}, "ana.silva"},
		{"empty_local_part_falls_through", identity.Identity{UID: "abcdefghijk", Email: "@x.io"}, "User-abcdefgh"},
		{"uid_prefix", identity.Identity{UID: "0123456789abcdef"}, "User-01234567"},
		{"short_uid", identity.Identity{UID: "u1"}, "User-u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.Label())
		})
	}
}

func TestIdentity_Initials(t *testing.T) {
	tests := []struct {
		name string
		id   identity.Identity
		want string
	}{
		{"first_and_last", identity.Identity{DisplayName: "ana maria silva"}, "AS"},
		{"single_name", identity.Identity{DisplayName: "ana"}, "A"},
		{"extra_spaces", identity.Identity{DisplayName: "  ana   silva "}, "AS"},
		{"email", identity.Identity{Email: "zed@x.io"}, "Z"},
		{"nothing", identity.Identity{UID: "u1"}, "U"},
		{"unicode", identity.Identity{DisplayName: "élodie ñúñez"}, "ÉÑ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.id.Initials())
		})
	}
}

func TestIdentity_SnapshotIsIndependent(t *testing.T) {
	var nilID *identity.Identity
	assert.Nil(t, nilID.Snapshot())

	id := &identity.Identity{UID: "u1", DisplayName: "Ana"}
	snap := id.Snapshot()
	id.DisplayName = "Bea"
	assert.Equal(t, "Ana", snap.DisplayName)
}
