/*
Package handoff carries a MeetingSession from the page that started a meeting to the
room view across a full navigation.

Each browser tab owns exactly one slot, stored under the fixed key "meetingData" inside
the tab's namespace. A second write before the room view consumes the slot overwrites
it; consuming removes it.
*/
package handoff

import (
	"context"
	"encoding/json"
	"errors"

	"gatherly/internal/app/credential"
	"gatherly/internal/app/identity"
	"gatherly/internal/pkg/errs"
)

// Key is the slot name inside a tab's namespace.
const Key = "meetingData"

// ErrEmpty is returned by Take when the tab has no stored session.
var ErrEmpty = errors.New("no meeting session stored for tab")

// UserInfo is the identity snapshot embedded in a session. Absent profile fields encode as null.
type UserInfo struct {
	DisplayName *string `json:"displayName"`
	Email       *string `json:"email"`
	PhotoURL    *string `json:"photoURL"`
	UID         string  `json:"uid"`
}

// MeetingSession is the payload the room view needs to connect.
type MeetingSession struct {
	Token      string   `json:"token"`
	Identity   string   `json:"identity"`
	RoomName   string   `json:"roomName"`
	LivekitURL string   `json:"livekitUrl"`
	UserInfo   UserInfo `json:"userInfo"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NewMeetingSession packages a credential with a snapshot of who requested it.
// A credential without a token is a protocol violation, never a session.
func NewMeetingSession(cred *credential.Credential, id *identity.Identity) (*MeetingSession, error) {
	if cred == nil || cred.Token == "" {
		return nil, errs.NewError(errs.ErrTokenMissing)
	}
	if id == nil {
		return nil, errs.NewError(errs.ErrIdentityRequired)
	}

	return &MeetingSession{
		Token:      cred.Token,
		Identity:   cred.Identity,
		RoomName:   cred.RoomName,
		LivekitURL: cred.ServerURL,
		UserInfo: UserInfo{
			DisplayName: optional(id.DisplayName),
			Email:       optional(id.Email),
			PhotoURL:    optional(id.PhotoURL),
			UID:         id.UID,
		},
	}, nil
}

// Store persists one session per tab.
type Store interface {
	Put(ctx context.Context, tabID string, session *MeetingSession) error
	Take(ctx context.Context, tabID string) (*MeetingSession, error)
	Clear(ctx context.Context, tabID string) error
}

func storageKey(tabID string) string {
	return "tab:" + tabID + ":" + Key
}

func encode(session *MeetingSession) ([]byte, error) {
	return json.Marshal(session)
}

func decode(data []byte) (*MeetingSession, error) {
	var session MeetingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Slot is a Store bound to one tab.
type Slot struct {
	store Store
	tabID string
}

// NewSlot binds store to tabID.
func NewSlot(store Store, tabID string) Slot {
	return Slot{store: store, tabID: tabID}
}

// Store overwrites the tab's session.
func (s Slot) Store(ctx context.Context, session *MeetingSession) error {
	return s.store.Put(ctx, s.tabID, session)
}

// Consume returns the tab's session and removes it. ErrEmpty if there is none.
func (s Slot) Consume(ctx context.Context) (*MeetingSession, error) {
	return s.store.Take(ctx, s.tabID)
}

// Clear drops the tab's session, if any.
func (s Slot) Clear(ctx context.Context) error {
	return s.store.Clear(ctx, s.tabID)
}
