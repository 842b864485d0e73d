/*
Package meeting drives the home page's meeting workflow for one tab: which modal is open,
starting a new meeting through the credential exchange, and joining an existing one.

This file defines the modal state machine. Only one modal can be open at a time.
*/
package meeting

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"gatherly/internal/app/identity"
	"gatherly/internal/pkg/errs"
	"gatherly/internal/pkg/logx"
)

// Kind names the open modal.
type Kind string

const (
	KindClosed   Kind = "closed"
	KindJoinOpen Kind = "join"
	KindAuthOpen Kind = "auth"
)

// AuthMode selects the variant of the auth modal.
type AuthMode string

const (
	AuthModeLogin  AuthMode = "login"
	AuthModeSignup AuthMode = "signup"
)

// ParseAuthMode validates a mode coming from a request.
func ParseAuthMode(s string) (AuthMode, error) {
	switch mode := AuthMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case AuthModeLogin, AuthModeSignup:
		return mode, nil
	default:
		return "", errs.NewError(errs.ErrInvalidAuthMode)
	}
}

// ModalState is the single modal value of a page. AuthMode is set only when Kind is KindAuthOpen.
type ModalState struct {
	Kind     Kind     `json:"kind"`
	AuthMode AuthMode `json:"authMode,omitempty"`
}

// AuthForm is the draft of the auth modal.
type AuthForm struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// JoinForm is the draft of the join modal.
type JoinForm struct {
	MeetingID string `json:"meetingId"`
}

// Forms groups both drafts for display.
type Forms struct {
	Auth AuthForm `json:"auth"`
	Join JoinForm `json:"join"`
}

type action int

const (
	actionJoin action = iota
	actionJoinAnonymous
	actionAuth
	actionSwitch
	actionClose
)

func (a action) String() string {
	switch a {
	case actionJoin:
		return "join"
	case actionJoinAnonymous:
		return "join_anonymous"
	case actionAuth:
		return "auth"
	case actionSwitch:
		return "switch"
	case actionClose:
		return "close"
	default:
		return "unknown"
	}
}

// transition computes the next state. ok is false when the action is not allowed from s.
func transition(s ModalState, a action, mode AuthMode) (next ModalState, ok bool) {
	switch a {
	case actionJoin:
		return ModalState{Kind: KindJoinOpen}, true
	case actionJoinAnonymous:
		return ModalState{Kind: KindAuthOpen, AuthMode: AuthModeLogin}, true
	case actionAuth:
		return ModalState{Kind: KindAuthOpen, AuthMode: mode}, true
	case actionSwitch:
		if s.Kind != KindAuthOpen {
			return s, false
		}
		if s.AuthMode == AuthModeLogin {
			return ModalState{Kind: KindAuthOpen, AuthMode: AuthModeSignup}, true
		}
		return ModalState{Kind: KindAuthOpen, AuthMode: AuthModeLogin}, true
	case actionClose:
		return ModalState{Kind: KindClosed}, true
	}
	return s, false
}

// Coordinator owns the modal state and the form drafts of one page.
type Coordinator struct {
	mu    sync.Mutex
	state ModalState
	forms Forms

	logger zerolog.Logger
}

// NewCoordinator returns a coordinator with every modal closed.
func NewCoordinator(tabID string) *Coordinator {
	return &Coordinator{
		state:  ModalState{Kind: KindClosed},
		logger: logx.Component("ModalCoordinator").With().Str("tab_id", tabID).Logger(),
	}
}

func (c *Coordinator) apply(a action, mode AuthMode) (ModalState, bool) {
	from := c.state
	next, ok := transition(from, a, mode)
	if !ok {
		c.logger.Debug().
			Str("action", a.String()).
			Str("from", string(from.Kind)).
			Msg("Rejected modal transition.")
		return from, false
	}

	c.state = next

	switch a {
	case actionSwitch:
		c.forms.Auth = AuthForm{}
	case actionClose:
		c.forms.Join = JoinForm{}
	}

	c.logger.Debug().
		Str("action", a.String()).
		Str("from", string(from.Kind)).
		Str("to", string(next.Kind)).
		Str("auth_mode", string(next.AuthMode)).
		Msg("Modal transition.")

	return next, true
}

// RequestJoin opens the join modal for a signed-in user and the login modal otherwise.
func (c *Coordinator) RequestJoin(current identity.Current) ModalState {
	a := actionJoinAnonymous
	if current != nil && current.Current() != nil {
		a = actionJoin
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next, _ := c.apply(a, "")
	return next
}

// RequestAuth opens the auth modal in mode, whatever is open now.
func (c *Coordinator) RequestAuth(mode AuthMode) error {
	if _, err := ParseAuthMode(string(mode)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.apply(actionAuth, mode)
	return nil
}

// SwitchAuthMode flips login and signup and clears the auth draft. Only valid while the auth modal is open.
func (c *Coordinator) SwitchAuthMode() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.apply(actionSwitch, ""); !ok {
		return errs.NewError(errs.ErrInvalidTransition)
	}
	return nil
}

// Close closes any open modal and clears the join draft.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.apply(actionClose, "")
}

// State returns the current modal state.
func (c *Coordinator) State() ModalState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Forms returns a copy of both drafts.
func (c *Coordinator) Forms() Forms {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.forms
}

// SetAuthForm replaces the auth draft.
func (c *Coordinator) SetAuthForm(f AuthForm) {
	c.mu.Lock()
	c.forms.Auth = f
	c.mu.Unlock()
}

// SetJoinMeetingID replaces the join draft.
func (c *Coordinator) SetJoinMeetingID(meetingID string) {
	c.mu.Lock()
	c.forms.Join.MeetingID = meetingID
	c.mu.Unlock()
}

// CompleteAuth closes the auth modal after a successful sign-in and resets its draft.
// It does nothing if another modal has been opened meanwhile.
func (c *Coordinator) CompleteAuth() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Kind != KindAuthOpen {
		return
	}
	c.forms.Auth = AuthForm{}
	c.apply(actionClose, "")
}
