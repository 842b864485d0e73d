package identity

import (
	"context"
	"sync"
)

// Provider performs the actual authentication against an account backend.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignUp(ctx context.Context, email, password, displayName string) (*Identity, error)
	SignInWithGoogle(ctx context.Context, idToken string) (*Identity, error)
}

// Session holds the current identity (or none) and exposes the authentication operations.
type Session struct {
	provider Provider

	mu      sync.RWMutex
	current *Identity
}

// NewSession creates a session restored to current, which may be nil.
func NewSession(provider Provider, current *Identity) *Session {
	return &Session{provider: provider, current: current.Snapshot()}
}

// Current returns the signed-in identity, or nil.
func (s *Session) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Snapshot()
}

// Login signs in with email and password.
func (s *Session) Login(ctx context.Context, email, password string) (*Identity, error) {
	return s.adopt(s.provider.SignIn(ctx, email, password))
}

// Signup creates an account and signs in as it.
func (s *Session) Signup(ctx context.Context, email, password, displayName string) (*Identity, error) {
	return s.adopt(s.provider.SignUp(ctx, email, password, displayName))
}

// LoginWithGoogle signs in with a Google ID token.
func (s *Session) LoginWithGoogle(ctx context.Context, idToken string) (*Identity, error) {
	return s.adopt(s.provider.SignInWithGoogle(ctx, idToken))
}

// Logout clears the current identity.
func (s *Session) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// adopt keeps the previous identity when authentication fails.
func (s *Session) adopt(id *Identity, err error) (*Identity, error) {
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = id.Snapshot()
	s.mu.Unlock()

	return id, nil
}
