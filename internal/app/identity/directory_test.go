package identity_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gatherly/internal/app/identity"
	"gatherly/internal/pkg/errs"
)

type memoryAccounts struct {
	mu      sync.Mutex
	byEmail map[string]*identity.Account
	touched []string
	seq     int
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{byEmail: map[string]*identity.Account{}}
}

func (m *memoryAccounts) CreateAccount(ctx context.Context, email, displayName, hash string) (*identity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[email]; ok {
		return nil, identity.ErrEmailTaken
	}
	m.seq++
	a := &identity.Account{ID: fmt.Sprintf("acct-%04d", m.seq), Email: email, DisplayName: displayName, PasswordHash: hash}
	m.byEmail[email] = a
	return a, nil
}

func (m *memoryAccounts) GetAccountByEmail(ctx context.Context, email string) (*identity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byEmail[email]
	if !ok {
		return nil, identity.ErrAccountNotFound
	}
	return a, nil
}

func (m *memoryAccounts) UpsertGoogleAccount(ctx context.Context, p identity.GoogleProfile) (*identity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.byEmail[p.Email]; ok {
		a.GoogleSub = p.Subject
		if a.PhotoURL == "" {
			a.PhotoURL = p.PhotoURL
		}
		return a, nil
	}
	m.seq++
	a := &identity.Account{ID: fmt.Sprintf("acct-%04d", m.seq), Email: p.Email, DisplayName: p.DisplayName, PhotoURL: p.PhotoURL, GoogleSub: p.Subject}
	m.byEmail[p.Email] = a
	return a, nil
}

func (m *memoryAccounts) TouchLastLogin(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched = append(m.touched, id)
	return nil
}

type stubVerifier struct {
	profile *identity.GoogleProfile
	err     error
}

func (s stubVerifier) Verify(ctx context.Context, idToken string) (*identity.GoogleProfile, error) {
	if s.err != nil {
		return nil, s.err
	}
	p := *s.profile
	return &p, nil
}

func newDirectory(store identity.AccountStore, v identity.TokenVerifier) *identity.Directory {
	return identity.NewDirectory(store, v).WithHashCost(bcrypt.MinCost)
}

func TestDirectory_SignUpThenSignIn(t *testing.T) {
	store := newMemoryAccounts()
	dir := newDirectory(store, nil)
	ctx := context.Background()

	created, err := dir.SignUp(ctx, " Ana@Example.com ", "secret1", " Ana Silva ")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", created.Email)
	assert.Equal(t, "Ana Silva", created.DisplayName)

	signedIn, err := dir.SignIn(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.UID, signedIn.UID)
	assert.Len(t, store.touched, 2)
}

func TestDirectory_SignUpValidation(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		password    string
		displayName string
		code        int
	}{
		{"bad_email", "ana", "secret1", "Ana", errs.ErrInvalidEmail},
		{"short_password", "ana@example.com", "12345", "Ana", errs.ErrInvalidPassword},
		{"missing_name", "ana@example.com", "secret1", "  ", errs.ErrDisplayNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newDirectory(newMemoryAccounts(), nil).SignUp(context.Background(), tt.email, tt.password, tt.displayName)
			assert.True(t, errs.HasCode(err, tt.code), "got %v", err)
		})
	}
}

func TestDirectory_SignUpDuplicate(t *testing.T) {
	dir := newDirectory(newMemoryAccounts(), nil)
	_, err := dir.SignUp(context.Background(), "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)

	_, err = dir.SignUp(context.Background(), "ANA@example.com", "secret2", "Ana 2")
	assert.True(t, errs.HasCode(err, errs.ErrAccountExists))
}

func TestDirectory_SignInFailures(t *testing.T) {
	store := newMemoryAccounts()
	dir := newDirectory(store, nil)
	_, err := dir.SignUp(context.Background(), "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)

	_, err = dir.SignIn(context.Background(), "ana@example.com", "wrong-pass")
	assert.True(t, errs.HasCode(err, errs.ErrInvalidCredentials))

	_, err = dir.SignIn(context.Background(), "bob@example.com", "secret1")
	assert.True(t, errs.HasCode(err, errs.ErrInvalidCredentials))
}

func TestDirectory_Google(t *testing.T) {
	t.Run("unavailable_without_verifier", func(t *testing.T) {
		_, err := newDirectory(newMemoryAccounts(), nil).SignInWithGoogle(context.Background(), "tok")
		assert.True(t, errs.HasCode(err, errs.ErrProviderUnavailable))
	})

	t.Run("rejected_token", func(t *testing.T) {
		dir := newDirectory(newMemoryAccounts(), stubVerifier{err: errors.New("bad audience")})
		_, err := dir.SignInWithGoogle(context.Background(), "tok")
		assert.True(t, errs.HasCode(err, errs.ErrProviderRejected))
	})

	t.Run("links_existing_account", func(t *testing.T) {
		store := newMemoryAccounts()
		dir := newDirectory(store, stubVerifier{profile: &identity.GoogleProfile{
			Subject: "g-1", Email: "Ana@Example.com", DisplayName: "Ana G", PhotoURL: "https://img/ana.png",
		}})

		created, err := dir.SignUp(context.Background(), "ana@example.com", "secret1", "Ana")
		require.NoError(t, err)

		id, err := dir.SignInWithGoogle(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, created.UID, id.UID)
		assert.Equal(t, "Ana", id.DisplayName)
		assert.Equal(t, "https://img/ana.png", id.PhotoURL)

		_, err = dir.SignIn(context.Background(), "ana@example.com", "secret1")
		assert.NoError(t, err)
	})
}

func TestSession_Lifecycle(t *testing.T) {
	dir := newDirectory(newMemoryAccounts(), nil)
	session := identity.NewSession(dir, nil)
	ctx := context.Background()

	assert.Nil(t, session.Current())

	_, err := session.Signup(ctx, "ana@example.com", "secret1", "Ana")
	require.NoError(t, err)
	require.NotNil(t, session.Current())
	assert.Equal(t, "Ana", session.Current().DisplayName)

	_, err = session.Login(ctx, "ana@example.com", "nope-nope")
	require.Error(t, err)
	require.NotNil(t, session.Current(), "failed login keeps the previous identity")

	session.Logout()
	assert.Nil(t, session.Current())

	_, err = session.LoginWithGoogle(ctx, "tok")
	assert.True(t, errs.HasCode(err, errs.ErrProviderUnavailable))
	assert.Nil(t, session.Current())
}
