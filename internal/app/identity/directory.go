package identity

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"gatherly/internal/pkg/errs"
	"gatherly/internal/pkg/logx"
)

const (
	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 6

	// MaxPasswordLength keeps bcrypt below its 72 byte input limit for ASCII passwords.
	MaxPasswordLength = 72

	// ProviderPassword and ProviderGoogle name the sign-in methods recorded on accounts.
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var (
	// ErrAccountNotFound is returned by an AccountStore when no account matches.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEmailTaken is returned by an AccountStore when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// Account is a stored user account.
type Account struct {
	ID           string
	Email        string
	DisplayName  string
	PhotoURL     string
	PasswordHash string
	GoogleSub    string
}

// Identity projects the account onto the profile snapshot used by the workflow.
func (a *Account) Identity() *Identity {
	return &Identity{
		UID:         a.ID,
		DisplayName: a.DisplayName,
		Email:       a.Email,
		PhotoURL:    a.PhotoURL,
	}
}

// AccountStore persists accounts.
type AccountStore interface {
	CreateAccount(ctx context.Context, email, displayName, passwordHash string) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	UpsertGoogleAccount(ctx context.Context, profile GoogleProfile) (*Account, error)
	TouchLastLogin(ctx context.Context, id string) error
}

// TokenVerifier checks a Google ID token and returns the profile it asserts.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleProfile, error)
}

// Directory is the Provider backed by an AccountStore and an optional Google verifier.
type Directory struct {
	store  AccountStore
	google TokenVerifier
	cost   int
	logger zerolog.Logger
}

// NewDirectory builds a Directory. google may be nil, which disables Google sign-in.
func NewDirectory(store AccountStore, google TokenVerifier) *Directory {
	return &Directory{
		store:  store,
		google: google,
		cost:   bcrypt.DefaultCost,
		logger: logx.Component("IdentityDirectory"),
	}
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (d *Directory) WithHashCost(cost int) *Directory {
	d.cost = cost
	return d
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) *errs.CustomError {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength || len(password) > MaxPasswordLength {
		return errs.NewError(errs.ErrInvalidPassword)
	}
	return nil
}

// SignIn verifies an email/password pair.
func (d *Directory) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	email = normalizeEmail(email)
	if !emailRegex.MatchString(email) {
		return nil, errs.NewError(errs.ErrInvalidEmail)
	}

	account, err := d.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			d.logger.Warn().Str("email", email).Msg("Sign-in for unknown account.")
			return nil, errs.NewError(errs.ErrInvalidCredentials)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	if account.PasswordHash == "" {
		d.logger.Warn().Str("account_id", account.ID).Msg("Password sign-in for account without password.")
		return nil, errs.NewError(errs.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		d.logger.Warn().Str("account_id", account.ID).Msg("Password mismatch.")
		return nil, errs.NewError(errs.ErrInvalidCredentials)
	}

	d.touch(ctx, account.ID)

	return account.Identity(), nil
}

// SignUp registers a password account and returns its identity.
func (d *Directory) SignUp(ctx context.Context, email, password, displayName string) (*Identity, error) {
	email = normalizeEmail(email)
	displayName = strings.TrimSpace(displayName)

	if !emailRegex.MatchString(email) {
		return nil, errs.NewError(errs.ErrInvalidEmail)
	}
	if customErr := validatePassword(password); customErr != nil {
		return nil, customErr
	}
	if displayName == "" {
		return nil, errs.NewError(errs.ErrDisplayNameRequired)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	account, err := d.store.CreateAccount(ctx, email, displayName, string(hash))
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			d.logger.Warn().Str("email", email).Msg("Sign-up conflict: email already registered.")
			return nil, errs.NewError(errs.ErrAccountExists)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	d.logger.Info().Str("account_id", account.ID).Msg("Account created.")
	d.touch(ctx, account.ID)

	return account.Identity(), nil
}

// SignInWithGoogle verifies the ID token and signs in as the matching account, creating
// or linking it by email.
func (d *Directory) SignInWithGoogle(ctx context.Context, idToken string) (*Identity, error) {
	if d.google == nil {
		return nil, errs.NewError(errs.ErrProviderUnavailable)
	}

	profile, err := d.google.Verify(ctx, idToken)
	if err != nil {
		d.logger.Warn().Err(err).Msg("Google ID token rejected.")
		return nil, errs.Wrap(errs.ErrProviderRejected, err)
	}

	profile.Email = normalizeEmail(profile.Email)

	account, err := d.store.UpsertGoogleAccount(ctx, *profile)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	d.touch(ctx, account.ID)

	return account.Identity(), nil
}

func (d *Directory) touch(ctx context.Context, id string) {
	if err := d.store.TouchLastLogin(ctx, id); err != nil {
		d.logger.Error().Err(err).Str("account_id", id).Msg("Failed to update last_login_at.")
	}
}
