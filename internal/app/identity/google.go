package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
)

const (
	// GoogleIssuer is the issuer Google signs ID tokens as.
	GoogleIssuer = "https://accounts.google.com"

	// GoogleCertsURL serves the JWKS Google signs ID tokens with. Keys are cached between sign-ins.
	GoogleCertsURL = "https://www.googleapis.com/oauth2/v3/certs"
)

// GoogleProfile is the subset of verified ID token claims the directory stores.
type GoogleProfile struct {
	Subject     string
	Email       string
	DisplayName string
	PhotoURL    string
}

// GoogleVerifier checks Google ID token signatures, issuer, audience and expiry locally.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewGoogleVerifier returns nil when clientID is empty so Google sign-in reports unavailable.
// Key fetches use httpClient when it is non-nil and stop once ctx ends.
func NewGoogleVerifier(ctx context.Context, clientID string, httpClient *http.Client) *GoogleVerifier {
	if clientID == "" {
		return nil
	}
	if httpClient != nil {
		ctx = oidc.ClientContext(ctx, httpClient)
	}
	return NewGoogleVerifierWithKeys(clientID, oidc.NewRemoteKeySet(ctx, GoogleCertsURL))
}

// NewGoogleVerifierWithKeys builds a verifier over an explicit key set.
func NewGoogleVerifierWithKeys(clientID string, keys oidc.KeySet) *GoogleVerifier {
	return &GoogleVerifier{
		verifier: oidc.NewVerifier(GoogleIssuer, keys, &oidc.Config{ClientID: clientID}),
	}
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Verify implements TokenVerifier.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleProfile, error) {
	if idToken == "" {
		return nil, errors.New("empty id token")
	}

	token, err := v.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify google id token: %w", err)
	}

	var claims googleClaims
	if err := token.Claims(&claims); err != nil {
		return nil, fmt.Errorf("decode google id token claims: %w", err)
	}

	if token.Subject == "" || claims.Email == "" {
		return nil, errors.New("token lacks subject or email")
	}
	if !claims.EmailVerified {
		return nil, errors.New("google email is not verified")
	}

	return &GoogleProfile{
		Subject:     token.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}
