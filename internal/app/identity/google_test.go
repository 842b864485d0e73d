package identity_test

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	jwtlib "github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatherly/internal/app/identity"
)

const testClientID = "client-1"

func signIDToken(t *testing.T, key *rsa.PrivateKey, claims jwtlib.MapClaims) string {
	t.Helper()
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func googleClaims(overrides map[string]any) jwtlib.MapClaims {
	now := time.Now()
	claims := jwtlib.MapClaims{
		"iss":            identity.GoogleIssuer,
		"aud":            testClientID,
		"sub":            "g-1",
		"email":          "ana@x.io",
		"email_verified": true,
		"name":           "Ana",
		"picture":        "https://p",
		"iat":            now.Unix(),
		"exp":            now.Add(time.Hour).Unix(),
	}
	for k, v := range overrides {
		claims[k] = v
	}
	return claims
}

func TestNewGoogleVerifier_DisabledWithoutClientID(t *testing.T) {
	assert.Nil(t, identity.NewGoogleVerifier(context.Background(), "", nil))
}

func TestGoogleVerifier_Verify(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keys := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&key.PublicKey}}
	v := identity.NewGoogleVerifierWithKeys(testClientID, keys)

	tests := []struct {
		name  string
		token string
		ok    bool
	}{
		{"valid", signIDToken(t, key, googleClaims(nil)), true},
		{"wrong_audience", signIDToken(t, key, googleClaims(map[string]any{"aud": "other"})), false},
		{"wrong_issuer", signIDToken(t, key, googleClaims(map[string]any{"iss": "https://evil.example"})), false},
		{"unverified_email", signIDToken(t, key, googleClaims(map[string]any{"email_verified": false})), false},
		{"missing_email", signIDToken(t, key, googleClaims(map[string]any{"email": ""})), false},
		{"expired", signIDToken(t, key, googleClaims(map[string]any{"exp": time.Now().Add(-time.Hour).Unix()})), false},
		{"unknown_key", signIDToken(t, otherKey, googleClaims(nil)), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := v.Verify(context.Background(), tt.token)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "g-1", profile.Subject)
			assert.Equal(t, "ana@x.io", profile.Email)
			assert.Equal(t, "Ana", profile.DisplayName)
			assert.Equal(t, "https://p", profile.PhotoURL)
		})
	}
}
