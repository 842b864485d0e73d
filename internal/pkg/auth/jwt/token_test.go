package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(&Payload{UID: "u1", DisplayName: "Ana", Provider: "password"}, testSecret, time.Hour)
	require.NoError(t, err)

	payload, err := ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "u1", payload.UID)
	assert.Equal(t, "Ana", payload.DisplayName)
	assert.Equal(t, "u1", payload.Subject)
	assert.Equal(t, TokenIssuer, payload.Issuer)
}

func TestParseToken_Rejects(t *testing.T) {
	token, err := GenerateToken(&Payload{UID: "u1"}, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateToken(&Payload{UID: "u1"}, testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired, testSecret)
	assert.Error(t, err)

	_, err = ParseToken("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestParseToken_RejectsForeignIdentity(t *testing.T) {
	sign := func(p *Payload) string {
		token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, p).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return token
	}
	valid := jwtlib.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()}

	foreignIssuer := valid
	foreignIssuer.Issuer = "Other-Server"
	_, err := ParseToken(sign(&Payload{StandardClaims: foreignIssuer, UID: "u1"}), testSecret)
	assert.ErrorIs(t, err, errNotGatherlyIdentity)

	noUID := valid
	noUID.Issuer = TokenIssuer
	_, err = ParseToken(sign(&Payload{StandardClaims: noUID}), testSecret)
	assert.ErrorIs(t, err, errNotGatherlyIdentity)
}

func TestIdentityExtractorMiddleware(t *testing.T) {
	token, err := GenerateToken(&Payload{UID: "u1"}, testSecret, time.Hour)
	require.NoError(t, err)

	var seen *Payload
	h := IdentityExtractorMiddleware(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetPayloadFromContext(r)
	}))

	tests := []struct {
		name   string
		header string
		uid    string
	}{
		{"valid_bearer", "Bearer " + token, "u1"},
		{"missing", "", ""},
		{"wrong_scheme", "Basic " + token, ""},
		{"garbage", "Bearer nope", ""},
		{"empty_bearer", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), r)

			if tt.uid == "" {
				assert.Nil(t, seen)
				return
			}
			require.NotNil(t, seen)
			assert.Equal(t, tt.uid, seen.UID)
		})
	}
}
