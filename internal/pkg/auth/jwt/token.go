package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// UserIdentityExpiration is how long a sign-in stays valid before the browser must sign in again.
	UserIdentityExpiration = 24 * time.Hour

	// TokenIssuer marks tokens minted by this server; tokens from any other issuer are refused.
	TokenIssuer = "Gatherly-Web"
)

var errNotGatherlyIdentity = errors.New("token was not issued for a gatherly identity")

// GenerateToken signs an HS256 identity token for payload. The subject is the account uid.
func GenerateToken(payload *Payload, secretKey string, duration time.Duration) (string, error) {
	issuedAt := time.Now()

	payload.StandardClaims = jwt.StandardClaims{
		Subject:   payload.UID,
		Issuer:    TokenIssuer,
		IssuedAt:  issuedAt.Unix(),
		ExpiresAt: issuedAt.Add(duration).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString([]byte(secretKey))
}

// ParseToken restores the identity carried by tokenString. It fails for foreign signing
// methods, bad signatures, expired tokens and tokens without a uid.
func ParseToken(tokenString string, secretKey string) (*Payload, error) {
	claims := &Payload{}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
	switch {
	case err != nil:
		return nil, err
	case !token.Valid:
		return nil, errors.New("invalid or expired token")
	case claims.Issuer != TokenIssuer, claims.UID == "":
		return nil, errNotGatherlyIdentity
	}

	return claims, nil
}
