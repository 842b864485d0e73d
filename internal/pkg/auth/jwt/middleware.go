package jwt

import (
	"context"
	"net/http"
	"strings"

	"gatherly/internal/pkg/logx"
)

type contextKey string

// ContextAuthPayloadKey holds the caller's restored identity Payload in the request context.
const ContextAuthPayloadKey contextKey = "auth_payload"

const bearerScheme = "Bearer "

// IdentityExtractorMiddleware restores the caller's identity from an "Authorization: Bearer"
// header. Signed-out callers are still served: the meeting workflow decides per action
// whether an identity is required.
func IdentityExtractorMiddleware(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerScheme)
			if !ok || tokenString == "" {
				next.ServeHTTP(w, r)
				return
			}

			payload, err := ParseToken(tokenString, secretKey)
			if err != nil {
				logx.Warn("Identity token rejected, serving request signed out", "error", err.Error())
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ContextAuthPayloadKey, payload)))
		})
	}
}

// GetPayloadFromContext returns the identity restored by IdentityExtractorMiddleware,
// or nil for a signed-out caller.
func GetPayloadFromContext(r *http.Request) *Payload {
	payload, _ := r.Context().Value(ContextAuthPayloadKey).(*Payload)
	return payload
}
