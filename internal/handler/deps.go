package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"gatherly/internal/app/identity"
	"gatherly/internal/app/page"
	"gatherly/internal/configs"
	"gatherly/internal/pkg/auth/jwt"
	"gatherly/internal/pkg/errs"
	"gatherly/internal/pkg/logx"
	"gatherly/internal/pkg/randx"
)

// AppDeps bundles everything the HTTP handlers need.
type AppDeps struct {
	Config   *configs.AppConfig
	Tabs     *page.Manager
	Accounts identity.Provider
}

// identityFromPayload restores the profile carried by an identity token.
func identityFromPayload(payload *jwt.Payload) *identity.Identity {
	if payload == nil {
		return nil
	}

	return &identity.Identity{
		UID:         payload.UID,
		DisplayName: payload.DisplayName,
		Email:       payload.Email,
		PhotoURL:    payload.PhotoURL,
	}
}

// sessionFor restores the caller's identity session from the request's Bearer token.
func sessionFor(deps *AppDeps, r *http.Request) *identity.Session {
	return identity.NewSession(deps.Accounts, identityFromPayload(jwt.GetPayloadFromContext(r)))
}

// issueToken signs an identity token for id.
func issueToken(deps *AppDeps, id *identity.Identity, provider string) (string, error) {
	payload := &jwt.Payload{
		UID:         id.UID,
		DisplayName: id.DisplayName,
		Email:       id.Email,
		PhotoURL:    id.PhotoURL,
		Provider:    provider,
	}

	return jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.UserIdentityExpiration)
}

// tabFromURL resolves the {tab} route parameter to a live tab.
func tabFromURL(deps *AppDeps, r *http.Request) (*page.Tab, *errs.CustomError) {
	return lookupTab(deps, chi.URLParam(r, "tab"))
}

// tabFromHeader resolves the optional X-Tab-ID header. A missing header yields (nil, nil).
func tabFromHeader(deps *AppDeps, r *http.Request) (*page.Tab, *errs.CustomError) {
	tabID := strings.TrimSpace(r.Header.Get(logx.TabHeader))
	if tabID == "" {
		return nil, nil
	}
	return lookupTab(deps, tabID)
}

func lookupTab(deps *AppDeps, tabID string) (*page.Tab, *errs.CustomError) {
	if !randx.IsValidTabID(tabID) {
		return nil, errs.NewError(errs.ErrTabNotFound)
	}

	tab, err := deps.Tabs.Get(tabID)
	if err != nil {
		return nil, errs.As(err)
	}
	return tab, nil
}

// userResponse is the public profile returned by the auth endpoints.
func userResponse(id *identity.Identity) map[string]any {
	return map[string]any{
		"uid":         id.UID,
		"displayName": id.DisplayName,
		"email":       id.Email,
		"photoURL":    id.PhotoURL,
		"label":       id.Label(),
		"initials":    id.Initials(),
	}
}
