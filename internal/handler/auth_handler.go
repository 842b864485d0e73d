/*
Package handler provides HTTP handler functions for sign-in, sign-up, Google sign-in and sign-out.

When the request names a tab (X-Tab-ID), the outcome is also reflected on that tab: success
closes its auth modal and resets the form, failure keeps the modal open and shows an error.
*/
package handler

import (
	"context"
	"net/http"
	"strings"

	"gatherly/internal/app/identity"
	"gatherly/internal/pkg/auth/jwt"
	"gatherly/internal/pkg/errs"
	"gatherly/internal/pkg/logx"
	"gatherly/internal/pkg/req"
	"gatherly/internal/pkg/resp"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type GoogleInput struct {
	IDToken string `json:"idToken"`
}

// authenticate runs one sign-in attempt and writes the response.
func authenticate(
	deps *AppDeps,
	w http.ResponseWriter,
	r *http.Request,
	provider string,
	attempt func(ctx context.Context, session *identity.Session) (*identity.Identity, error),
) {
	tab, customErr := tabFromHeader(deps, r)
	if customErr != nil {
		resp.RespondError(w, r, customErr)
		return
	}

	session := sessionFor(deps, r)

	id, err := attempt(r.Context(), session)
	if err != nil {
		customErr := errs.As(err)
		if customErr == nil {
			customErr = errs.NewError(errs.ErrUnknown, err)
		}

		logx.Warn("Authentication failed", "provider", provider, "error_code", customErr.Code)

		if tab != nil {
			tab.Notices().Error(customErr.Message)
			resp.RespondErrorWithData(w, r, customErr, tabViewData(tab))
			return
		}

		resp.RespondError(w, r, customErr)
		return
	}

	token, err := issueToken(deps, id, provider)
	if err != nil {
		logx.Error(err, "Failed to generate identity token", "uid", id.UID)
		resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
		return
	}

	data := map[string]any{
		"token": token,
		"user":  userResponse(id),
	}

	if tab != nil {
		tab.Modal().CompleteAuth()
		data["tab"] = tab.View()
	}

	resp.RespondSuccess(w, r, data)
}

// HandleLogin signs in with email and password and issues an identity token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		authenticate(deps, w, r, identity.ProviderPassword, func(ctx context.Context, s *identity.Session) (*identity.Identity, error) {
			return s.Login(ctx, input.Email, input.Password)
		})
	}
}

// HandleSignup creates an account and issues an identity token for it.
func HandleSignup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SignupInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		authenticate(deps, w, r, identity.ProviderPassword, func(ctx context.Context, s *identity.Session) (*identity.Identity, error) {
			return s.Signup(ctx, input.Email, input.Password, strings.TrimSpace(input.DisplayName))
		})
	}
}

// HandleGoogleLogin exchanges a Google ID token for an identity token.
func HandleGoogleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input GoogleInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if strings.TrimSpace(input.IDToken) == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		authenticate(deps, w, r, identity.ProviderGoogle, func(ctx context.Context, s *identity.Session) (*identity.Identity, error) {
			return s.LoginWithGoogle(ctx, input.IDToken)
		})
	}
}

// HandleLogout signs the caller out. Identity tokens are stateless, so the client
// discards its token; a named tab gets its modal closed.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tab, customErr := tabFromHeader(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		session := sessionFor(deps, r)
		if current := session.Current(); current != nil {
			logx.Info("User signed out", "uid", current.UID)
		}
		session.Logout()

		data := map[string]any{"user": nil}
		if tab != nil {
			tab.Modal().Close()
			data["tab"] = tab.View()
		}

		resp.RespondSuccess(w, r, data)
	}
}

// HandleMe returns the identity carried by the caller's token.
func HandleMe(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := identityFromPayload(jwt.GetPayloadFromContext(r))
		if id == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"user": userResponse(id)})
	}
}
