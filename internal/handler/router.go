/*
Package handler provides the HTTP handlers and routing setup for the Gatherly server.

This file defines the main Router, applying logging, CORS, identity extraction and
IP-based rate limiting before delegating requests to specific handlers.
*/
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"gatherly/internal/pkg/auth/jwt"
	"gatherly/internal/pkg/limiter"
	"gatherly/internal/pkg/logx"
	"gatherly/internal/pkg/resp"
)

const (
	AuthRate   = 0.5
	AuthBurst  = 10
	StartRate  = 0.2
	StartBurst = 5
	TabRate    = 1
	TabBurst   = 10
)

// Router sets up the main HTTP routing table for the application.
// The rate limiters' sweep loops stop when ctx ends.
func Router(ctx context.Context, deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(AuthRate), AuthBurst)
	startLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(StartRate), StartBurst)
	tabLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(TabRate), TabBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", logx.TabHeader},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		logx.Debug("Health check endpoint hit")

		data := map[string]any{
			"status":  "ok",
			"service": "Gatherly Server",
			"tabs":    deps.Tabs.Count(),
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.With(authLimiter.Middleware).Post("/login", HandleLogin(deps))
			auth.With(authLimiter.Middleware).Post("/signup", HandleSignup(deps))
			auth.With(authLimiter.Middleware).Post("/google", HandleGoogleLogin(deps))
			auth.Post("/logout", HandleLogout(deps))
			auth.Get("/me", HandleMe(deps))
		})

		api.With(tabLimiter.Middleware).Post("/tabs", HandleOpenTab(deps))

		api.Route("/tabs/{tab}", func(tab chi.Router) {
			tab.Get("/", HandleGetTab(deps))
			tab.Delete("/", HandleCloseTab(deps))

			tab.Post("/modal/join", HandleOpenJoinModal(deps))
			tab.Post("/modal/auth", HandleOpenAuthModal(deps))
			tab.Post("/modal/switch", HandleSwitchAuthMode(deps))
			tab.Post("/modal/close", HandleCloseModal(deps))
			tab.Patch("/forms", HandleUpdateForms(deps))

			tab.With(startLimiter.Middleware).Post("/meetings/start", HandleStartMeeting(deps))
			tab.With(tabLimiter.Middleware).Post("/meetings/join", HandleJoinMeeting(deps))

			tab.Post("/handoff/consume", HandleConsumeHandoff(deps))
		})
	})

	return r
}
