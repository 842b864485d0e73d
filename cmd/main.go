/*
Package main is the entry point for the Gatherly server.

It is responsible for loading configuration, initializing the global logging system,
connecting the account database and the handoff store, setting up the HTTP server and
the tab Manager, and gracefully handling operating system interrupt signals
(SIGINT, SIGTERM) to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gatherly/internal/app/credential"
	"gatherly/internal/app/db"
	"gatherly/internal/app/handoff"
	"gatherly/internal/app/identity"
	"gatherly/internal/app/page"
	"gatherly/internal/configs"
	"gatherly/internal/handler"
	"gatherly/internal/pkg/logx"
)

const handoffSweepInterval = time.Minute

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("token_endpoint", cfg.TokenEndpointURL).
		Bool("redis_handoff", cfg.RedisURL != "").
		Bool("google_sign_in", cfg.GoogleClientID != "").
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logx.Fatal(err, "Failed to connect to the account database")
	}
	defer pool.Close()

	var google identity.TokenVerifier
	if verifier := identity.NewGoogleVerifier(ctx, cfg.GoogleClientID, &http.Client{Timeout: cfg.TokenRequestTimeout}); verifier != nil {
		google = verifier
	}
	accounts := identity.NewDirectory(db.NewAccounts(pool), google)

	var store handoff.Store
	if cfg.RedisURL != "" {
		redisClient, err := handoff.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logx.Fatal(err, "Failed to connect to Redis")
		}
		defer redisClient.Close()

		store = handoff.NewRedisStore(redisClient, cfg.HandoffTTL)
	} else {
		memoryStore := handoff.NewMemoryStore(cfg.HandoffTTL)
		go memoryStore.RunSweeper(ctx, handoffSweepInterval)
		store = memoryStore
	}

	tokens, err := credential.NewClient(cfg.TokenEndpointURL, cfg.TokenRequestTimeout)
	if err != nil {
		logx.Fatal(err, "Invalid token endpoint")
	}

	// Initialize tab Manager
	tabs := page.NewManager(cfg, tokens, store)

	// Setup HTTP server and routes
	router := handler.Router(ctx, &handler.AppDeps{
		Config:   cfg,
		Tabs:     tabs,
		Accounts: accounts,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.TokenRequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Gatherly Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	tabs.Shutdown()

	logx.Info("Server gracefully stopped.")
}
