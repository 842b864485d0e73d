package configs

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(vars map[string]string) (*AppConfig, error) {
	return LoadConfigFrom(env.Options{Environment: vars})
}

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	cfg, err := load(map[string]string{})
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, devDatabaseDSN, cfg.DatabaseDSN)
	assert.Equal(t, "http://localhost:3000/api/token", cfg.TokenEndpointURL)
	assert.Equal(t, 10*time.Second, cfg.TokenRequestTimeout)
	assert.Equal(t, 4*time.Second, cfg.NotificationDuration)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := load(map[string]string{
		"PORT":               "9090",
		"ALLOWED_ORIGINS":    "https://a.example, ,https://b.example",
		"TOKEN_ENDPOINT_URL": "https://app.example/api/token",
		"HANDOFF_TTL":        "2m",
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "https://app.example/api/token", cfg.TokenEndpointURL)
	assert.Equal(t, 2*time.Minute, cfg.HandoffTTL)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"privileged_port", map[string]string{"PORT": "80"}},
		{"bad_port", map[string]string{"PORT": "eighty"}},
		{"production_without_secret", map[string]string{"ENVIRONMENT": "production", "DATABASE_URL": "postgres://x"}},
		{"production_without_dsn", map[string]string{"ENVIRONMENT": "production", "JWT_SECRET": "s"}},
		{"relative_endpoint", map[string]string{"TOKEN_ENDPOINT_URL": "/api/token"}},
		{"zero_timeout", map[string]string{"TOKEN_REQUEST_TIMEOUT": "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(tt.vars)
			assert.Error(t, err)
		})
	}
}
