package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	base := func() Config {
		return Config{
			Port:         "5000",
			Env:          "development",
			MongoURI:     "mongodb://localhost:27017",
			JWTSecret:    "short",
			RateLimitMax: 100,
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"development with short secret", func(c *Config) {}, false},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing mongo uri", func(c *Config) { c.MongoURI = "" }, true},
		{"zero rate limit", func(c *Config) { c.RateLimitMax = 0 }, true},
		{"production with short secret", func(c *Config) { c.Env = "production" }, true},
		{"production with dev secret", func(c *Config) {
			c.Env = "prod"
			c.JWTSecret = devSecret
		}, true},
		{"production with strong secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "0123456789abcdef0123456789abcdef"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("MONGO_DB", "devconnector_test")
	t.Setenv("GITHUB_API_URL", "http://127.0.0.1:9999/")
	t.Setenv("RATE_LIMIT_MAX", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "devconnector_test", cfg.MongoDB)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.GithubAPIURL)
	assert.Equal(t, 7, cfg.RateLimitMax)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET is required")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
