// Package config loads the API configuration from the environment, an optional
// .env file and an optional config.yml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devSecret = "devconnector-secret-change-me"

type Config struct {
	Port           string `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	MongoURI       string `mapstructure:"MONGO_URI"`
	MongoDB        string `mapstructure:"MONGO_DB"`
	JWTSecret      string `mapstructure:"JWT_SECRET"`
	GithubClientID string `mapstructure:"GITHUB_CLIENT_ID"`
	GithubSecret   string `mapstructure:"GITHUB_SECRET"`
	GithubAPIURL   string `mapstructure:"GITHUB_API_URL"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	RateLimitMax   int    `mapstructure:"RATE_LIMIT_MAX"`
}

// LoadConfig reads .env (if present) into the process environment, then
// resolves every key from the environment, falling back to config.yml and
// finally to the defaults below.
func LoadConfig() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config.yml: %w", err)
		}
	}

	v.SetDefault("PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "devconnector")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("GITHUB_CLIENT_ID", "")
	v.SetDefault("GITHUB_SECRET", "")
	v.SetDefault("GITHUB_API_URL", "https://api.github.com")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_MAX", 100)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.GithubAPIURL = strings.TrimRight(cfg.GithubAPIURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate rejects configurations the server cannot run with. A missing
// signing secret is fatal: no authenticated route could be served.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.MongoURI == "" {
		return errors.New("MONGO_URI is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.RateLimitMax <= 0 {
		return errors.New("RATE_LIMIT_MAX must be positive")
	}

	if c.IsProduction() {
		if c.JWTSecret == devSecret || len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters in production")
		}
		if c.GithubClientID == "" || c.GithubSecret == "" {
			slog.Warn("GitHub credentials are not set, repository lookups will be rate limited")
		}
	}

	return nil
}
