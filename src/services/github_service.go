package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/theleywin/devconnector/src/models"
)

const msgNoGithubProfile = "No Github profile found."

type GithubConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// GithubService proxies the public repository listing of a GitHub user
type GithubService struct {
	cfg     GithubConfig
	lookups *prometheus.CounterVec
}

// NewGithubService builds the proxy. lookups may be nil; when set it is
// incremented once per lookup with a "result" label.
func NewGithubService(cfg GithubConfig, lookups *prometheus.CounterVec) *GithubService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.github.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &GithubService{
		cfg:     cfg,
		lookups: lookups,
	}
}

// Repos returns GitHub's JSON body for the user's five oldest-created
// repositories. Any non-200 answer, including a transport failure, is
// reported as "No Github profile found."
func (s *GithubService) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	agent := fiber.Get(s.reposURL(username))
	agent.UserAgent("devconnector")
	agent.Set(fiber.HeaderAccept, "application/vnd.github+json")
	agent.Timeout(s.cfg.Timeout)

	var (
		status int
		body   []byte
		errs   []error
	)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		errs = []error{err}
	} else {
		status, body, errs = agent.Bytes()
	}
	if len(errs) > 0 {
		slog.ErrorContext(ctx, "GitHub request failed",
			slog.String("username", username),
			slog.Any("error", errors.Join(errs...)),
		)
		s.count("error")
	}

	if status != fiber.StatusOK {
		if len(errs) == 0 {
			s.count("not_found")
		}
		return nil, models.NewNotFoundError(msgNoGithubProfile)
	}

	if !json.Valid(body) {
		s.count("error")
		return nil, models.NewInternalError(fmt.Errorf("github returned a non-JSON body for %q", username))
	}

	s.count("found")
	return json.RawMessage(body), nil
}

func (s *GithubService) reposURL(username string) string {
	query := url.Values{}
	query.Set("per_page", "5")
	query.Set("sort", "created:asc")
	query.Set("client_id", s.cfg.ClientID)
	query.Set("client_secret", s.cfg.ClientSecret)

	return s.cfg.BaseURL + "/users/" + url.PathEscape(username) + "/repos?" + query.Encode()
}

func (s *GithubService) count(result string) {
	if s.lookups != nil {
		s.lookups.WithLabelValues(result).Inc()
	}
}
