package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// ErrNoGithubProfile is returned when the username has no GitHub account.
var ErrNoGithubProfile = errors.New("no github profile found")

const githubCacheTTL = 10 * time.Minute

// GithubService proxies the public repository listing of a GitHub user,
// caching responses in Redis when a client is configured.
type GithubService struct {
	apiURL string
	token  string
	client *http.Client
	cache  *redis.Client
}

// NewGithubService builds the proxy. cache may be nil, in which case every
// call goes to the GitHub API.
func NewGithubService(token string, cache *redis.Client) *GithubService {
	return &GithubService{
		apiURL: "https://api.github.com",
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache,
	}
}

// Repos returns the raw JSON listing of the user's five most recently
// created public repositories.
func (s *GithubService) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	cacheKey := "github:repos:" + username
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			return cached, nil
		}
	}

	uri := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc",
		s.apiURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("build github request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if s.token != "" {
		req.Header.Set("Authorization", "token "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read github response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoGithubProfile
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github responded with status %d", resp.StatusCode)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, body, githubCacheTTL).Err(); err != nil {
			log.Warnf("github cache write failed: %v", err)
		}
	}
	return body, nil
}
