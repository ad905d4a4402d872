package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Gundeep-repos/Developer-Connector/internal/config"
	"github.com/Gundeep-repos/Developer-Connector/internal/utils"
)

// ErrNoGithubProfile is returned when GitHub answers anything but 200 for a
// username, which the API reports as 404.
var ErrNoGithubProfile = errors.New("no github profile found")

// Repo is the subset of a GitHub repository we pass through to clients.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
	CreatedAt   string `json:"created_at"`
}

// GithubService proxies the repository listing of a GitHub user with fixed
// pagination (5 newest-first by creation). Responses are cached briefly so
// repeated profile views don't burn the rate limit.
type GithubService struct {
	client       *http.Client
	BaseURL      string
	clientID     string
	clientSecret string
}

// NewGithubService builds the service with a bounded request timeout.
func NewGithubService(cfg *config.Config) *GithubService {
	return &GithubService{
		client: &http.Client{
			Timeout: cfg.GithubTimeout,
		},
		BaseURL:      "https://api.github.com",
		clientID:     cfg.GithubClientID,
		clientSecret: cfg.GithubClientSecret,
	}
}

// ListRepos fetches up to five repositories for username, oldest creation
// first, matching the upstream query the web client expects.
func (s *GithubService) ListRepos(username string) ([]Repo, error) {
	cacheKey := "github:repos:" + username
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if repos, ok := cached.([]Repo); ok {
			return repos, nil
		}
	}

	q := url.Values{}
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if s.clientID != "" {
		q.Set("client_id", s.clientID)
		q.Set("client_secret", s.clientSecret)
	}
	reqURL := fmt.Sprintf("%s/users/%s/repos?%s", s.BaseURL, url.PathEscape(username), q.Encode())

	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build github request: %w", err)
	}
	req.Header.Set("User-Agent", "developer-connector")
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNoGithubProfile
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("decode github response: %w", err)
	}

	utils.GetCache().Set(cacheKey, repos, 5*time.Minute)
	return repos, nil
}
