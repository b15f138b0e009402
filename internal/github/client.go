// Package github implements the read-only issue-tracker client. It never
// writes into the board store; failures surface as distinguishable
// integration errors so the UI can render a specific message.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kanbandesk/kanbandesk/types"
)

const (
	defaultBaseURL = "https://api.github.com"

	// APITimeout bounds a single issue fetch.
	APITimeout = 10 * time.Second
)

// Issue is one open issue in the configured repository.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	HTMLURL   string    `json:"html_url"`
}

// Client fetches open issues over the GitHub REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a tracker client against api.github.com.
func NewClient() *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: APITimeout},
	}
}

// NewClientWithBaseURL creates a client against a custom API root.
// Used by tests and GitHub Enterprise installs.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// FetchOpenIssues lists the open issues of owner/repo. All three
// credentials are required; 401 and 404 map to their own error kinds so
// callers can tell a bad token from a mistyped repository.
func (c *Client) FetchOpenIssues(ctx context.Context, token, owner, repo string) ([]Issue, error) {
	if token == "" || owner == "" || repo == "" {
		return nil, types.NewIntegrationError("GitHub token, owner and repo must all be configured", types.ErrMissingCredentials)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/issues?state=open", c.baseURL, owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, types.NewIntegrationError("build issues request", types.ErrTrackerAPI)
	}
	req.Header.Set("Authorization", "token "+token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, types.NewIntegrationError(fmt.Sprintf("reach GitHub API: %v", err), types.ErrTrackerAPI)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, types.NewIntegrationError("GitHub rejected the token", types.ErrInvalidToken)
	case resp.StatusCode == http.StatusNotFound:
		return nil, types.NewIntegrationError(fmt.Sprintf("repository %s/%s not found", owner, repo), types.ErrRepoNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, types.NewIntegrationError(fmt.Sprintf("GitHub API error: %s", resp.Status), types.ErrTrackerAPI)
	}

	var issues []Issue
	if err := json.NewDecoder(resp.Body).Decode(&issues); err != nil {
		return nil, types.NewIntegrationError(fmt.Sprintf("decode issues response: %v", err), types.ErrTrackerAPI)
	}
	return issues, nil
}
