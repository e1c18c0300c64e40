// Package devops is a minimal Azure DevOps REST client covering the two
// listing calls the panel needs: organization projects and per-project Git
// repositories.
package devops

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inovacc/azpanel/internal/model"
)

const apiVersion = "7.0"

// Client is an authenticated Azure DevOps API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *slog.Logger
}

// Options configures the client.
type Options struct {
	Logger *slog.Logger
}

// FetchError describes a failed listing call. The panel treats it as an
// empty result; the type exists so "none exist" and "fetch failed" stay
// distinguishable at this layer.
type FetchError struct {
	Resource   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("listing %s failed: status %d", e.Resource, e.StatusCode)
	}

	return fmt.Sprintf("listing %s failed: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewClient creates a new Azure DevOps client for the given credentials.
func NewClient(creds *model.Credentials, opts Options) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if !creds.Valid() {
		return nil, fmt.Errorf("organization URL and access token are required")
	}

	logger.Debug("creating Azure DevOps client",
		slog.String("organization", creds.OrganizationURL),
	)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: normalizeOrganizationURL(creds.OrganizationURL),
		token:   creds.AccessToken,
		logger:  logger,
	}, nil
}

// normalizeOrganizationURL strips a trailing slash and promotes a bare
// organization name to its dev.azure.com URL.
func normalizeOrganizationURL(org string) string {
	org = strings.TrimSuffix(strings.TrimSpace(org), "/")
	if !strings.HasPrefix(org, "https://") && !strings.HasPrefix(org, "http://") {
		org = "https://dev.azure.com/" + org
	}

	return org
}

// ListProjects returns the organization's projects in API response order.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var result struct {
		Count int             `json:"count"`
		Value []model.Project `json:"value"`
	}

	endpoint := "/_apis/projects?api-version=" + apiVersion

	if err := c.doRequest(ctx, endpoint, &result); err != nil {
		return nil, &FetchError{Resource: "projects", StatusCode: statusOf(err), Err: err}
	}

	return result.Value, nil
}

// ListRepositories returns the Git repositories of one project. The project
// name is used for the URL path as the API returned it; the id only labels
// errors.
func (c *Client) ListRepositories(ctx context.Context, projectID, projectName string) ([]model.Repository, error) {
	var result struct {
		Count int                `json:"count"`
		Value []model.Repository `json:"value"`
	}

	endpoint := "/" + url.PathEscape(projectName) + "/_apis/git/repositories?api-version=" + apiVersion

	if err := c.doRequest(ctx, endpoint, &result); err != nil {
		return nil, &FetchError{Resource: "repositories/" + projectID, StatusCode: statusOf(err), Err: err}
	}

	return result.Value, nil
}

// statusError carries a non-success HTTP status out of doRequest.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.code, e.body)
}

func statusOf(err error) int {
	if se, ok := err.(*statusError); ok {
		return se.code
	}

	return 0
}

func (c *Client) doRequest(ctx context.Context, endpoint string, result any) error {
	c.logger.Debug("making Azure DevOps API request",
		slog.String("endpoint", endpoint),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Basic auth with empty username and the PAT as password
	auth := base64.StdEncoding.EncodeToString([]byte(":" + c.token))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		return &statusError{code: resp.StatusCode, body: string(body)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
