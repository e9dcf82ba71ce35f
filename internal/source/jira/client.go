// Package jira is a thin client for the Jira Cloud REST API, covering
// just what the entry form needs: issue search suggestions and a
// single-issue summary fetch.
package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	searchTimeout  = 15 * time.Second
	summaryTimeout = 10 * time.Second

	maxSearchResults = 10
)

// Client is an HTTP client for the Jira Cloud REST API v3. It uses
// Basic authentication with the account email and an API token. Failed
// calls are not retried; the caller surfaces them once.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
}

// NewClient creates a Jira Cloud client. The baseURL is the site root
// (e.g. https://yourteam.atlassian.net); email and token form the Basic
// auth pair.
func NewClient(baseURL, email, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		token:      token,
		httpClient: &http.Client{},
	}
}

// Configured reports whether the client has enough settings to make
// requests.
func (c *Client) Configured() bool {
	return c.baseURL != "" && c.email != "" && c.token != ""
}

// SearchIssues runs the JQL produced by ClassifyQuery and returns up to
// ten key/summary pairs.
func (c *Client) SearchIssues(ctx context.Context, query string) ([]IssueRef, error) {
	jql, ok := ClassifyQuery(query)
	if !ok {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", fmt.Sprint(maxSearchResults))
	params.Set("fields", "summary")

	var resp searchResponse
	if err := c.get(ctx, "/rest/api/3/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	refs := make([]IssueRef, 0, len(resp.Issues))
	for _, iss := range resp.Issues {
		if iss.Key == "" {
			return nil, fmt.Errorf("%w: issue without key", ErrInvalidResponse)
		}
		refs = append(refs, IssueRef{Key: iss.Key, Summary: iss.Fields.Summary})
	}
	return refs, nil
}

// FetchIssueSummary returns the summary text of one issue.
func (c *Client) FetchIssueSummary(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	var iss issue
	path := "/rest/api/3/issue/" + url.PathEscape(key) + "?fields=summary"
	if err := c.get(ctx, path, &iss); err != nil {
		return "", err
	}
	if iss.Fields.Summary == "" {
		return "", fmt.Errorf("%w: issue %s has no summary", ErrInvalidResponse, key)
	}
	return iss.Fields.Summary, nil
}

// get performs an authenticated GET and unmarshals the JSON response,
// mapping transport and status failures onto the package's error kinds.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrTimeout, path)
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: check the API token for %s", ErrUnauthorized, c.baseURL)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w on %s", ErrForbidden, path)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w on %s", ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		var jiraErr errorResponse
		if json.Unmarshal(body, &jiraErr) == nil && len(jiraErr.ErrorMessages) > 0 {
			return fmt.Errorf("%w: status %d: %s",
				ErrInvalidResponse, resp.StatusCode,
				strings.Join(jiraErr.ErrorMessages, "; "))
		}
		return fmt.Errorf("%w: status %d on %s", ErrInvalidResponse, resp.StatusCode, path)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
