package jira

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchIssues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "me@example.com", user)
		assert.Equal(t, "token123", pass)
		assert.Equal(t, "/rest/api/3/search", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("jql"), `issuekey = "PROJ-1"`)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total":1,"issues":[{"id":"1","key":"PROJ-1","fields":{"summary":"Fix login"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "me@example.com", "token123")
	refs, err := c.SearchIssues(context.Background(), "PROJ-1")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, IssueRef{Key: "PROJ-1", Summary: "Fix login"}, refs[0])
}

func TestSearchIssuesSkipsShortQuery(t *testing.T) {
	c := NewClient("http://invalid.localhost", "a@b", "t")
	refs, err := c.SearchIssues(context.Background(), "a")
	assert.NoError(t, err)
	assert.Empty(t, refs)
}

func TestFetchIssueSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/issue/PROJ-7", r.URL.Path)
		w.Write([]byte(`{"key":"PROJ-7","fields":{"summary":"Upgrade runtime"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "me@example.com", "token123")
	summary, err := c.FetchIssueSummary(context.Background(), "PROJ-7")
	require.NoError(t, err)
	assert.Equal(t, "Upgrade runtime", summary)
}

func TestStatusCodesMapToTypedErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrInvalidResponse},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		c := NewClient(srv.URL, "me@example.com", "token123")
		_, err := c.FetchIssueSummary(context.Background(), "PROJ-1")
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
		srv.Close()
	}
}

func TestMalformedBodyIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "me@example.com", "token123")
	_, err := c.FetchIssueSummary(context.Background(), "PROJ-1")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestConfigured(t *testing.T) {
	assert.True(t, NewClient("https://x.atlassian.net", "a@b", "t").Configured())
	assert.False(t, NewClient("", "a@b", "t").Configured())
	assert.False(t, NewClient("https://x.atlassian.net", "", "t").Configured())
}
