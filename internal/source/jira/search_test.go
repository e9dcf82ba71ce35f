package jira

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
		ok    bool
	}{
		{
			name:  "exact issue key",
			query: "PROJ-123",
			want:  `issuekey = "PROJ-123"`,
			ok:    true,
		},
		{
			name:  "issue key is case-insensitive",
			query: "proj-123",
			want:  `issuekey = "PROJ-123"`,
			ok:    true,
		},
		{
			name:  "bare project key",
			query: "PROJ",
			want:  `project = "PROJ" AND assignee = currentUser() ORDER BY updated DESC`,
			ok:    true,
		},
		{
			name:  "project key with trailing dash",
			query: "PROJ-",
			want:  `project = "PROJ" AND assignee = currentUser() ORDER BY updated DESC`,
			ok:    true,
		},
		{
			name:  "free text becomes a prefix search",
			query: "login bug",
			want:  `assignee = currentUser() AND text ~ "login bug*" ORDER BY updated DESC`,
			ok:    true,
		},
		{
			name:  "quotes in free text are escaped",
			query: `say "hi"`,
			want:  `assignee = currentUser() AND text ~ "say \"hi\"*" ORDER BY updated DESC`,
			ok:    true,
		},
		{
			name:  "single character is ignored",
			query: "a",
			ok:    false,
		},
		{
			name:  "whitespace only is ignored",
			query: "   ",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyQuery(tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
