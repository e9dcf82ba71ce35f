package jira

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	issueKeyQuery   = regexp.MustCompile(`^[A-Z][A-Z0-9]+-\d+$`)
	projectKeyQuery = regexp.MustCompile(`^[A-Z][A-Z0-9]+-?$`)
)

// ClassifyQuery turns the entry form's free text into JQL, following
// three rules in order:
//
//   - an exact PROJECT-123 token searches that issue by key;
//   - a bare project key (optionally with a trailing dash) lists the
//     current user's recently updated issues in that project;
//   - anything else is a prefix text search over the current user's
//     issues, most recently updated first.
//
// Queries shorter than two characters produce no JQL.
func ClassifyQuery(query string) (string, bool) {
	q := strings.TrimSpace(query)
	if len(q) < 2 {
		return "", false
	}

	upper := strings.ToUpper(q)
	switch {
	case issueKeyQuery.MatchString(upper):
		return fmt.Sprintf("issuekey = %q", upper), true
	case projectKeyQuery.MatchString(upper):
		project := strings.TrimSuffix(upper, "-")
		return fmt.Sprintf(
			"project = %q AND assignee = currentUser() ORDER BY updated DESC",
			project,
		), true
	default:
		term := `"` + escapeJQL(q) + `*"`
		return "assignee = currentUser() AND text ~ " + term +
			" ORDER BY updated DESC", true
	}
}

// escapeJQL neutralizes quotes and backslashes inside a text term.
func escapeJQL(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	return strings.ReplaceAll(term, `"`, `\"`)
}
