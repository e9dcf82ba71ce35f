package jira

// IssueRef is the key/summary pair shown in search suggestions.
type IssueRef struct {
	Key     string
	Summary string
}

// searchResponse is the response from GET /rest/api/3/search.
type searchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []issue `json:"issues"`
}

// issue represents a single issue from the REST API.
type issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Summary string `json:"summary"`
}

// errorResponse is the standard Jira error response format.
type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}
