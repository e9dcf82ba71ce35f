package jira

import "errors"

// Failure kinds for issue lookups. Callers match with errors.Is and
// turn them into user-facing toasts; none of them is retried.
var (
	ErrUnauthorized    = errors.New("jira: authentication failed")
	ErrForbidden       = errors.New("jira: access denied")
	ErrNotFound        = errors.New("jira: issue not found")
	ErrTimeout         = errors.New("jira: request timed out")
	ErrNetwork         = errors.New("jira: network failure")
	ErrInvalidResponse = errors.New("jira: unexpected response shape")
)
