// Package ai talks to an OpenAI-compatible chat-completion API and keeps
// a trimmed conversation history for the chat view.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/nhle/effortlog/internal/calendar"
	"github.com/nhle/effortlog/internal/model"
)

const (
	defaultModel   = "gpt-4o-mini"
	requestTimeout = 30 * time.Second

	// Days of recent logs folded into the system prompt.
	promptWindowDays = 30
)

// Failure kinds, matched with errors.Is by the chat view.
var (
	ErrUnauthorized    = errors.New("ai: authentication failed")
	ErrTimeout         = errors.New("ai: request timed out")
	ErrNetwork         = errors.New("ai: network failure")
	ErrInvalidResponse = errors.New("ai: unexpected response shape")
)

// StreamChunk represents a piece of the assistant response delivered to
// the chat view.
type StreamChunk struct {
	Text string
	Err  error
	Done bool
}

// Assistant is the chat service. It sends the conversation to the
// configured endpoint and reports the reply over a channel; a failed
// call is surfaced once and never retried.
type Assistant struct {
	baseURL string
	apiKey  string
	model   string
	context *ConversationContext
	client  *http.Client
}

// New creates an assistant for an OpenAI-compatible endpoint. The
// baseURL is the API root (e.g. https://api.openai.com); the path
// /v1/chat/completions is appended per request.
func New(baseURL, apiKey, modelName, systemPrompt string) *Assistant {
	if modelName == "" {
		modelName = defaultModel
	}
	return &Assistant{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   modelName,
		context: NewConversationContext(systemPrompt),
		client:  &http.Client{},
	}
}

// Configured reports whether the assistant has an API key.
func (a *Assistant) Configured() bool { return a.apiKey != "" }

// Reset clears the conversation history.
func (a *Assistant) Reset() { a.context.Reset() }

// SetSystemPrompt refreshes the log summary the assistant answers from.
func (a *Assistant) SetSystemPrompt(prompt string) { a.context.SetSystemPrompt(prompt) }

// SendMessage sends a user message and returns a channel that receives
// the reply. The channel is closed when the response is complete.
func (a *Assistant) SendMessage(ctx context.Context, userMsg string) (<-chan StreamChunk, error) {
	if !a.Configured() {
		return nil, fmt.Errorf("%w: no API key", ErrUnauthorized)
	}
	a.context.AddMessage(RoleUser, userMsg)

	ch := make(chan StreamChunk, 1)
	go func() {
		defer close(ch)

		reply, err := a.complete(ctx)
		if err != nil {
			ch <- StreamChunk{Err: err, Done: true}
			return
		}
		a.context.AddMessage(RoleAssistant, reply)
		ch <- StreamChunk{Text: reply, Done: true}
	}()
	return ch, nil
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (a *Assistant) complete(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(chatRequest{
		Model:    a.model,
		Messages: a.context.GetMessages(),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		a.baseURL+"/v1/chat/completions",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var parsed chatResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
			return "", fmt.Errorf("%w: status %d: %s",
				ErrInvalidResponse, resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrInvalidResponse)
	}
	return parsed.Choices[0].Message.Content, nil
}

// BuildSystemPrompt folds the most recent month of logs into a compact
// briefing the assistant answers questions from.
func BuildSystemPrompt(logs model.LogCollection, now time.Time) string {
	var b strings.Builder
	b.WriteString("You are an assistant for a personal effort log. ")
	b.WriteString("Answer questions about the user's logged work, totals and habits. ")
	b.WriteString("Durations are in hours. Recent entries follow.\n")

	cutoff := now.AddDate(0, 0, -promptWindowDays).Format(model.DateFormat)
	dates := make([]string, 0, len(logs))
	for date := range logs {
		if date >= cutoff {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)

	if len(dates) == 0 {
		b.WriteString("No entries in the last 30 days.\n")
		return b.String()
	}

	for _, date := range dates {
		dayLog := logs[date]
		fmt.Fprintf(&b, "%s (%s sa):\n", date, calendar.FormatHours(dayLog.TotalHours()))
		for _, entry := range dayLog {
			fmt.Fprintf(&b, "- %s (%s sa)\n",
				entry.Text, calendar.FormatHours(entry.DurationHours))
		}
	}
	return b.String()
}
