package ai

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/effortlog/internal/model"
)

func TestConversationTrimsButKeepsSystemPrompt(t *testing.T) {
	c := NewConversationContext("briefing")
	for i := 0; i < 30; i++ {
		c.AddMessage(RoleUser, fmt.Sprintf("msg %d", i))
	}

	msgs := c.GetMessages()
	require.Len(t, msgs, 20)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, "briefing", msgs[0].Content)
	assert.Equal(t, "msg 29", msgs[len(msgs)-1].Content)
}

func TestResetKeepsSystemPrompt(t *testing.T) {
	c := NewConversationContext("briefing")
	c.AddMessage(RoleUser, "hello")
	c.Reset()

	msgs := c.GetMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleSystem, msgs[0].Role)
}

func TestSetSystemPromptReplacesInPlace(t *testing.T) {
	c := NewConversationContext("old")
	c.AddMessage(RoleUser, "hello")
	c.SetSystemPrompt("new")

	msgs := c.GetMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "new", msgs[0].Content)
	assert.Equal(t, "hello", msgs[1].Content)
}

func TestBuildSystemPromptWindowsRecentDays(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	logs := model.LogCollection{
		"2024-06-10": {{Text: "Code review", DurationHours: 1.5, CreatedAt: 1}},
		"2024-01-02": {{Text: "Ancient work", DurationHours: 8, CreatedAt: 1}},
	}

	prompt := BuildSystemPrompt(logs, now)
	assert.Contains(t, prompt, "2024-06-10")
	assert.Contains(t, prompt, "Code review (1.5 sa)")
	assert.NotContains(t, prompt, "Ancient work")
}
