package calendarview_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/effortlog/internal/calendar"
	"github.com/nhle/effortlog/internal/keys"
	"github.com/nhle/effortlog/internal/model"
	"github.com/nhle/effortlog/internal/ui/calendarview"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func monthModel(t *testing.T, logs model.LogCollection) calendarview.Model {
	t.Helper()
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	view := calendar.Render(2024, time.January, logs, nil, today)

	m := calendarview.New(keys.DefaultKeyMap(), 80, 24)
	m.SetMonth(view, "2024-01-01")
	m.FocusToday()
	return m
}

func TestIssueLookupOnSelectedEntry(t *testing.T) {
	m := monthModel(t, model.LogCollection{
		"2024-01-01": {{Text: "PROJ-7 fix login", DurationHours: 2, CreatedAt: 1}},
	})

	m, _ = m.Update(keyPress('j'))
	_, cmd := m.Update(keyPress('i'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(calendarview.IssueLookupRequestedMsg)
	require.True(t, ok)
	assert.Equal(t, "PROJ-7", msg.Key)
}

func TestIssueLookupIgnoredWithoutIssueKey(t *testing.T) {
	m := monthModel(t, model.LogCollection{
		"2024-01-01": {{Text: "lunch and learn", DurationHours: 1, CreatedAt: 1}},
	})

	m, _ = m.Update(keyPress('j'))
	_, cmd := m.Update(keyPress('i'))
	assert.Nil(t, cmd)
}

func TestIssueLookupIgnoredOnDayCursor(t *testing.T) {
	m := monthModel(t, model.LogCollection{
		"2024-01-01": {{Text: "PROJ-7 fix login", DurationHours: 2, CreatedAt: 1}},
	})

	_, cmd := m.Update(keyPress('i'))
	assert.Nil(t, cmd)
}
