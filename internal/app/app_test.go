package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/effortlog/internal/ui/calendarview"
)

func TestSearchFailureSurfacesAsErrorToast(t *testing.T) {
	m := Model{currentView: ViewEntryForm, searchSeq: 2}

	updated, cmd := m.Update(searchResultMsg{seq: 2, err: errors.New("boom")})
	got := updated.(Model)

	assert.True(t, got.toastIsError)
	assert.Contains(t, got.toast, "boom")
	require.NotNil(t, cmd, "toast expiry must be scheduled")
}

func TestStaleSearchFailureIsDropped(t *testing.T) {
	m := Model{currentView: ViewEntryForm, searchSeq: 5}

	updated, _ := m.Update(searchResultMsg{seq: 4, err: errors.New("boom")})
	got := updated.(Model)

	assert.Empty(t, got.toast)
}

func TestIssueLookupWithoutClientShowsError(t *testing.T) {
	m := Model{}

	updated, _ := m.Update(calendarview.IssueLookupRequestedMsg{Key: "PROJ-1"})
	got := updated.(Model)

	assert.True(t, got.toastIsError)
	assert.Contains(t, got.toast, "settings")
}

func TestIssueSummaryShowsToast(t *testing.T) {
	m := Model{}

	updated, _ := m.Update(issueSummaryMsg{key: "PROJ-1", summary: "Fix login redirect"})
	got := updated.(Model)

	assert.False(t, got.toastIsError)
	assert.Equal(t, "PROJ-1: Fix login redirect", got.toast)
}

func TestIssueSummaryFailureShowsError(t *testing.T) {
	m := Model{}

	updated, _ := m.Update(issueSummaryMsg{key: "PROJ-1", err: errors.New("issue does not exist")})
	got := updated.(Model)

	assert.True(t, got.toastIsError)
	assert.Contains(t, got.toast, "PROJ-1")
}
