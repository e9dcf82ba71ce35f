package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	aiservice "github.com/nhle/effortlog/internal/ai"
	"github.com/nhle/effortlog/internal/calendar"
	"github.com/nhle/effortlog/internal/credential"
	"github.com/nhle/effortlog/internal/drag"
	"github.com/nhle/effortlog/internal/export"
	"github.com/nhle/effortlog/internal/model"
	"github.com/nhle/effortlog/internal/source/jira"
	"github.com/nhle/effortlog/internal/theme"
	"github.com/nhle/effortlog/internal/ui/aichat"
	"github.com/nhle/effortlog/internal/ui/settingsview"
)

const (
	toastDuration  = 3 * time.Second
	searchDebounce = 350 * time.Millisecond
	searchMinChars = 2
)

type toastExpiredMsg struct{ seq int }

type searchTickMsg struct {
	seq   int
	query string
}

type searchResultMsg struct {
	seq  int
	refs []jira.IssueRef
	err  error
}

type issueSummaryMsg struct {
	key     string
	summary string
	err     error
}

// showToast installs a transient status-bar message.
func (m *Model) showToast(text string, isError bool) tea.Cmd {
	m.toast = text
	m.toastIsError = isError
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m Model) showError(err error) (tea.Model, tea.Cmd) {
	cmd := m.showToast(err.Error(), true)
	return m, cmd
}

// runMutation applies a repository mutation, re-renders the calendar,
// and reports the outcome in the status bar. On a storage failure the
// repository reloads so the in-memory state resyncs with the store.
func (m Model) runMutation(mutate func(context.Context) error, successToast string) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	if err := mutate(ctx); err != nil {
		_ = m.repo.Load(ctx)
		m.refreshCalendar()
		return m.showError(err)
	}
	m.refreshCalendar()
	cmd := m.showToast(successToast, false)
	return m, cmd
}

// applyDrop turns a finished grab gesture into the matching repository
// operation. Noop drops touch nothing, not even persistence.
func (m Model) applyDrop(drop drag.Drop) (tea.Model, tea.Cmd) {
	if drop.SameDay {
		if drop.Noop {
			return m, nil
		}
		return m.runMutation(func(ctx context.Context) error {
			return m.repo.ReorderWithinDay(ctx, drop.SourceDate, drop.SourceIndex, drop.InsertIndex)
		}, "Entry moved")
	}
	return m.runMutation(func(ctx context.Context) error {
		return m.repo.MoveAcrossDays(ctx, drop.SourceDate, drop.SourceIndex, drop.TargetDate)
	}, "Entry moved to "+drop.TargetDate)
}

// copyDayToClipboard copies a day's entries in the share format.
func (m Model) copyDayToClipboard(date string) (tea.Model, tea.Cmd) {
	day := m.repo.EntriesForDate(date)
	if len(day) == 0 {
		return m.showError(fmt.Errorf("nothing to copy on %s", date))
	}
	if err := clipboard.WriteAll(calendar.FormatDayForClipboard(date, day)); err != nil {
		return m.showError(fmt.Errorf("clipboard: %w", err))
	}
	cmd := m.showToast("Copied to clipboard", false)
	return m, cmd
}

// copyToNextBusinessDay duplicates a day's entries onto the first
// non-weekend, non-holiday day after it.
func (m Model) copyToNextBusinessDay(date string) (tea.Model, tea.Cmd) {
	target, err := calendar.NextBusinessDay(date, m.holidays)
	if err != nil {
		return m.showError(err)
	}
	return m.runMutation(func(ctx context.Context) error {
		_, err := m.repo.CopyDay(ctx, date, target)
		return err
	}, "Copied to "+target)
}

// exportLogs writes the whole collection next to the current directory
// as CSV.
func (m Model) exportLogs() (tea.Model, tea.Cmd) {
	name := fmt.Sprintf("effortlog-export-%s.csv", time.Now().Format("20060102"))
	f, err := os.Create(name)
	if err != nil {
		return m.showError(fmt.Errorf("creating %s: %w", name, err))
	}
	defer f.Close()

	if err := export.Write(f, m.repo.Collection(), export.FormatCSV); err != nil {
		return m.showError(err)
	}
	cmd := m.showToast("Exported to "+name, false)
	return m, cmd
}

// scheduleSearch arms the issue-search debounce timer when the entry
// form's text changed. Only the newest timer survives: older ticks are
// dropped by sequence number.
func (m *Model) scheduleSearch() tea.Cmd {
	if m.jiraClient == nil || !m.jiraClient.Configured() {
		return nil
	}

	query := strings.TrimSpace(m.formView.Query())
	if query == m.searchQuery {
		return nil
	}
	m.searchQuery = query
	m.searchSeq++
	seq := m.searchSeq

	if len(query) < searchMinChars {
		m.formView.SetSuggestions(nil)
		return nil
	}

	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq, query: query}
	})
}

// runDebouncedSearch fires the Jira search once the quiet period ends.
func (m Model) runDebouncedSearch(msg searchTickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.searchSeq || m.currentView != ViewEntryForm {
		return m, nil
	}

	client := m.jiraClient
	seq, query := msg.seq, msg.query
	return m, func() tea.Msg {
		refs, err := client.SearchIssues(context.Background(), query)
		return searchResultMsg{seq: seq, refs: refs, err: err}
	}
}

// lookupIssue fetches an issue's summary and shows it as a toast.
func (m Model) lookupIssue(key string) (tea.Model, tea.Cmd) {
	if m.jiraClient == nil || !m.jiraClient.Configured() {
		return m.showError(fmt.Errorf("configure Jira in settings first"))
	}
	client := m.jiraClient
	return m, func() tea.Msg {
		summary, err := client.FetchIssueSummary(context.Background(), key)
		return issueSummaryMsg{key: key, summary: summary, err: err}
	}
}

// applySettings persists the settings form result, stores any new
// secrets in the keyring, and rebuilds the dependent clients.
func (m Model) applySettings(msg settingsview.SettingsSavedMsg) (tea.Model, tea.Cmd) {
	*m.settings = msg.Settings

	if err := model.SaveSettings(m.configPath, m.settings); err != nil {
		m.switchTo(ViewCalendar)
		return m.showError(err)
	}

	if err := m.applySecret(credential.KeyJiraToken, msg.JiraToken, msg.ClearJiraToken); err != nil {
		m.switchTo(ViewCalendar)
		return m.showError(err)
	}
	if err := m.applySecret(credential.KeyAIKey, msg.AIKey, msg.ClearAIKey); err != nil {
		m.switchTo(ViewCalendar)
		return m.showError(err)
	}

	theme.Apply(*m.settings)
	m.rebuildClients()
	m.refreshCalendar()
	m.switchTo(ViewCalendar)
	cmd := m.showToast("Settings saved", false)
	return m, cmd
}

// applySecret updates one keyring entry from a settings form field:
// clear deletes the stored value, a non-empty value replaces it, and
// an empty value keeps whatever is stored.
func (m Model) applySecret(key, value string, clear bool) error {
	if clear {
		return credential.Delete(key)
	}
	if value != "" {
		return credential.Set(key, value)
	}
	return nil
}

// rebuildClients recreates the Jira client and AI assistant from the
// current settings and keyring.
func (m *Model) rebuildClients() {
	jiraToken, _ := credential.Get(credential.KeyJiraToken)
	m.jiraClient = jira.NewClient(m.settings.Jira.BaseURL, m.settings.Jira.Email, jiraToken)

	aiKey, _ := credential.Get(credential.KeyAIKey)
	m.assistant = aiservice.New("https://api.openai.com", aiKey, m.settings.AI.Model, "")
	m.chatView = aichat.New(m.assistant, m.keys, m.layout.ContentWidth(), m.layout.ContentHeight())
}
