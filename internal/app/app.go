// Package app is the root Bubble Tea model: it routes between views,
// owns the log repository, and runs every data mutation so the views
// never touch the collection directly.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	aiservice "github.com/nhle/effortlog/internal/ai"
	"github.com/nhle/effortlog/internal/calendar"
	"github.com/nhle/effortlog/internal/keys"
	"github.com/nhle/effortlog/internal/logbook"
	"github.com/nhle/effortlog/internal/model"
	"github.com/nhle/effortlog/internal/source/jira"
	"github.com/nhle/effortlog/internal/stats"
	"github.com/nhle/effortlog/internal/ui"
	"github.com/nhle/effortlog/internal/ui/aichat"
	"github.com/nhle/effortlog/internal/ui/calendarview"
	"github.com/nhle/effortlog/internal/ui/entryform"
	helpview "github.com/nhle/effortlog/internal/ui/help"
	"github.com/nhle/effortlog/internal/ui/settingsview"
	"github.com/nhle/effortlog/internal/ui/summaryview"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewCalendar ViewState = iota
	ViewEntryForm
	ViewSummary
	ViewSettings
	ViewAIChat
	ViewHelp
)

// Model is the root Bubble Tea model.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	repo       *logbook.Repository
	settings   *model.Settings
	holidays   []model.Holiday
	jiraClient *jira.Client
	assistant  *aiservice.Assistant

	configPath string

	// Visible month and summarized year.
	year  int
	month time.Month

	calendarView calendarview.Model
	formView     entryform.Model
	summaryView  summaryview.Model
	settingsView settingsview.Model
	chatView     aichat.Model
	helpView     helpview.Model

	toast        string
	toastIsError bool
	toastSeq     int

	// Issue search debounce state.
	searchSeq   int
	searchQuery string

	ready bool
}

// New creates the root model. The repository must already be loaded.
func New(
	repo *logbook.Repository,
	settings *model.Settings,
	holidays []model.Holiday,
	jiraClient *jira.Client,
	assistant *aiservice.Assistant,
	configPath string,
) Model {
	km := keys.DefaultKeyMap()
	now := time.Now()

	m := Model{
		currentView:  ViewCalendar,
		keys:         km,
		repo:         repo,
		settings:     settings,
		holidays:     holidays,
		jiraClient:   jiraClient,
		assistant:    assistant,
		configPath:   configPath,
		year:         now.Year(),
		month:        now.Month(),
		calendarView: calendarview.New(km, 80, 24),
		formView:     entryform.New(settings.QuickDurations, 80, 24),
		summaryView:  summaryview.New(km, 80, 24),
		settingsView: settingsview.New(80, 24),
		chatView:     aichat.New(assistant, km, 80, 24),
		helpView:     helpview.New(km, 80, 24),
	}
	m.refreshCalendar()
	m.calendarView.FocusToday()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// refreshCalendar re-renders the visible month from the repository.
func (m *Model) refreshCalendar() {
	logs := calendar.MonthSlice(m.repo.Collection(), m.year, m.month)
	view := calendar.Render(m.year, m.month, logs, m.holidays, time.Now())
	m.calendarView.SetMonth(view, model.DateKey(time.Now()))
}

// refreshSummary recomputes the year summary.
func (m *Model) refreshSummary(year int) {
	m.summaryView.SetSummary(
		stats.Summarize(stats.YearSlice(m.repo.Collection(), year), year))
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.calendarView.SetSize(w, h)
		m.formView.SetSize(w, h)
		m.summaryView.SetSize(w, h)
		m.settingsView.SetSize(w, h)
		m.chatView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		return m.updateActiveView(msg)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
			m.toastIsError = false
		}
		return m, nil

	case calendarview.AddRequestedMsg:
		m.switchTo(ViewEntryForm)
		m.formView.SetRecentTexts(
			stats.RecentTexts(m.repo.Collection(), time.Now(), 30, 5))
		return m, m.formView.StartCreate(msg.Date)

	case calendarview.EditRequestedMsg:
		day := m.repo.EntriesForDate(msg.Date)
		if msg.Index < 0 || msg.Index >= len(day) {
			return m.showError(fmt.Errorf("entry no longer exists"))
		}
		m.switchTo(ViewEntryForm)
		return m, m.formView.StartEdit(msg.Date, msg.Index, day[msg.Index])

	case calendarview.DeleteRequestedMsg:
		day := m.repo.EntriesForDate(msg.Date)
		if msg.Index < 0 || msg.Index >= len(day) {
			return m.showError(fmt.Errorf("entry no longer exists"))
		}
		m.switchTo(ViewEntryForm)
		return m, m.formView.StartDelete(msg.Date, msg.Index, day[msg.Index].Text)

	case calendarview.ClearRequestedMsg:
		return m.runMutation(func(ctx context.Context) error {
			return m.repo.ClearDay(ctx, msg.Date)
		}, "Day cleared")

	case calendarview.CopyRequestedMsg:
		return m.copyDayToClipboard(msg.Date)

	case calendarview.CopyNextRequestedMsg:
		return m.copyToNextBusinessDay(msg.Date)

	case calendarview.MonthChangedMsg:
		m.year, m.month = msg.Year, msg.Month
		m.refreshCalendar()
		return m, nil

	case calendarview.DropResolvedMsg:
		return m.applyDrop(msg.Drop)

	case entryform.EntrySavedMsg:
		m.switchTo(ViewCalendar)
		if msg.Index < 0 {
			return m.runMutation(func(ctx context.Context) error {
				return m.repo.Add(ctx, msg.Date, msg.Entry)
			}, "Entry added")
		}
		return m.runMutation(func(ctx context.Context) error {
			return m.repo.Update(ctx, msg.Date, msg.Index, msg.Entry)
		}, "Entry updated")

	case entryform.EntryDeletedMsg:
		m.switchTo(ViewCalendar)
		return m.runMutation(func(ctx context.Context) error {
			return m.repo.Delete(ctx, msg.Date, msg.Index)
		}, "Entry deleted")

	case entryform.FormCancelMsg:
		m.switchTo(ViewCalendar)
		return m, nil

	case searchTickMsg:
		return m.runDebouncedSearch(msg)

	case searchResultMsg:
		if msg.seq != m.searchSeq || m.currentView != ViewEntryForm {
			return m, nil
		}
		if msg.err != nil {
			return m.showError(fmt.Errorf("issue search: %w", msg.err))
		}
		m.formView.SetSuggestions(msg.refs)
		return m, nil

	case calendarview.IssueLookupRequestedMsg:
		return m.lookupIssue(msg.Key)

	case issueSummaryMsg:
		if msg.err != nil {
			return m.showError(fmt.Errorf("%s: %w", msg.key, msg.err))
		}
		cmd := m.showToast(msg.key+": "+msg.summary, false)
		return m, cmd

	case summaryview.YearChangedMsg:
		m.refreshSummary(msg.Year)
		return m, nil

	case settingsview.SettingsSavedMsg:
		return m.applySettings(msg)

	case settingsview.SettingsCancelMsg:
		m.switchTo(ViewCalendar)
		return m, nil

	case aichat.ChatCloseMsg:
		m.switchTo(ViewCalendar)
		return m, nil

	case aichat.ChatResponseMsg:
		if m.currentView == ViewAIChat {
			var cmd tea.Cmd
			m.chatView, cmd = m.chatView.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if handled, mdl, cmd := m.handleGlobalKey(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that switch views. Text-input views
// keep their keystrokes.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	typing := m.currentView == ViewEntryForm ||
		m.currentView == ViewSettings ||
		m.currentView == ViewAIChat

	switch msg.String() {
	case "ctrl+c":
		return true, m, tea.Quit

	case "q":
		if m.currentView == ViewCalendar && !m.calendarView.Dragging() {
			return true, m, tea.Quit
		}

	case "?":
		if typing {
			break
		}
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.switchTo(ViewHelp)
		return true, m, nil

	case "s":
		if m.currentView == ViewCalendar && !m.calendarView.Dragging() {
			m.refreshSummary(m.year)
			m.switchTo(ViewSummary)
			return true, m, nil
		}

	case ",":
		if m.currentView == ViewCalendar {
			m.switchTo(ViewSettings)
			return true, m, m.settingsView.Start(*m.settings)
		}

	case "c":
		if m.currentView == ViewCalendar && m.settings.ShowAIChat {
			m.refreshChatBriefing()
			m.switchTo(ViewAIChat)
			return true, m, m.chatView.Focus()
		}

	case "E":
		if m.currentView == ViewCalendar {
			mdl, cmd := m.exportLogs()
			return true, mdl, cmd
		}

	case "esc":
		if m.currentView == ViewSummary || m.currentView == ViewHelp {
			m.switchTo(ViewCalendar)
			return true, m, nil
		}
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewCalendar:
		m.calendarView, cmd = m.calendarView.Update(msg)
	case ViewEntryForm:
		m.formView, cmd = m.formView.Update(msg)
		if m.formView.Open() {
			if tick := m.scheduleSearch(); tick != nil {
				cmd = tea.Batch(cmd, tick)
			}
		}
	case ViewSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewAIChat:
		m.chatView, cmd = m.chatView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Effort Log", m.viewLabel())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.toast, m.toastIsError)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCalendar:
		return m.calendarView.View()
	case ViewEntryForm:
		return m.formView.View()
	case ViewSummary:
		return m.summaryView.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewAIChat:
		return m.chatView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

func (m Model) viewLabel() string {
	switch m.currentView {
	case ViewEntryForm:
		return "entry"
	case ViewSummary:
		return "summary"
	case ViewSettings:
		return "settings"
	case ViewAIChat:
		return "chat"
	case ViewHelp:
		return "help"
	default:
		return fmt.Sprintf("%s %d", m.month.String(), m.year)
	}
}

func (m Model) keyHints() string {
	switch m.currentView {
	case ViewCalendar:
		if m.calendarView.Dragging() {
			return "j/k slot | h/l day | enter drop | esc cancel"
		}
		return "n new | enter edit | i issue | m grab | y copy | s summary | ? help | q quit"
	case ViewEntryForm:
		return "enter next | esc cancel"
	case ViewSummary:
		return "[/] year | esc back"
	case ViewSettings:
		return "enter next | esc cancel"
	case ViewAIChat:
		return "enter send | esc close"
	default:
		return "? close help"
	}
}

func (m *Model) switchTo(v ViewState) {
	m.previousView = m.currentView
	m.currentView = v
}

// refreshChatBriefing rebuilds the assistant's system prompt from the
// current collection before opening the chat.
func (m *Model) refreshChatBriefing() {
	if m.assistant != nil {
		m.assistant.SetSystemPrompt(
			aiservice.BuildSystemPrompt(m.repo.Collection(), time.Now()))
	}
}
