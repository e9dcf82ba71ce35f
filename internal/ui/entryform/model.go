// Package entryform is the create/edit form for log entries. Validation
// runs in a fixed order (date, text, duration) and the duration resolves
// with a fixed precedence: a picked quick option, a duration token typed
// inside the text, then the dedicated duration field.
package entryform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/effortlog/internal/calendar"
	"github.com/nhle/effortlog/internal/model"
	"github.com/nhle/effortlog/internal/source/jira"
	"github.com/nhle/effortlog/internal/textscan"
	"github.com/nhle/effortlog/internal/theme"
)

// EntrySavedMsg is dispatched when the form is submitted. Index is -1
// for a new entry.
type EntrySavedMsg struct {
	Date  string
	Index int
	Entry model.LogEntry
}

// EntryDeletedMsg is dispatched when the user confirms a delete.
type EntryDeletedMsg struct {
	Date  string
	Index int
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	date          string
	text          string
	quickDuration float64
	duration      string
	confirmDelete bool
}

type mode int

const (
	modeClosed mode = iota
	modeCreate
	modeEdit
	modeDelete
)

// Model is the Bubble Tea model for the entry form.
type Model struct {
	form           *huh.Form
	fb             *formBindings
	mode           mode
	editDate       string
	editIndex      int
	editCreatedAt  int64
	quickDurations []float64
	suggestions    []jira.IssueRef
	recentTexts    []string
	width          int
	height         int
}

// New creates a new entry form model. quickDurations come from Settings.
func New(quickDurations []float64, width, height int) Model {
	if len(quickDurations) == 0 {
		quickDurations = model.DefaultQuickDurations
	}
	return Model{
		fb:             &formBindings{},
		quickDurations: quickDurations,
		width:          width,
		height:         height,
	}
}

// Open reports whether the form is currently showing.
func (m Model) Open() bool { return m.mode != modeClosed }

// Query returns the current text field value for issue search.
func (m Model) Query() string {
	if m.fb == nil {
		return ""
	}
	return m.fb.text
}

// SetSuggestions updates the issue suggestions rendered under the form.
func (m *Model) SetSuggestions(refs []jira.IssueRef) {
	m.suggestions = refs
}

// SetRecentTexts updates the repeated-entry hints shown while creating
// a new entry.
func (m *Model) SetRecentTexts(texts []string) {
	m.recentTexts = texts
}

// StartCreate opens the form for a new entry on the given date.
func (m *Model) StartCreate(date string) tea.Cmd {
	m.mode = modeCreate
	m.editIndex = -1
	m.editCreatedAt = 0
	*m.fb = formBindings{date: date}
	m.suggestions = nil
	m.form = m.buildEntryForm()
	return m.form.Init()
}

// StartEdit opens the form for the entry at date/index.
func (m *Model) StartEdit(date string, index int, entry model.LogEntry) tea.Cmd {
	m.mode = modeEdit
	m.editDate = date
	m.editIndex = index
	m.editCreatedAt = entry.CreatedAt
	*m.fb = formBindings{
		date:     date,
		text:     entry.Text,
		duration: calendar.FormatHours(entry.DurationHours),
	}
	m.suggestions = nil
	m.form = m.buildEntryForm()
	return m.form.Init()
}

// StartDelete opens a confirm dialog for the entry at date/index.
func (m *Model) StartDelete(date string, index int, text string) tea.Cmd {
	m.mode = modeDelete
	m.editDate = date
	m.editIndex = index
	*m.fb = formBindings{}
	m.suggestions = nil
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", text)).
			Affirmative("Delete").
			Negative("Keep").
			Value(&m.fb.confirmDelete),
	)).WithWidth(m.formWidth())
	return m.form.Init()
}

// Update handles messages for the entry form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		m.close()
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	return m, cmd
}

// View renders the entry form and any issue suggestions.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Entry"
	switch m.mode {
	case modeEdit:
		titleText = "Edit Entry"
	case modeDelete:
		titleText = "Delete Entry"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render(titleText), m.form.View()}

	if len(m.suggestions) > 0 {
		var b strings.Builder
		b.WriteString(theme.HelpStyle.Render("Matching issues:"))
		for _, ref := range m.suggestions {
			b.WriteString("\n  ")
			b.WriteString(theme.IssueKeyStyle.Render(ref.Key))
			b.WriteString(" ")
			b.WriteString(ref.Summary)
		}
		parts = append(parts, b.String())
	}

	if m.mode == modeCreate && len(m.suggestions) == 0 && len(m.recentTexts) > 0 {
		var b strings.Builder
		b.WriteString(theme.HelpStyle.Render("Recent entries:"))
		for _, text := range m.recentTexts {
			b.WriteString("\n  ")
			b.WriteString(text)
		}
		parts = append(parts, b.String())
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildEntryForm() *huh.Form {
	quickOpts := []huh.Option[float64]{huh.NewOption("none", 0.0)}
	for _, d := range m.quickDurations {
		quickOpts = append(quickOpts,
			huh.NewOption(calendar.FormatHours(d)+" sa", d))
	}

	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Date").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.date).
			Validate(validateDate),
		huh.NewInput().
			Title("What did you work on?").
			Placeholder("PROJ-123 fix login (2 sa)").
			Value(&m.fb.text).
			Validate(validateText),
		huh.NewSelect[float64]().
			Title("Quick duration").
			Options(quickOpts...).
			Value(&m.fb.quickDuration),
		huh.NewInput().
			Title("Hours").
			Placeholder("1.5").
			Value(&m.fb.duration).
			Validate(m.validateDuration),
	)).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() (Model, tea.Cmd) {
	switch m.mode {
	case modeDelete:
		date, index := m.editDate, m.editIndex
		confirmed := m.fb.confirmDelete
		m.close()
		if !confirmed {
			return m, func() tea.Msg { return FormCancelMsg{} }
		}
		return m, func() tea.Msg {
			return EntryDeletedMsg{Date: date, Index: index}
		}

	default:
		date := strings.TrimSpace(m.fb.date)
		text := strings.TrimSpace(m.fb.text)
		hours, text := m.resolveDuration(text)

		entry := model.LogEntry{
			Text:          text,
			DurationHours: hours,
			CreatedAt:     m.editCreatedAt,
		}
		index := m.editIndex
		m.close()
		return m, func() tea.Msg {
			return EntrySavedMsg{Date: date, Index: index, Entry: entry}
		}
	}
}

// resolveDuration applies the duration precedence. When the duration
// comes from a token inside the text, the token is removed from the
// saved text.
func (m Model) resolveDuration(text string) (float64, string) {
	if m.fb.quickDuration > 0 {
		return m.fb.quickDuration, text
	}
	if hours, rewritten, ok := textscan.ExtractDuration(text); ok && hours > 0 {
		return hours, rewritten
	}
	hours, _ := parseHours(m.fb.duration)
	return hours, text
}

func (m *Model) close() {
	m.mode = modeClosed
	m.form = nil
	m.suggestions = nil
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateDate(s string) error {
	if !model.ValidDateKey(strings.TrimSpace(s)) {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

// validateDuration checks that some source will yield a positive
// duration, honoring the quick-option and embedded-token precedence.
func (m Model) validateDuration(s string) error {
	if m.fb.quickDuration > 0 {
		return nil
	}
	if hours, _, ok := textscan.ExtractDuration(m.fb.text); ok && hours > 0 {
		return nil
	}
	hours, err := parseHours(s)
	if err != nil || hours <= 0 {
		return fmt.Errorf("enter hours > 0, pick a quick duration, or add e.g. \"2 sa\" to the text")
	}
	return nil
}

func parseHours(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("empty")
	}
	return strconv.ParseFloat(s, 64)
}
