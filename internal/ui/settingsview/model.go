// Package settingsview is the huh-based settings form. Secrets entered
// here are handed back to the root model for keyring storage and never
// land in the YAML config.
package settingsview

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/effortlog/internal/model"
	"github.com/nhle/effortlog/internal/theme"
)

// SettingsSavedMsg is dispatched when the form is submitted. JiraToken
// and AIKey are empty when unchanged; the Clear flags report that the
// user asked to forget a stored secret.
type SettingsSavedMsg struct {
	Settings       model.Settings
	JiraToken      string
	AIKey          string
	ClearJiraToken bool
	ClearAIKey     bool
}

// SettingsCancelMsg is dispatched when the user cancels the form.
type SettingsCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	themeChoice     string
	jiraBaseURL     string
	jiraEmail       string
	jiraToken       string
	aiModel         string
	aiKey           string
	showAIChat      bool
	reminderEnabled bool
}

// Model is the Bubble Tea model for the settings form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	current model.Settings
	width   int
	height  int
}

// New creates a settings form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Open reports whether the form is currently showing.
func (m Model) Open() bool { return m.form != nil }

// Start opens the form pre-filled from the current settings.
func (m *Model) Start(settings model.Settings) tea.Cmd {
	m.current = settings
	*m.fb = formBindings{
		themeChoice:     settings.Theme,
		jiraBaseURL:     settings.Jira.BaseURL,
		jiraEmail:       settings.Jira.Email,
		aiModel:         settings.AI.Model,
		showAIChat:      settings.ShowAIChat,
		reminderEnabled: settings.ReminderEnabled,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings form.
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
		m.form = nil
		return m, func() tea.Msg { return SettingsCancelMsg{} }
	}

	return m, cmd
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Settings") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Auto", ""),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&m.fb.themeChoice),
			huh.NewConfirm().
				Title("Show AI chat").
				Value(&m.fb.showAIChat),
			huh.NewConfirm().
				Title("Daily reminder").
				Value(&m.fb.reminderEnabled),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Jira base URL").
				Placeholder("https://yourteam.atlassian.net").
				Value(&m.fb.jiraBaseURL).
				Validate(validateOptionalURL),
			huh.NewInput().
				Title("Jira email").
				Value(&m.fb.jiraEmail),
			huh.NewInput().
				Title("Jira API token").
				EchoMode(huh.EchoModePassword).
				Description("Empty keeps the stored token, \"-\" forgets it").
				Value(&m.fb.jiraToken),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("AI model").
				Placeholder("gpt-4o-mini").
				Value(&m.fb.aiModel),
			huh.NewInput().
				Title("AI API key").
				EchoMode(huh.EchoModePassword).
				Description("Empty keeps the stored key, \"-\" forgets it").
				Value(&m.fb.aiKey),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() (Model, tea.Cmd) {
	settings := m.current
	settings.Theme = m.fb.themeChoice
	settings.Jira.BaseURL = strings.TrimRight(strings.TrimSpace(m.fb.jiraBaseURL), "/")
	settings.Jira.Email = strings.TrimSpace(m.fb.jiraEmail)
	settings.AI.Model = strings.TrimSpace(m.fb.aiModel)
	settings.ShowAIChat = m.fb.showAIChat
	settings.ReminderEnabled = m.fb.reminderEnabled

	jiraToken, clearJira := resolveSecret(m.fb.jiraToken)
	aiKey, clearAI := resolveSecret(m.fb.aiKey)

	m.form = nil
	return m, func() tea.Msg {
		return SettingsSavedMsg{
			Settings:       settings,
			JiraToken:      jiraToken,
			AIKey:          aiKey,
			ClearJiraToken: clearJira,
			ClearAIKey:     clearAI,
		}
	}
}

// resolveSecret interprets a secret field: empty means keep the stored
// value, "-" means forget it, anything else replaces it.
func resolveSecret(raw string) (value string, clear bool) {
	raw = strings.TrimSpace(raw)
	if raw == "-" {
		return "", true
	}
	return raw, false
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

func validateOptionalURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("enter a full URL like https://yourteam.atlassian.net")
	}
	return nil
}
