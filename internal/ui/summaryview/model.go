// Package summaryview renders the yearly statistics: headline numbers,
// monthly hour bars and a per-day heat map.
package summaryview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/effortlog/internal/calendar"
	"github.com/nhle/effortlog/internal/keys"
	"github.com/nhle/effortlog/internal/model"
	"github.com/nhle/effortlog/internal/stats"
	"github.com/nhle/effortlog/internal/theme"
)

// YearChangedMsg reports that the summarized year changed.
type YearChangedMsg struct{ Year int }

const heatLevels = 5

var heatBlocks = []string{"·", "░", "▒", "▓", "█"}

// Model is the Bubble Tea model for the yearly summary view.
type Model struct {
	keys    *keys.KeyMap
	summary stats.YearSummary
	width   int
	height  int
}

// New creates a summary view model.
func New(km *keys.KeyMap, width, height int) Model {
	return Model{keys: km, width: width, height: height}
}

// SetSummary installs a freshly computed year summary.
func (m *Model) SetSummary(s stats.YearSummary) {
	m.summary = s
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles year navigation.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.PrevMonth):
		year := m.summary.Year - 1
		return m, func() tea.Msg { return YearChangedMsg{Year: year} }
	case key.Matches(keyMsg, m.keys.NextMonth):
		year := m.summary.Year + 1
		return m, func() tea.Msg { return YearChangedMsg{Year: year} }
	}
	return m, nil
}

// View renders the summary.
func (m Model) View() string {
	s := m.summary

	title := theme.TotalStyle.Render(fmt.Sprintf("Summary %d", s.Year))

	headline := []string{
		fmt.Sprintf("Total: %s sa", calendar.FormatHours(s.TotalHours)),
		fmt.Sprintf("Active days: %d", s.ActiveDays),
		fmt.Sprintf("Entries: %d", s.EntryCount),
		fmt.Sprintf("Avg/day: %s sa", calendar.FormatHours(s.AvgPerDay)),
		fmt.Sprintf("Longest streak: %d", s.LongestStreak),
	}
	if s.BusiestDate != "" {
		headline = append(headline, fmt.Sprintf("Busiest: %s (%s sa)",
			s.BusiestDate, calendar.FormatHours(s.BusiestHrs)))
	}
	if s.MostFrequentText != "" {
		headline = append(headline, fmt.Sprintf("Most logged: %q ×%d",
			s.MostFrequentText, s.MostFrequentCount))
	}

	sections := []string{
		title,
		strings.Join(headline, "   "),
		"",
		m.renderMonthlyBars(),
		"",
		m.renderHeatMap(),
		"",
		theme.HelpStyle.Render("[/] previous year   ]/ next year   esc back"),
	}

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderMonthlyBars draws one horizontal bar per month, scaled to the
// largest month.
func (m Model) renderMonthlyBars() string {
	maxHours := 0.0
	for _, h := range m.summary.MonthlyHours {
		if h > maxHours {
			maxHours = h
		}
	}

	barWidth := m.width - 30
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for i, h := range m.summary.MonthlyHours {
		month := time.Month(i + 1)
		filled := 0
		if maxHours > 0 {
			filled = int(h / maxHours * float64(barWidth))
		}
		bar := theme.TotalStyle.Render(strings.Repeat("█", filled))
		lines = append(lines, fmt.Sprintf("%-4s %s %s",
			month.String()[:3], bar, calendar.FormatHours(h)))
	}
	return strings.Join(lines, "\n")
}

// renderHeatMap draws a month-by-day grid, one colored block per day.
func (m Model) renderHeatMap() string {
	maxHours := 0.0
	for _, h := range m.summary.DailyHours {
		if h > maxHours {
			maxHours = h
		}
	}

	var lines []string
	for monthIdx := 1; monthIdx <= 12; monthIdx++ {
		month := time.Month(monthIdx)
		first := time.Date(m.summary.Year, month, 1, 0, 0, 0, 0, time.Local)
		daysInMonth := first.AddDate(0, 1, -1).Day()

		var b strings.Builder
		fmt.Fprintf(&b, "%-4s ", month.String()[:3])
		for day := 1; day <= daysInMonth; day++ {
			date := time.Date(m.summary.Year, month, day, 0, 0, 0, 0, time.Local)
			hours := m.summary.DailyHours[model.DateKey(date)]

			level := stats.HeatLevel(hours, maxHours, heatLevels)
			color := stats.HeatColor(hours, maxHours, theme.HeatLowHex, theme.HeatHighHex)
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(color)).
				Render(heatBlocks[level]))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
