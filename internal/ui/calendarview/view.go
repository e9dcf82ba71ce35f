package calendarview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/effortlog/internal/calendar"
	"github.com/nhle/effortlog/internal/theme"
)

// entriesPerCell caps how many entry lines a day cell shows; overflow
// collapses into a "+N more" line.
const entriesPerCell = 4

// View renders the month as a week-per-row grid.
func (m Model) View() string {
	if len(m.view.Cells) == 0 {
		return ""
	}

	cellWidth := m.width/7 - 2
	if cellWidth < 12 {
		cellWidth = 12
	}

	title := theme.TotalStyle.Render(
		fmt.Sprintf("%s %d", m.view.Month.String(), m.view.Year))

	var weeks []string
	var week []string

	// Pad the first week so weekdays line up, Monday first.
	pad := mondayIndex(m.view.Cells[0].Weekday)
	for i := 0; i < pad; i++ {
		week = append(week, lipgloss.NewStyle().Width(cellWidth+2).Render(""))
	}

	for i := range m.view.Cells {
		week = append(week, m.renderCell(&m.view.Cells[i], i, cellWidth))
		if len(week) == 7 {
			weeks = append(weeks, lipgloss.JoinHorizontal(lipgloss.Top, week...))
			week = nil
		}
	}
	if len(week) > 0 {
		weeks = append(weeks, lipgloss.JoinHorizontal(lipgloss.Top, week...))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		append([]string{title}, weeks...)...)
}

func (m Model) renderCell(cell *calendar.DayCell, cellIdx int, width int) string {
	var lines []string

	header := fmt.Sprintf("%2d", cell.Day)
	if cell.TotalHours > 0 {
		header += " " + theme.TotalStyle.Render(
			calendar.FormatHours(cell.TotalHours)+" sa")
	}
	if cell.Holiday != nil {
		header += " " + theme.HolidayCellStyle.
			UnsetBorderStyle().UnsetPadding().
			Render(truncate(cell.Holiday.Name, width-4))
	}
	lines = append(lines, header)

	indicatorDate, slot, dragging := m.drag.Indicator()
	sourceDate, sourceIdx := m.drag.Source()

	shown := 0
	for i, entry := range cell.Entries {
		if shown >= entriesPerCell {
			lines = append(lines,
				theme.HelpStyle.Render(fmt.Sprintf("+%d more", len(cell.Entries)-shown)))
			break
		}

		if dragging && indicatorDate == cell.Date && slot == i {
			lines = append(lines, theme.DropIndicatorStyle.Render(strings.Repeat("─", width-2)))
		}

		style := theme.EntryStyle
		if dragging && sourceDate == cell.Date && sourceIdx == i {
			style = theme.GrabbedEntryStyle
		} else if cellIdx == m.cellIdx && m.entryIdx == i {
			style = theme.SelectedEntryStyle
		}

		lines = append(lines, style.Render(renderEntry(entry, width)))
		shown++
	}

	if dragging && indicatorDate == cell.Date {
		if slot >= len(cell.Entries) {
			lines = append(lines, theme.DropIndicatorStyle.Render(strings.Repeat("─", width-2)))
		} else if slot < 0 && cell.Date != sourceDate {
			// Inter-day move target: highlight the whole cell below.
			lines = append(lines, theme.DropIndicatorStyle.Render("▼ move here"))
		}
	}

	style := theme.DayCellStyle
	switch {
	case cell.IsToday:
		style = theme.TodayCellStyle
	case cell.Holiday != nil:
		style = theme.HolidayCellStyle
	case cell.IsWeekend:
		style = theme.WeekendCellStyle
	}
	if cellIdx == m.cellIdx && m.entryIdx < 0 && !m.drag.Active() {
		style = style.BorderForeground(theme.ColorGreen)
	}

	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// renderEntry formats one entry line: emoji badge, text, issue keys and
// the duration.
func renderEntry(entry calendar.EntryView, width int) string {
	var b strings.Builder
	if entry.Emoji != "" {
		b.WriteString(entry.Emoji)
		b.WriteString(" ")
	}
	b.WriteString(entry.Text)
	line := truncate(b.String(), width-8)

	dur := theme.TotalStyle.Render(calendar.FormatHours(entry.DurationHours))
	out := line + " " + dur
	for _, key := range entry.IssueKeys {
		out = strings.Replace(out, key, theme.IssueKeyStyle.Render(key), 1)
	}
	return out
}

func truncate(s string, max int) string {
	if max <= 1 || len([]rune(s)) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// mondayIndex maps a weekday onto a Monday-first column index.
func mondayIndex(w time.Weekday) int {
	if w == time.Sunday {
		return 6
	}
	return int(w) - 1
}
