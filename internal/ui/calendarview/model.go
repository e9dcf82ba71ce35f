// Package calendarview renders the month grid and drives entry
// selection and the grab/move gesture. All data mutations are emitted
// as messages; the root model owns the repository.
package calendarview

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/effortlog/internal/calendar"
	"github.com/nhle/effortlog/internal/drag"
	"github.com/nhle/effortlog/internal/keys"
)

// AddRequestedMsg asks the root model to open the entry form for a new
// entry on Date.
type AddRequestedMsg struct{ Date string }

// EditRequestedMsg asks the root model to open the entry form for the
// entry at Date/Index.
type EditRequestedMsg struct {
	Date  string
	Index int
}

// DeleteRequestedMsg asks the root model to confirm-delete the entry at
// Date/Index.
type DeleteRequestedMsg struct {
	Date  string
	Index int
}

// ClearRequestedMsg asks the root model to clear all entries on Date.
type ClearRequestedMsg struct{ Date string }

// CopyRequestedMsg asks the root model to copy Date's entries to the
// clipboard.
type CopyRequestedMsg struct{ Date string }

// CopyNextRequestedMsg asks the root model to copy Date's entries to
// the next business day.
type CopyNextRequestedMsg struct{ Date string }

// IssueLookupRequestedMsg asks the root model to fetch and show the
// summary of the issue referenced by the selected entry.
type IssueLookupRequestedMsg struct{ Key string }

// MonthChangedMsg reports that the visible month changed.
type MonthChangedMsg struct {
	Year  int
	Month time.Month
}

// DropResolvedMsg carries a finished grab/move gesture.
type DropResolvedMsg struct{ Drop drag.Drop }

// Model is the Bubble Tea model for the calendar view.
type Model struct {
	keys  *keys.KeyMap
	view  calendar.MonthView
	drag  drag.Session
	today string

	// cursor: cellIdx selects a day, entryIdx selects an entry within
	// it (-1 selects the day itself).
	cellIdx  int
	entryIdx int

	width  int
	height int
}

// New creates a calendar view model.
func New(km *keys.KeyMap, width, height int) Model {
	return Model{
		keys:     km,
		entryIdx: -1,
		width:    width,
		height:   height,
	}
}

// SetMonth installs a freshly rendered month and clamps the cursor.
// Any in-flight gesture is cancelled, since indices may be stale.
func (m *Model) SetMonth(view calendar.MonthView, today string) {
	m.view = view
	m.today = today
	m.drag.Cancel()
	m.clampCursor()
}

// FocusToday moves the cursor to today's cell if it is in view.
func (m *Model) FocusToday() {
	for i, cell := range m.view.Cells {
		if cell.Date == m.today {
			m.cellIdx = i
			m.entryIdx = -1
			return
		}
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Dragging reports whether a grab gesture is in progress.
func (m Model) Dragging() bool { return m.drag.Active() }

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key messages for the calendar view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.drag.Active() {
		return m.updateDragging(keyMsg)
	}
	return m.updateBrowsing(keyMsg)
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (Model, tea.Cmd) {
	cell := m.currentCell()

	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveEntryCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveEntryCursor(-1)
	case key.Matches(msg, m.keys.Left):
		m.moveDayCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveDayCursor(1)
	case key.Matches(msg, m.keys.PrevMonth):
		return m, m.changeMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		return m, m.changeMonth(1)
	case key.Matches(msg, m.keys.Today):
		m.FocusToday()

	case key.Matches(msg, m.keys.Add):
		if cell != nil && cell.CanAdd {
			date := cell.Date
			return m, func() tea.Msg { return AddRequestedMsg{Date: date} }
		}
	case key.Matches(msg, m.keys.Edit):
		if cell != nil && m.entryIdx >= 0 && m.entryIdx < len(cell.Entries) {
			date, index := cell.Date, m.entryIdx
			return m, func() tea.Msg { return EditRequestedMsg{Date: date, Index: index} }
		}
	case key.Matches(msg, m.keys.Delete):
		if cell != nil && m.entryIdx >= 0 && m.entryIdx < len(cell.Entries) {
			date, index := cell.Date, m.entryIdx
			return m, func() tea.Msg { return DeleteRequestedMsg{Date: date, Index: index} }
		}
	case key.Matches(msg, m.keys.Clear):
		if cell != nil && cell.CanClear {
			date := cell.Date
			return m, func() tea.Msg { return ClearRequestedMsg{Date: date} }
		}
	case key.Matches(msg, m.keys.Copy):
		if cell != nil && cell.CanCopy {
			date := cell.Date
			return m, func() tea.Msg { return CopyRequestedMsg{Date: date} }
		}
	case key.Matches(msg, m.keys.CopyNext):
		if cell != nil && cell.CanCopyNext {
			date := cell.Date
			return m, func() tea.Msg { return CopyNextRequestedMsg{Date: date} }
		}

	case key.Matches(msg, m.keys.Issue):
		if cell != nil && m.entryIdx >= 0 && m.entryIdx < len(cell.Entries) {
			if ks := cell.Entries[m.entryIdx].IssueKeys; len(ks) > 0 {
				issueKey := ks[0]
				return m, func() tea.Msg { return IssueLookupRequestedMsg{Key: issueKey} }
			}
		}

	case key.Matches(msg, m.keys.Grab):
		if cell != nil && m.entryIdx >= 0 && m.entryIdx < len(cell.Entries) &&
			cell.Entries[m.entryIdx].Draggable {
			m.drag.Start(cell.Date, m.entryIdx)
		}
	}

	return m, nil
}

// updateDragging moves the insertion indicator. Up/down slide the slot
// within the source day; left/right target other days, turning the
// gesture into a move. Enter drops, esc cancels and leaves the data
// untouched.
func (m Model) updateDragging(msg tea.KeyMsg) (Model, tea.Cmd) {
	sourceDate, _ := m.drag.Source()
	sourceCell := m.cellByDate(sourceDate)

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.drag.Cancel()

	case key.Matches(msg, m.keys.Down):
		m.slideSlot(sourceCell, 1)
	case key.Matches(msg, m.keys.Up):
		m.slideSlot(sourceCell, -1)

	case key.Matches(msg, m.keys.Left):
		m.hoverAdjacentDay(-1)
	case key.Matches(msg, m.keys.Right):
		m.hoverAdjacentDay(1)

	case key.Matches(msg, m.keys.Drop):
		drop, ok := m.drag.Resolve()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return DropResolvedMsg{Drop: drop} }
	}

	return m, nil
}

// slideSlot moves the intra-day insertion slot up or down, re-entering
// the source day from a day hover when needed.
func (m *Model) slideSlot(sourceCell *calendar.DayCell, delta int) {
	if sourceCell == nil {
		return
	}
	listLen := len(sourceCell.Entries)

	_, slot, ok := m.drag.Indicator()
	if !ok {
		return
	}
	if slot < 0 {
		// Coming back from a foreign day hover.
		if delta > 0 {
			slot = 0
		} else {
			slot = listLen
		}
	} else {
		slot += delta
	}

	if slot < 0 {
		slot = 0
	}
	if slot >= listLen {
		m.drag.HoverEnd(listLen)
		return
	}
	m.drag.HoverEntry(sourceCell.Date, slot, drag.Above)
}

// hoverAdjacentDay targets the next or previous non-holiday day cell.
func (m *Model) hoverAdjacentDay(delta int) {
	date, _, ok := m.drag.Indicator()
	if !ok {
		return
	}
	idx := m.cellIndexByDate(date)
	if idx < 0 {
		return
	}
	for next := idx + delta; next >= 0 && next < len(m.view.Cells); next += delta {
		cell := m.view.Cells[next]
		if cell.Holiday != nil {
			continue
		}
		m.drag.HoverDay(cell.Date)
		m.cellIdx = next
		return
	}
}

func (m *Model) moveDayCursor(delta int) {
	next := m.cellIdx + delta
	if next < 0 || next >= len(m.view.Cells) {
		return
	}
	m.cellIdx = next
	m.entryIdx = -1
}

// moveEntryCursor walks entries within the day, then spills into the
// next or previous day.
func (m *Model) moveEntryCursor(delta int) {
	cell := m.currentCell()
	if cell == nil {
		return
	}

	next := m.entryIdx + delta
	if next >= -1 && next < len(cell.Entries) {
		m.entryIdx = next
		return
	}
	m.moveDayCursor(delta)
}

func (m *Model) clampCursor() {
	if len(m.view.Cells) == 0 {
		m.cellIdx = 0
		m.entryIdx = -1
		return
	}
	if m.cellIdx >= len(m.view.Cells) {
		m.cellIdx = len(m.view.Cells) - 1
	}
	if cell := m.currentCell(); cell == nil || m.entryIdx >= len(cell.Entries) {
		m.entryIdx = -1
	}
}

func (m Model) currentCell() *calendar.DayCell {
	if m.cellIdx < 0 || m.cellIdx >= len(m.view.Cells) {
		return nil
	}
	return &m.view.Cells[m.cellIdx]
}

func (m Model) cellByDate(date string) *calendar.DayCell {
	if idx := m.cellIndexByDate(date); idx >= 0 {
		return &m.view.Cells[idx]
	}
	return nil
}

func (m Model) cellIndexByDate(date string) int {
	for i := range m.view.Cells {
		if m.view.Cells[i].Date == date {
			return i
		}
	}
	return -1
}

func (m Model) changeMonth(delta int) tea.Cmd {
	year, month := m.view.Year, m.view.Month
	next := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	return func() tea.Msg {
		return MonthChangedMsg{Year: next.Year(), Month: next.Month()}
	}
}
