// Package calendar turns a month slice of the log collection into a
// renderable grid of day cells. It is pure: the same inputs always
// produce the same view tree, which keeps snapshots testable.
package calendar

import (
	"sort"
	"time"

	"github.com/nhle/effortlog/internal/model"
	"github.com/nhle/effortlog/internal/textscan"
)

// EntryView is one rendered log entry inside a day cell.
type EntryView struct {
	Index         int
	Emoji         string
	Text          string
	IssueKeys     []string
	DurationHours float64
	Draggable     bool
}

// DayCell is one calendar day's rendered unit.
type DayCell struct {
	Date        string
	Day         int
	Weekday     time.Weekday
	IsToday     bool
	IsWeekend   bool
	Holiday     *model.Holiday
	TotalHours  float64
	Entries     []EntryView
	CanAdd      bool
	CanClear    bool
	CanCopy     bool
	CanCopyNext bool
}

// MonthView is the rendered month: a header plus one cell per day.
type MonthView struct {
	Year  int
	Month time.Month
	Cells []DayCell
}

// Render builds the MonthView for (year, month) from the collection,
// holiday list, and today's date. Holiday cells disable add/clear/move
// but still allow copying existing entries to the clipboard.
func Render(year int, month time.Month, logs model.LogCollection, holidays []model.Holiday, today time.Time) MonthView {
	todayKey := model.DateKey(today)

	byDate := make(map[string]*model.Holiday, len(holidays))
	for i := range holidays {
		byDate[holidays[i].Date] = &holidays[i]
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	view := MonthView{
		Year:  year,
		Month: month,
		Cells: make([]DayCell, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		key := model.DateKey(date)
		weekday := date.Weekday()
		holiday := byDate[key]

		dayLog := append(model.DayLog(nil), logs[key]...)
		sort.SliceStable(dayLog, func(i, j int) bool {
			return dayLog[i].CreatedAt < dayLog[j].CreatedAt
		})

		cell := DayCell{
			Date:       key,
			Day:        day,
			Weekday:    weekday,
			IsToday:    key == todayKey,
			IsWeekend:  weekday == time.Saturday || weekday == time.Sunday,
			Holiday:    holiday,
			TotalHours: dayLog.TotalHours(),
			Entries:    make([]EntryView, 0, len(dayLog)),
		}

		for i, e := range dayLog {
			emoji, rest := textscan.SplitLeadingEmoji(e.Text)
			cell.Entries = append(cell.Entries, EntryView{
				Index:         i,
				Emoji:         emoji,
				Text:          rest,
				IssueKeys:     textscan.IssueKeys(e.Text),
				DurationHours: e.DurationHours,
				Draggable:     holiday == nil,
			})
		}

		cell.CanAdd = holiday == nil
		cell.CanClear = holiday == nil && len(dayLog) > 0
		cell.CanCopy = len(dayLog) > 0
		cell.CanCopyNext = holiday == nil && len(dayLog) > 0

		view.Cells = append(view.Cells, cell)
	}

	return view
}

// MonthSlice returns the subset of logs whose date key falls in
// (year, month).
func MonthSlice(logs model.LogCollection, year int, month time.Month) model.LogCollection {
	prefix := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Format("2006-01")
	out := model.LogCollection{}
	for date, day := range logs {
		if len(date) >= len(prefix) && date[:len(prefix)] == prefix {
			out[date] = day
		}
	}
	return out
}
