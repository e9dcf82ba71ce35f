package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/effortlog/internal/calendar"
	"github.com/nhle/effortlog/internal/model"
)

var aprilHolidays = []model.Holiday{
	{Date: "2024-04-23", Name: "Ulusal Egemenlik ve Çocuk Bayramı"},
}

func renderApril(logs model.LogCollection) calendar.MonthView {
	today := time.Date(2024, 4, 10, 12, 0, 0, 0, time.Local)
	return calendar.Render(2024, time.April, logs, aprilHolidays, today)
}

func TestRenderMonthShape(t *testing.T) {
	view := renderApril(model.LogCollection{})

	require.Len(t, view.Cells, 30)
	assert.Equal(t, "2024-04-01", view.Cells[0].Date)
	assert.Equal(t, "2024-04-30", view.Cells[29].Date)

	assert.True(t, view.Cells[9].IsToday, "April 10 is today")
	assert.False(t, view.Cells[10].IsToday)

	// April 6/7 2024 are Saturday/Sunday.
	assert.True(t, view.Cells[5].IsWeekend)
	assert.True(t, view.Cells[6].IsWeekend)
	assert.False(t, view.Cells[7].IsWeekend)
}

func TestRenderHolidayCellDisablesInteraction(t *testing.T) {
	logs := model.LogCollection{
		"2024-04-23": {{Text: "carryover", DurationHours: 2, CreatedAt: 1}},
	}
	view := renderApril(logs)
	cell := view.Cells[22]

	require.NotNil(t, cell.Holiday)
	assert.Equal(t, "Ulusal Egemenlik ve Çocuk Bayramı", cell.Holiday.Name)
	assert.False(t, cell.CanAdd)
	assert.False(t, cell.CanClear)
	assert.False(t, cell.CanCopyNext)
	assert.True(t, cell.CanCopy, "copy-to-clipboard stays available on holidays")
	require.Len(t, cell.Entries, 1)
	assert.False(t, cell.Entries[0].Draggable)
}

func TestRenderEntryDecoration(t *testing.T) {
	logs := model.LogCollection{
		"2024-03-04": {{Text: "🚀 Fix PROJ-12", DurationHours: 1.5, CreatedAt: 1}},
	}
	today := time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local)
	view := calendar.Render(2024, time.March, logs, nil, today)

	cell := view.Cells[3]
	require.Len(t, cell.Entries, 1)
	e := cell.Entries[0]
	assert.Equal(t, "🚀", e.Emoji)
	assert.Equal(t, "Fix PROJ-12", e.Text)
	assert.Equal(t, []string{"PROJ-12"}, e.IssueKeys)
	assert.Equal(t, 1.5, e.DurationHours)
	assert.Equal(t, "1.5", calendar.FormatHours(e.DurationHours))
	assert.Equal(t, 1.5, cell.TotalHours)
}

func TestRenderOrdersEntriesByStamp(t *testing.T) {
	logs := model.LogCollection{
		"2024-04-02": {
			{Text: "late", DurationHours: 1, CreatedAt: 30},
			{Text: "early", DurationHours: 1, CreatedAt: 10},
		},
	}
	view := renderApril(logs)
	entries := view.Cells[1].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "early", entries[0].Text)
	assert.Equal(t, "late", entries[1].Text)
}

func TestNextBusinessDaySkipsWeekend(t *testing.T) {
	// 2024-04-05 is a Friday; Monday the 8th is next.
	next, err := calendar.NextBusinessDay("2024-04-05", nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-08", next)
}

func TestNextBusinessDaySkipsHolidays(t *testing.T) {
	holidays := []model.Holiday{
		{Date: "2024-04-08", Name: "Bridge day"},
	}
	next, err := calendar.NextBusinessDay("2024-04-05", holidays)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-09", next)
}

func TestNextBusinessDayGivesUpAfterTwoWeeks(t *testing.T) {
	var holidays []model.Holiday
	start := time.Date(2024, 4, 5, 0, 0, 0, 0, time.Local)
	for i := 1; i <= 20; i++ {
		holidays = append(holidays, model.Holiday{
			Date: model.DateKey(start.AddDate(0, 0, i)),
			Name: "shutdown",
		})
	}
	_, err := calendar.NextBusinessDay("2024-04-05", holidays)
	assert.Error(t, err)
}

func TestMonthSlice(t *testing.T) {
	logs := model.LogCollection{
		"2024-04-01": {{Text: "in", DurationHours: 1, CreatedAt: 1}},
		"2024-05-01": {{Text: "out", DurationHours: 1, CreatedAt: 1}},
	}
	slice := calendar.MonthSlice(logs, 2024, time.April)
	assert.Contains(t, slice, "2024-04-01")
	assert.NotContains(t, slice, "2024-05-01")
}

func TestFormatDayForClipboard(t *testing.T) {
	day := model.DayLog{
		{Text: "standup", DurationHours: 0.5, CreatedAt: 2},
		{Text: "🚀 Fix PROJ-12", DurationHours: 1.5, CreatedAt: 1},
	}
	got := calendar.FormatDayForClipboard("2024-03-04", day)
	want := "2024-03-04 Eforları:\n" +
		"- 🚀 Fix PROJ-12 (1.5 sa)\n" +
		"- standup (0.5 sa)\n" +
		"Toplam: 2 sa"
	assert.Equal(t, want, got)
}
