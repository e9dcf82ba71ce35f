package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nhle/effortlog/internal/model"
)

// businessDaySearchLimit caps the forward scan for the next business day.
const businessDaySearchLimit = 14

// IsBusinessDay reports whether date is neither a weekend nor a listed
// holiday.
func IsBusinessDay(date time.Time, holidays []model.Holiday) bool {
	wd := date.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	key := model.DateKey(date)
	for _, h := range holidays {
		if h.Date == key {
			return false
		}
	}
	return true
}

// NextBusinessDay scans forward from the day after sourceDate, up to 14
// calendar days, for the first business day. It returns an error when no
// business day exists within the window.
func NextBusinessDay(sourceDate string, holidays []model.Holiday) (string, error) {
	start, err := time.ParseInLocation(model.DateFormat, sourceDate, time.Local)
	if err != nil {
		return "", fmt.Errorf("bad source date %q: %w", sourceDate, err)
	}

	for offset := 1; offset <= businessDaySearchLimit; offset++ {
		candidate := start.AddDate(0, 0, offset)
		if IsBusinessDay(candidate, holidays) {
			return model.DateKey(candidate), nil
		}
	}
	return "", fmt.Errorf("no business day within %d days of %s", businessDaySearchLimit, sourceDate)
}

// FormatDayForClipboard renders a day's entries in the export text format:
// one bullet per entry plus a total line.
func FormatDayForClipboard(date string, day model.DayLog) string {
	sorted := day.Clone()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt < sorted[j].CreatedAt
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%s Eforları:\n", date)
	for _, e := range sorted {
		fmt.Fprintf(&b, "- %s (%s sa)\n", e.Text, FormatHours(e.DurationHours))
	}
	fmt.Fprintf(&b, "Toplam: %s sa", FormatHours(sorted.TotalHours()))
	return b.String()
}

// FormatHours renders an hour value without trailing zeros ("1.5", "2").
func FormatHours(h float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", h), "0"), ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
