// Package stats aggregates one calendar year of the log collection into
// the summary view's numbers: totals, the busiest day, the most repeated
// entry, the longest daily streak, and monthly/daily distributions.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/nhle/effortlog/internal/model"
	"github.com/nhle/effortlog/internal/textscan"
)

// YearSummary holds every aggregate the summary view displays.
type YearSummary struct {
	Year        int
	TotalHours  float64
	ActiveDays  int
	EntryCount  int
	AvgPerDay   float64
	BusiestDate string
	BusiestHrs  float64

	// MostFrequentText is the normalized text of the most repeated entry,
	// empty unless it occurs more than once.
	MostFrequentText  string
	MostFrequentCount int

	// LongestStreak is the longest run of consecutive active days.
	LongestStreak int

	// MonthlyHours has one bucket per month, index 0 = January.
	MonthlyHours [12]float64

	// DailyHours maps each active date to its total, for the heat map.
	DailyHours map[string]float64
}

// YearSlice returns the subset of logs whose date key falls in year.
func YearSlice(logs model.LogCollection, year int) model.LogCollection {
	prefix := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local).Format("2006-")
	out := model.LogCollection{}
	for date, day := range logs {
		if strings.HasPrefix(date, prefix) {
			out[date] = day
		}
	}
	return out
}

// Summarize computes the YearSummary for one calendar year of logs.
// Malformed date keys are skipped.
func Summarize(logs model.LogCollection, year int) YearSummary {
	s := YearSummary{
		Year:       year,
		DailyHours: map[string]float64{},
	}

	dates := make([]string, 0, len(logs))
	for date := range logs {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	textCounts := map[string]int{}
	var lastActive time.Time
	streak := 0

	for _, date := range dates {
		parsed, err := time.ParseInLocation(model.DateFormat, date, time.Local)
		if err != nil || parsed.Year() != year {
			continue
		}

		day := logs[date]
		total := day.TotalHours()
		if total <= 0 {
			continue
		}

		s.TotalHours += total
		s.EntryCount += len(day)
		s.ActiveDays++
		s.DailyHours[date] = total
		s.MonthlyHours[int(parsed.Month())-1] += total

		// Ties keep the earliest date: dates iterate in ascending order
		// and only a strictly larger total replaces the winner.
		if total > s.BusiestHrs {
			s.BusiestHrs = total
			s.BusiestDate = date
		}

		for _, e := range day {
			if key := normalizeText(e.Text); key != "" {
				textCounts[key]++
			}
		}

		switch {
		case lastActive.IsZero():
			streak = 1
		case sameDayDiff(lastActive, parsed) == 1:
			streak++
		default:
			// A gap resets the running streak to 1: the current day
			// starts a new run.
			streak = 1
		}
		if streak > s.LongestStreak {
			s.LongestStreak = streak
		}
		lastActive = parsed
	}

	if s.ActiveDays > 0 {
		s.AvgPerDay = s.TotalHours / float64(s.ActiveDays)
	}

	for text, count := range textCounts {
		if count > s.MostFrequentCount ||
			(count == s.MostFrequentCount && text < s.MostFrequentText) {
			s.MostFrequentCount = count
			s.MostFrequentText = text
		}
	}
	if s.MostFrequentCount <= 1 {
		s.MostFrequentText = ""
		s.MostFrequentCount = 0
	}

	return s
}

// RecentTexts returns up to limit entry texts from the last `days` days,
// most repeated first, ties broken by recency. Decorated duplicates of
// the same text collapse into one suggestion keeping the latest wording.
func RecentTexts(logs model.LogCollection, now time.Time, days, limit int) []string {
	since := now.AddDate(0, 0, -days)

	type candidate struct {
		display string
		count   int
		latest  string
	}
	byKey := map[string]*candidate{}

	for date, day := range logs {
		parsed, err := time.ParseInLocation(model.DateFormat, date, time.Local)
		if err != nil || parsed.Before(since) || parsed.After(now) {
			continue
		}
		for _, e := range day {
			key := normalizeText(e.Text)
			if key == "" {
				continue
			}
			c, ok := byKey[key]
			if !ok {
				c = &candidate{}
				byKey[key] = c
			}
			c.count++
			if date >= c.latest {
				c.latest = date
				c.display = strings.TrimSpace(e.Text)
			}
		}
	}

	out := make([]*candidate, 0, len(byKey))
	for _, c := range byKey {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		if out[i].latest != out[j].latest {
			return out[i].latest > out[j].latest
		}
		return out[i].display < out[j].display
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	texts := make([]string, len(out))
	for i, c := range out {
		texts[i] = c.display
	}
	return texts
}

// normalizeText strips a leading emoji, trims, and lower-cases so that
// decorated duplicates of the same entry count together.
func normalizeText(text string) string {
	_, rest := textscan.SplitLeadingEmoji(text)
	return strings.ToLower(strings.TrimSpace(rest))
}

// sameDayDiff returns b - a in whole calendar days.
func sameDayDiff(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
