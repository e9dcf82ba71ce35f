package model

import (
	"strings"
	"time"
)

// DateFormat is the layout for calendar-day keys (local calendar day).
const DateFormat = "2006-01-02"

// LogEntry is a single logged unit of work on some day.
type LogEntry struct {
	// Text is the free-form description. It may carry a leading emoji
	// and issue-tracker keys such as PROJ-123.
	Text string `json:"text"`

	// DurationHours is the logged effort in hours. Always > 0.
	DurationHours float64 `json:"time"`

	// CreatedAt is a logical insertion stamp (unix milliseconds). It only
	// defines ordering within a day and is not wall-clock meaningful.
	CreatedAt int64 `json:"timestamp"`
}

// Validate reports whether the entry satisfies the model invariants.
func (e LogEntry) Validate() bool {
	return strings.TrimSpace(e.Text) != "" && e.DurationHours > 0
}

// DayLog is the ordered list of entries for one day, ascending CreatedAt.
type DayLog []LogEntry

// TotalHours sums the duration of all entries in the day.
func (d DayLog) TotalHours() float64 {
	var total float64
	for _, e := range d {
		total += e.DurationHours
	}
	return total
}

// Clone returns an independent copy of the day's entries.
func (d DayLog) Clone() DayLog {
	if d == nil {
		return nil
	}
	out := make(DayLog, len(d))
	copy(out, d)
	return out
}

// LogCollection maps a YYYY-MM-DD date key to that day's entries.
// It is the entire persisted log state, held in one storage record.
type LogCollection map[string]DayLog

// Clone returns a deep copy of the collection.
func (c LogCollection) Clone() LogCollection {
	out := make(LogCollection, len(c))
	for date, day := range c {
		out[date] = day.Clone()
	}
	return out
}

// EntryCount returns the total number of entries across all days.
func (c LogCollection) EntryCount() int {
	var n int
	for _, day := range c {
		n += len(day)
	}
	return n
}

// NowStamp returns a fresh logical insertion stamp.
func NowStamp() int64 {
	return time.Now().UnixMilli()
}

// DateKey formats t as a local calendar-day key.
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// ValidDateKey reports whether s is a well-formed YYYY-MM-DD date.
func ValidDateKey(s string) bool {
	_, err := time.ParseInLocation(DateFormat, s, time.Local)
	return err == nil && len(s) == len(DateFormat)
}
