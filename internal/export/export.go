// Package export writes the log collection as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/nhle/effortlog/internal/model"
)

// Format selects the export output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Row is one exported entry, flattened with its date.
type Row struct {
	Date          string  `json:"date"`
	Text          string  `json:"text"`
	DurationHours float64 `json:"time"`
	CreatedAt     int64   `json:"timestamp"`
}

// Rows flattens the collection into date-then-stored-order rows.
func Rows(logs model.LogCollection) []Row {
	dates := make([]string, 0, len(logs))
	for date := range logs {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var rows []Row
	for _, date := range dates {
		for _, entry := range logs[date] {
			rows = append(rows, Row{
				Date:          date,
				Text:          entry.Text,
				DurationHours: entry.DurationHours,
				CreatedAt:     entry.CreatedAt,
			})
		}
	}
	return rows
}

// Write renders the collection to w in the requested format.
func Write(w io.Writer, logs model.LogCollection, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, logs)
	case FormatCSV:
		return writeCSV(w, logs)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func writeJSON(w io.Writer, logs model.LogCollection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Rows(logs)); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, logs model.LogCollection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "text", "hours", "timestamp"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, row := range Rows(logs) {
		record := []string{
			row.Date,
			row.Text,
			strconv.FormatFloat(row.DurationHours, 'f', -1, 64),
			strconv.FormatInt(row.CreatedAt, 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
