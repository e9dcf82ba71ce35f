// Package holiday loads the bundled public-holiday table used to mark
// calendar days as non-working.
package holiday

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/nhle/effortlog/internal/model"
)

//go:embed holidays.json
var holidaysJSON []byte

// Load parses the embedded holiday table into a date-keyed map.
func Load() (map[string]model.Holiday, error) {
	var list []model.Holiday
	if err := json.Unmarshal(holidaysJSON, &list); err != nil {
		return nil, fmt.Errorf("parsing holiday table: %w", err)
	}

	byDate := make(map[string]model.Holiday, len(list))
	for _, h := range list {
		if !model.ValidDateKey(h.Date) {
			return nil, fmt.Errorf("holiday table: bad date %q", h.Date)
		}
		byDate[h.Date] = h
	}
	return byDate, nil
}
