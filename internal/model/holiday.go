package model

// Holiday is one read-only reference holiday loaded from the bundled data.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}
