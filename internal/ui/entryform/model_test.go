package entryform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDurationQuickOptionWins(t *testing.T) {
	m := New(nil, 80, 24)
	m.fb.quickDuration = 2
	m.fb.duration = "8"

	hours, text := m.resolveDuration("Meeting 1 sa")

	assert.Equal(t, 2.0, hours)
	assert.Equal(t, "Meeting 1 sa", text, "text stays untouched when the quick option decides")
}

func TestResolveDurationEmbeddedTokenRewritesText(t *testing.T) {
	m := New(nil, 80, 24)
	m.fb.duration = "8"

	hours, text := m.resolveDuration("Meeting 2h")

	assert.Equal(t, 2.0, hours)
	assert.Equal(t, "Meeting", text)
}

func TestResolveDurationFallsBackToField(t *testing.T) {
	m := New(nil, 80, 24)
	m.fb.duration = "1,5"

	hours, text := m.resolveDuration("Meeting")

	assert.Equal(t, 1.5, hours)
	assert.Equal(t, "Meeting", text)
}

func TestValidateDuration(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		quick   float64
		field   string
		wantErr bool
	}{
		{name: "plain hours", field: "1.5"},
		{name: "comma hours", field: "0,5"},
		{name: "garbage field rejected", field: "abc", wantErr: true},
		{name: "zero rejected", field: "0", wantErr: true},
		{name: "empty without any source rejected", wantErr: true},
		{name: "quick option excuses the field", quick: 1, field: "abc"},
		{name: "embedded token excuses the field", text: "Meeting 2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil, 80, 24)
			m.fb.text = tt.text
			m.fb.quickDuration = tt.quick

			err := m.validateDuration(tt.field)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
