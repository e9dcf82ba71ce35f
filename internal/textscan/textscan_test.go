package textscan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/effortlog/internal/textscan"
)

func TestSplitLeadingEmoji(t *testing.T) {
	tests := []struct {
		in        string
		wantEmoji string
		wantRest  string
	}{
		{"🚀 Fix PROJ-12", "🚀", "Fix PROJ-12"},
		{"🛠️ Refactor", "🛠️", "Refactor"},
		{"Meeting notes", "", "Meeting notes"},
		{"  🎯 trimmed  ", "🎯", "trimmed"},
		{"", "", ""},
		{"A🚀 not leading", "", "A🚀 not leading"},
	}
	for _, tt := range tests {
		emoji, rest := textscan.SplitLeadingEmoji(tt.in)
		assert.Equal(t, tt.wantEmoji, emoji, "emoji for %q", tt.in)
		assert.Equal(t, tt.wantRest, rest, "rest for %q", tt.in)
	}
}

func TestIssueKeys(t *testing.T) {
	keys := textscan.IssueKeys("Fix PROJ-12 and ABC9-345, skip lower-3")
	assert.Equal(t, []string{"PROJ-12", "ABC9-345"}, keys)

	assert.Empty(t, textscan.IssueKeys("no keys here"))
	assert.Equal(t, "SO-1", textscan.FirstIssueKey("SO-1 then SO-2"))
}

func TestExtractDuration(t *testing.T) {
	tests := []struct {
		in        string
		wantHours float64
		wantText  string
		wantOK    bool
	}{
		{"Meeting 2h", 2, "Meeting", true},
		{"Meeting 1.5 h", 1.5, "Meeting", true},
		{"Toplantı 2 sa", 2, "Toplantı", true},
		{"2h standup", 2, "standup", true},
		{"review 0,5h of PR", 0.5, "review of PR", true},
		{"Meeting", 0, "Meeting", false},
		{"", 0, "", false},
	}
	for _, tt := range tests {
		hours, text, ok := textscan.ExtractDuration(tt.in)
		assert.Equal(t, tt.wantOK, ok, "ok for %q", tt.in)
		if ok {
			assert.InDelta(t, tt.wantHours, hours, 1e-9, "hours for %q", tt.in)
			assert.Equal(t, tt.wantText, text, "rewritten for %q", tt.in)
		}
	}
}
