// Package textscan recognizes the small bits of structure inside free-form
// log descriptions: a leading emoji, issue-tracker keys, and an embedded
// duration token.
package textscan

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

var (
	issueKeyRe = regexp.MustCompile(`[A-Z][A-Z0-9]+-\d+`)

	// Matches "2h", "1.5 h", "2 sa" anywhere in the text. "sa" is the
	// hour suffix kept from the original data format.
	durationRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:sa|h)`)
)

// SplitLeadingEmoji separates a single leading emoji-presentation grapheme
// from the rest of the text. It is not a general emoji scan: only the first
// grapheme is considered, matching how entries are decorated.
func SplitLeadingEmoji(text string) (emoji, rest string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ""
	}

	gr := uniseg.NewGraphemes(trimmed)
	if !gr.Next() {
		return "", trimmed
	}

	first := gr.Str()
	if !isEmojiPresentation(first) {
		return "", trimmed
	}
	return first, strings.TrimSpace(trimmed[len(first):])
}

// isEmojiPresentation reports whether the grapheme renders as emoji.
func isEmojiPresentation(g string) bool {
	for _, r := range g {
		if r == 0xFE0F { // variation selector-16 forces emoji presentation
			return true
		}
	}
	r := []rune(g)[0]
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		// Only double-width forms render as emoji by default.
		return uniseg.StringWidth(g) == 2
	default:
		return false
	}
}

// IssueKeys returns every issue-tracker key token found in text, in order.
func IssueKeys(text string) []string {
	return issueKeyRe.FindAllString(text, -1)
}

// FirstIssueKey returns the first issue key in text, or "".
func FirstIssueKey(text string) string {
	return issueKeyRe.FindString(text)
}

// ExtractDuration finds an embedded duration token ("<number> h" or
// "<number> sa") in text. When found it returns the parsed hour value and
// the text with the matched substring removed, trimmed on both sides of
// the cut. ok is false when no token is present.
func ExtractDuration(text string) (hours float64, rewritten string, ok bool) {
	loc := durationRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return 0, text, false
	}

	numeric := strings.ReplaceAll(text[loc[2]:loc[3]], ",", ".")
	hours, err := strconv.ParseFloat(numeric, 64)
	if err != nil || hours <= 0 {
		return 0, text, false
	}

	before := strings.TrimSpace(text[:loc[0]])
	after := strings.TrimSpace(text[loc[1]:])
	switch {
	case before == "":
		rewritten = after
	case after == "":
		rewritten = before
	default:
		rewritten = before + " " + after
	}
	return hours, rewritten, true
}
