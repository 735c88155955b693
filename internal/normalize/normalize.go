// Package normalize provides deterministic text cleanup and basic text
// statistics. The cleaned form is the canonical input for every downstream
// stage (stats, enrichment, keyword extraction, reporting).
package normalize

import (
	"strings"
	"unicode"
)

// TextStats holds character and word counts for a cleaned text.
type TextStats struct {
	Characters int `json:"characters"`
	Words      int `json:"words"`
}

// Clean normalizes raw text into its canonical form:
// line endings are unified, non-printable artifacts are stripped,
// internal whitespace runs collapse to a single space, and the result
// is trimmed. Empty input yields empty output.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF) before collapsing
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var sb strings.Builder
	sb.Grow(len(text))
	lastSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			lastSpace = false
		default:
			// Control characters and other non-printable artifacts are dropped.
		}
	}

	return strings.TrimSpace(sb.String())
}

// Stats computes character and word counts for cleaned text.
// Both counts are zero iff the trimmed text is empty.
// Characters are counted in runes so multi-byte text is not inflated.
func Stats(text string) TextStats {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return TextStats{}
	}

	return TextStats{
		Characters: len([]rune(trimmed)),
		Words:      len(strings.Fields(trimmed)),
	}
}
