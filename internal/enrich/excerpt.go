package enrich

import (
	"regexp"
	"strings"
)

const (
	excerptMaxSentences = 3
	excerptMaxChars     = 400
)

// sentenceEnd splits after ., !, ? and the Arabic question mark.
var sentenceEnd = regexp.MustCompile(`(?:[.!?]|؟)\s+`)

// Excerpt is the deterministic local summarizer used when no provider is
// available or a provider call fails. It keeps the first few sentences,
// truncating at a word boundary when the result is still too long.
func Excerpt(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	if len([]rune(text)) <= excerptMaxChars {
		return text
	}

	sentences := splitSentences(text)
	if len(sentences) > excerptMaxSentences {
		sentences = sentences[:excerptMaxSentences]
	}
	summary := strings.TrimSpace(strings.Join(sentences, " "))

	runes := []rune(summary)
	if len(runes) > excerptMaxChars {
		summary = string(runes[:excerptMaxChars])
		if idx := strings.LastIndex(summary, " "); idx != -1 {
			summary = summary[:idx]
		}
		summary += "..."
	}

	return summary
}

// splitSentences keeps the sentence terminators with their sentences.
func splitSentences(text string) []string {
	boundaries := sentenceEnd.FindAllStringIndex(text, -1)
	if len(boundaries) == 0 {
		return []string{text}
	}

	var sentences []string
	start := 0
	for _, b := range boundaries {
		// The match covers terminator plus trailing whitespace; TrimSpace
		// keeps the terminator with its sentence.
		sentences = append(sentences, strings.TrimSpace(text[start:b[1]]))
		start = b[1]
	}
	if start < len(text) {
		sentences = append(sentences, strings.TrimSpace(text[start:]))
	}
	return sentences
}
