// Package analyze provides keyword and attribute extraction over cleaned text.
// Everything here is pure, deterministic string scanning against fixed lists;
// there are no external calls and no failure modes.
package analyze

import (
	"sort"
	"strings"
	"unicode"
)

// minTokenLength is the shortest alphabetic run considered a keyword token.
const minTokenLength = 3

// stopwords are generic tokens excluded from keyword extraction.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "her": {}, "was": {}, "one": {},
	"our": {}, "out": {}, "day": {}, "get": {}, "has": {}, "him": {},
	"his": {}, "how": {}, "its": {}, "new": {}, "now": {}, "old": {},
	"see": {}, "two": {}, "who": {}, "will": {}, "with": {}, "that": {},
	"this": {}, "have": {}, "from": {}, "they": {}, "been": {}, "were": {},
	"more": {}, "your": {}, "what": {}, "when": {}, "them": {}, "than": {},
	"into": {}, "over": {}, "such": {}, "only": {}, "other": {}, "about": {},
	"which": {}, "their": {}, "there": {}, "would": {}, "could": {},
	"should": {}, "these": {}, "those": {}, "where": {}, "while": {},
	"also": {}, "some": {}, "each": {}, "both": {}, "being": {},
}

// ExtractKeywords returns the topN most frequent non-stopword tokens in text.
// Tokens are lowercase alphabetic runs of at least three characters.
// Ranking is stable: ties are broken by first-encountered order, so repeated
// calls on the same text yield identical results.
func ExtractKeywords(text string, topN int) []string {
	if topN <= 0 {
		return nil
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, token := range tokenize(strings.ToLower(text)) {
		if len(token) < minTokenLength {
			continue
		}
		if _, skip := stopwords[token]; skip {
			continue
		}
		if _, seen := counts[token]; !seen {
			firstSeen[token] = order
			order++
		}
		counts[token]++
	}

	// nil, not an empty slice, when nothing survives filtering
	var tokens []string
	for token := range counts {
		tokens = append(tokens, token)
	}

	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return firstSeen[tokens[i]] < firstSeen[tokens[j]]
	})

	if len(tokens) > topN {
		tokens = tokens[:topN]
	}
	return tokens
}

// tokenize splits text into maximal runs of letters.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
