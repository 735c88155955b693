package enrich

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt_ShortTextUnchanged(t *testing.T) {
	text := "A short paragraph. Nothing to cut."
	assert.Equal(t, text, Excerpt(text))
}

func TestExcerpt_EmptyText(t *testing.T) {
	assert.Empty(t, Excerpt(""))
	assert.Empty(t, Excerpt("   "))
}

func TestExcerpt_KeepsLeadingSentences(t *testing.T) {
	long := "First sentence here. Second sentence here. Third sentence here. " +
		strings.Repeat("Filler sentence that pads the text well past the limit. ", 10)
	result := Excerpt(long)

	assert.True(t, strings.HasPrefix(result, "First sentence here."))
	assert.LessOrEqual(t, len([]rune(result)), excerptMaxChars+3)
}

func TestExcerpt_WordBoundaryTruncation(t *testing.T) {
	// One giant sentence forces the character-level truncation path.
	long := strings.Repeat("wordy ", 200)
	result := Excerpt(long)

	assert.True(t, strings.HasSuffix(result, "..."))
	assert.NotContains(t, strings.TrimSuffix(result, "..."), "  ")
	assert.LessOrEqual(t, len([]rune(result)), excerptMaxChars+3)
}

func TestExcerpt_Deterministic(t *testing.T) {
	long := strings.Repeat("Numbers one two three four five. ", 30)
	assert.Equal(t, Excerpt(long), Excerpt(long))
}
