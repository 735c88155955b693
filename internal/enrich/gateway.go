package enrich

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const (
	// minSummarizeLength is the threshold below which text is returned
	// unchanged instead of being summarized.
	minSummarizeLength = 20
	// maxSummarizeInput bounds the text sent to the provider.
	maxSummarizeInput = 4000
	// maxSentimentInput bounds the text scored by the sentiment model.
	maxSentimentInput = 512
	// englishRatioThreshold decides when text counts as mostly English.
	englishRatioThreshold = 0.6
)

// Gateway wraps an Enricher with the degradation policy the rest of the
// system relies on: Summarize, Translate and Sentiment never fail their
// caller, while SentimentAware surfaces input validation and provider errors.
type Gateway struct {
	provider Enricher
}

// NewGateway creates a Gateway over the given provider.
func NewGateway(provider Enricher) *Gateway {
	return &Gateway{provider: provider}
}

// Provider returns the name of the wrapped provider.
func (g *Gateway) Provider() string {
	return g.provider.Name()
}

// Summarize produces a summary of text. Text shorter than the minimum
// threshold is returned unchanged. Provider failures degrade to a local
// sentence-boundary excerpt; this call never fails.
func (g *Gateway) Summarize(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < minSummarizeLength {
		return text
	}

	input := truncateRunes(text, maxSummarizeInput)

	summary, err := g.provider.Summarize(ctx, input)
	if err != nil || strings.TrimSpace(summary) == "" {
		if err != nil {
			log.Printf("[enrich] summarize fallback: %v", err)
		}
		return Excerpt(input)
	}
	return strings.TrimSpace(summary)
}

// Translate translates text into targetLang. Empty input returns an
// all-empty record for the given target language. Detection or translation
// failure falls back to the original text and the sentinel source language;
// this call never fails.
func (g *Gateway) Translate(ctx context.Context, text, targetLang string) Translation {
	text = strings.TrimSpace(text)
	if text == "" {
		return Translation{TargetLang: targetLang}
	}

	result, err := g.provider.Translate(ctx, text, targetLang)
	if err != nil {
		log.Printf("[enrich] translate fallback: %v", err)
		return Translation{
			SourceLang: SourceLangUnknown,
			TargetLang: targetLang,
			Original:   text,
			Translated: text,
		}
	}

	result.TargetLang = targetLang
	result.Original = text
	if result.SourceLang == "" {
		result.SourceLang = SourceLangUnknown
	}
	if strings.TrimSpace(result.Translated) == "" {
		result.Translated = text
	}
	return result
}

// AnalyzeSentiment scores English text. Non-English input yields an UNKNOWN
// result, provider failures yield an ERROR result; this call never fails.
func (g *Gateway) AnalyzeSentiment(ctx context.Context, text string) Sentiment {
	text = strings.TrimSpace(text)
	if text == "" {
		return Sentiment{Label: LabelNeutral, Score: 0, Note: "Empty text."}
	}

	if !mostlyEnglish(text, englishRatioThreshold) {
		return Sentiment{
			Label: LabelUnknown,
			Score: 0,
			Note:  "Sentiment model is English-only. For non-English text, sentiment is not analyzed.",
		}
	}

	label, score, err := g.provider.Sentiment(ctx, truncateRunes(text, maxSentimentInput))
	if err != nil {
		log.Printf("[enrich] sentiment fallback: %v", err)
		return Sentiment{Label: LabelError, Score: 0, Note: "Error while running sentiment model."}
	}

	return Sentiment{Label: label, Score: clampScore(score), Note: "English sentiment analyzed by AI model."}
}

// AnalyzeSentimentAware is the language-aware sentiment pipeline: it guesses
// the input language, translates non-English text to English before scoring,
// and returns the guess alongside the score. Input shorter than three trimmed
// characters fails with ErrTextTooShort; provider failures propagate.
func (g *Gateway) AnalyzeSentimentAware(ctx context.Context, text string) (AwareSentiment, error) {
	if len([]rune(strings.TrimSpace(text))) < 3 {
		return AwareSentiment{}, ErrTextTooShort
	}

	lang := GuessLanguage(text)

	englishText := text
	translatedText := ""
	if lang != "en" {
		if t, err := g.provider.Translate(ctx, text, "en"); err == nil && strings.TrimSpace(t.Translated) != "" {
			englishText = t.Translated
			translatedText = t.Translated
		}
		// Translation failure falls back to scoring the original text.
	}

	label, score, err := g.provider.Sentiment(ctx, truncateRunes(englishText, maxSentimentInput))
	if err != nil {
		return AwareSentiment{}, fmt.Errorf("sentiment analysis failed: %w", err)
	}

	return AwareSentiment{
		Language:       lang,
		Label:          label,
		Score:          clampScore(score),
		TranslatedText: translatedText,
	}, nil
}

// truncateRunes cuts text to at most n runes.
func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// clampScore bounds a provider score into [0, 1].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
