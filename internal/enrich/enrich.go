// Package enrich provides best-effort derived content (summary, translation,
// sentiment) layered on cleaned text. Providers are abstracted behind the
// Enricher interface; the Gateway wraps a provider and applies the degradation
// policy: enrichment outages must not break the surrounding pipeline, so every
// call site explicitly chooses fallback over propagation. The one exception is
// the language-aware sentiment path, which surfaces failures to its caller.
package enrich

import (
	"context"
	"errors"
)

// Sentiment labels returned by the gateway.
const (
	LabelPositive = "POSITIVE"
	LabelNegative = "NEGATIVE"
	LabelNeutral  = "NEUTRAL"
	LabelUnknown  = "UNKNOWN"
	LabelError    = "ERROR"
)

// SourceLangUnknown is the sentinel source language used when detection fails.
const SourceLangUnknown = "auto"

// ErrTextTooShort is returned by the language-aware sentiment path when the
// trimmed input has fewer than three characters.
var ErrTextTooShort = errors.New("text is too short for sentiment analysis")

// Translation is the result of a translation call.
type Translation struct {
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

// Sentiment is the result of a basic sentiment call.
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Note  string  `json:"note"`
}

// AwareSentiment is the result of the language-aware sentiment pipeline.
type AwareSentiment struct {
	Language       string  `json:"language"`
	Label          string  `json:"label"`
	Score          float64 `json:"score"`
	TranslatedText string  `json:"translated_text,omitempty"`
}

// Enricher is the raw provider capability set. Implementations may fail;
// degradation policy lives in the Gateway, not here.
type Enricher interface {
	// Summarize produces a short summary of text.
	Summarize(ctx context.Context, text string) (string, error)
	// Translate translates text into targetLang and reports the detected
	// source language.
	Translate(ctx context.Context, text, targetLang string) (Translation, error)
	// Sentiment scores text, which is assumed to be English.
	Sentiment(ctx context.Context, text string) (label string, score float64, err error)
	// Name identifies the provider for startup logging.
	Name() string
}
