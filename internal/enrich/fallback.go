package enrich

import (
	"context"
	"fmt"
)

// FallbackEnricher is the deterministic local provider used when no API key
// is configured. Summaries come from the local excerpt logic, translation is
// the identity, and sentiment is unavailable (the Gateway degrades it to an
// ERROR/UNKNOWN result).
type FallbackEnricher struct{}

// NewFallbackEnricher creates the local provider.
func NewFallbackEnricher() *FallbackEnricher {
	return &FallbackEnricher{}
}

// Name identifies the provider.
func (e *FallbackEnricher) Name() string {
	return "fallback"
}

// Summarize returns a local sentence-boundary excerpt.
func (e *FallbackEnricher) Summarize(_ context.Context, text string) (string, error) {
	return Excerpt(text), nil
}

// Translate returns the original text with the sentinel source language.
func (e *FallbackEnricher) Translate(_ context.Context, text, targetLang string) (Translation, error) {
	return Translation{
		SourceLang: SourceLangUnknown,
		TargetLang: targetLang,
		Original:   text,
		Translated: text,
	}, nil
}

// Sentiment always fails; no local model is available.
func (e *FallbackEnricher) Sentiment(_ context.Context, _ string) (string, float64, error) {
	return "", 0, fmt.Errorf("no sentiment model available")
}
