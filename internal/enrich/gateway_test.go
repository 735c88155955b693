package enrich

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEnricher is a configurable in-memory provider for gateway tests.
type stubEnricher struct {
	summary       string
	summarizeErr  error
	translation   Translation
	translateErr  error
	label         string
	score         float64
	sentimentErr  error
	sentimentSeen string
}

func (s *stubEnricher) Name() string { return "stub" }

func (s *stubEnricher) Summarize(_ context.Context, _ string) (string, error) {
	return s.summary, s.summarizeErr
}

func (s *stubEnricher) Translate(_ context.Context, text, targetLang string) (Translation, error) {
	if s.translateErr != nil {
		return Translation{}, s.translateErr
	}
	t := s.translation
	t.Original = text
	t.TargetLang = targetLang
	return t, nil
}

func (s *stubEnricher) Sentiment(_ context.Context, text string) (string, float64, error) {
	s.sentimentSeen = text
	return s.label, s.score, s.sentimentErr
}

func TestGatewaySummarize_ShortTextUnchanged(t *testing.T) {
	g := NewGateway(&stubEnricher{summary: "should not be used"})

	short := "hello world"
	assert.Equal(t, short, g.Summarize(context.Background(), short))
}

func TestGatewaySummarize_UsesProvider(t *testing.T) {
	g := NewGateway(&stubEnricher{summary: "a concise summary"})

	text := strings.Repeat("This is a fairly long sentence about nothing. ", 5)
	assert.Equal(t, "a concise summary", g.Summarize(context.Background(), text))
}

func TestGatewaySummarize_FallsBackToExcerpt(t *testing.T) {
	g := NewGateway(&stubEnricher{summarizeErr: fmt.Errorf("provider down")})

	text := strings.Repeat("Words repeated to exceed the minimum threshold. ", 20)
	summary := g.Summarize(context.Background(), text)

	assert.NotEmpty(t, summary)
	assert.LessOrEqual(t, len([]rune(summary)), excerptMaxChars+3)
}

func TestGatewayTranslate_EmptyInput(t *testing.T) {
	g := NewGateway(&stubEnricher{})

	result := g.Translate(context.Background(), "   ", "fa")
	assert.Equal(t, Translation{TargetLang: "fa"}, result)
}

func TestGatewayTranslate_ProviderFailureFallsBack(t *testing.T) {
	g := NewGateway(&stubEnricher{translateErr: fmt.Errorf("quota exceeded")})

	result := g.Translate(context.Background(), "hello", "de")
	assert.Equal(t, SourceLangUnknown, result.SourceLang)
	assert.Equal(t, "de", result.TargetLang)
	assert.Equal(t, "hello", result.Original)
	assert.Equal(t, "hello", result.Translated)
}

func TestGatewayTranslate_NonEmptyNeverTranslatesToEmpty(t *testing.T) {
	g := NewGateway(&stubEnricher{translation: Translation{SourceLang: "en", Translated: "  "}})

	result := g.Translate(context.Background(), "hello", "fa")
	assert.Equal(t, "hello", result.Translated)
}

func TestGatewaySentiment_EmptyText(t *testing.T) {
	g := NewGateway(&stubEnricher{})

	result := g.AnalyzeSentiment(context.Background(), "")
	assert.Equal(t, LabelNeutral, result.Label)
	assert.Zero(t, result.Score)
	assert.Equal(t, "Empty text.", result.Note)
}

func TestGatewaySentiment_NonEnglishUnknown(t *testing.T) {
	g := NewGateway(&stubEnricher{label: LabelPositive, score: 0.9})

	result := g.AnalyzeSentiment(context.Background(), "این یک متن فارسی است")
	assert.Equal(t, LabelUnknown, result.Label)
	assert.Zero(t, result.Score)
}

func TestGatewaySentiment_ProviderErrorDegrades(t *testing.T) {
	g := NewGateway(&stubEnricher{sentimentErr: fmt.Errorf("model crashed")})

	result := g.AnalyzeSentiment(context.Background(), "I love this product")
	assert.Equal(t, LabelError, result.Label)
	assert.Zero(t, result.Score)
}

func TestGatewaySentiment_Success(t *testing.T) {
	g := NewGateway(&stubEnricher{label: LabelPositive, score: 0.97})

	result := g.AnalyzeSentiment(context.Background(), "I love this product")
	assert.Equal(t, LabelPositive, result.Label)
	assert.InDelta(t, 0.97, result.Score, 1e-9)
}

func TestGatewaySentimentAware_TooShort(t *testing.T) {
	g := NewGateway(&stubEnricher{})

	_, err := g.AnalyzeSentimentAware(context.Background(), " ok ")
	require.ErrorIs(t, err, ErrTextTooShort)
}

func TestGatewaySentimentAware_EnglishPath(t *testing.T) {
	stub := &stubEnricher{label: LabelPositive, score: 0.9}
	g := NewGateway(stub)

	result, err := g.AnalyzeSentimentAware(context.Background(), "I love this")
	require.NoError(t, err)
	assert.Equal(t, "en", result.Language)
	assert.Equal(t, LabelPositive, result.Label)
	assert.Empty(t, result.TranslatedText)
}

func TestGatewaySentimentAware_TranslatesNonEnglish(t *testing.T) {
	stub := &stubEnricher{
		label:       LabelNegative,
		score:       0.8,
		translation: Translation{SourceLang: "fa", Translated: "I hate this"},
	}
	g := NewGateway(stub)

	result, err := g.AnalyzeSentimentAware(context.Background(), "از این متنفرم")
	require.NoError(t, err)
	assert.Equal(t, "fa", result.Language)
	assert.Equal(t, "I hate this", result.TranslatedText)
	assert.Equal(t, "I hate this", stub.sentimentSeen)
}

func TestGatewaySentimentAware_TranslationFailureScoresOriginal(t *testing.T) {
	stub := &stubEnricher{
		label:        LabelNegative,
		score:        0.6,
		translateErr: fmt.Errorf("no translator"),
	}
	g := NewGateway(stub)

	result, err := g.AnalyzeSentimentAware(context.Background(), "متن فارسی برای آزمون")
	require.NoError(t, err)
	assert.Equal(t, "fa", result.Language)
	assert.Empty(t, result.TranslatedText)
	assert.Equal(t, "متن فارسی برای آزمون", stub.sentimentSeen)
}

func TestGatewaySentimentAware_ProviderErrorPropagates(t *testing.T) {
	g := NewGateway(&stubEnricher{sentimentErr: fmt.Errorf("model crashed")})

	_, err := g.AnalyzeSentimentAware(context.Background(), "I love this")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTextTooShort)
}

func TestGatewayScoreClamped(t *testing.T) {
	g := NewGateway(&stubEnricher{label: LabelPositive, score: 1.7})

	result := g.AnalyzeSentiment(context.Background(), "great stuff here")
	assert.Equal(t, 1.0, result.Score)
}
