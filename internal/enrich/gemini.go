package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/api/option"
)

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: sentiment scoring, language detection.
	TierLite ModelTier = "lite"
	// TierStandard is for moderate tasks: summarization, translation.
	TierStandard ModelTier = "standard"
)

// ModelConfig maps tiers to concrete model names.
type ModelConfig struct {
	Models map[ModelTier]string
}

// DefaultModelConfig returns the default Gemini model assignment.
func DefaultModelConfig() *ModelConfig {
	return &ModelConfig{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// Model returns the model name for a tier, falling back to lite.
func (c *ModelConfig) Model(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierLite]
}

// translationSchema validates the JSON shape returned by translation prompts.
const translationSchema = `{
	"type": "object",
	"properties": {
		"source_lang": {"type": "string"},
		"translated": {"type": "string"}
	},
	"required": ["source_lang", "translated"]
}`

// sentimentSchema validates the JSON shape returned by sentiment prompts.
const sentimentSchema = `{
	"type": "object",
	"properties": {
		"label": {"type": "string", "enum": ["POSITIVE", "NEGATIVE"]},
		"score": {"type": "number", "minimum": 0, "maximum": 1}
	},
	"required": ["label", "score"]
}`

// GeminiEnricher implements Enricher using Google Gemini.
type GeminiEnricher struct {
	client *genai.Client
	config *ModelConfig
}

// NewGeminiEnricher creates a Gemini-backed enricher.
func NewGeminiEnricher(ctx context.Context, apiKey string, config *ModelConfig) (*GeminiEnricher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultModelConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEnricher{client: client, config: config}, nil
}

// Name identifies the provider.
func (e *GeminiEnricher) Name() string {
	return "gemini"
}

// Close releases the underlying client.
func (e *GeminiEnricher) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Summarize asks the model for a short plain-text summary.
func (e *GeminiEnricher) Summarize(ctx context.Context, text string) (string, error) {
	prompt := "Summarize the following text in 2-4 sentences. " +
		"Respond with the summary only, no preamble.\n\n" + text

	result, err := e.generateText(ctx, prompt, TierStandard)
	if err != nil {
		return "", fmt.Errorf("failed to summarize: %w", err)
	}
	return result, nil
}

// Translate asks the model for a JSON translation record and validates it
// against translationSchema before trusting it.
func (e *GeminiEnricher) Translate(ctx context.Context, text, targetLang string) (Translation, error) {
	prompt := fmt.Sprintf(
		"Translate the following text into the language with ISO 639-1 code %q. "+
			"Respond with JSON only: {\"source_lang\": \"<detected ISO 639-1 code>\", \"translated\": \"<translation>\"}\n\n%s",
		targetLang, text)

	raw, err := e.generateJSON(ctx, prompt, TierStandard, translationSchema)
	if err != nil {
		return Translation{}, fmt.Errorf("failed to translate: %w", err)
	}

	var parsed struct {
		SourceLang string `json:"source_lang"`
		Translated string `json:"translated"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Translation{}, fmt.Errorf("failed to parse translation response: %w", err)
	}

	return Translation{
		SourceLang: parsed.SourceLang,
		TargetLang: targetLang,
		Original:   text,
		Translated: parsed.Translated,
	}, nil
}

// Sentiment asks the model for a JSON sentiment verdict and validates it
// against sentimentSchema before trusting it.
func (e *GeminiEnricher) Sentiment(ctx context.Context, text string) (string, float64, error) {
	prompt := "Classify the sentiment of the following English text. " +
		"Respond with JSON only: {\"label\": \"POSITIVE\" or \"NEGATIVE\", \"score\": <confidence between 0 and 1>}\n\n" + text

	raw, err := e.generateJSON(ctx, prompt, TierLite, sentimentSchema)
	if err != nil {
		return "", 0, fmt.Errorf("failed to score sentiment: %w", err)
	}

	var parsed struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return "", 0, fmt.Errorf("failed to parse sentiment response: %w", err)
	}

	return parsed.Label, parsed.Score, nil
}

// generateText runs a plain-text generation with low temperature.
func (e *GeminiEnricher) generateText(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model := e.client.GenerativeModel(e.config.Model(tier))
	model.SetTemperature(0.1)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return extractTextFromResponse(resp)
}

// generateJSON runs a JSON-mode generation and validates the result against
// the given schema.
func (e *GeminiEnricher) generateJSON(ctx context.Context, prompt string, tier ModelTier, schema string) (string, error) {
	model := e.client.GenerativeModel(e.config.Model(tier))
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	text = cleanJSONBlock(text)

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(text),
	)
	if err != nil {
		return "", fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		return "", fmt.Errorf("response does not match schema: %v", result.Errors())
	}

	return text, nil
}

// extractTextFromResponse extracts text parts from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON.
// Models often wrap JSON in ```json ... ``` even when instructed not to.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
