package ner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/screenware/resume-screener/internal/prompts"
)

// DefaultModel is the Gemini model used for entity recognition.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds one recognition call.
const DefaultTimeout = 8 * time.Second

// GeminiConfig configures the Gemini-backed recognizer.
type GeminiConfig struct {
	Model   string        `json:"model"`
	Timeout time.Duration `json:"timeout"`
}

// DefaultGeminiConfig returns sensible defaults for recognition.
func DefaultGeminiConfig() *GeminiConfig {
	return &GeminiConfig{
		Model:   DefaultModel,
		Timeout: DefaultTimeout,
	}
}

// Gemini implements Recognizer using the Gemini API. It asks the model for
// a JSON array of entity spans and sanitizes the result against the input.
type Gemini struct {
	client *genai.Client
	config *GeminiConfig
}

// NewGemini creates a Gemini-backed recognizer.
func NewGemini(ctx context.Context, config *GeminiConfig, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultGeminiConfig()
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		config: config,
	}, nil
}

// Recognize extracts entity spans from text. The call is bounded by the
// configured timeout; errors are returned to the caller, which is expected
// to degrade to heuristics rather than fail.
func (g *Gemini) Recognize(ctx context.Context, text string) ([]Span, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	timeout := g.config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	model := g.client.GenerativeModel(g.config.Model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(recognitionPrompt(text)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return parseSpans(cleanJSONBlock(raw), text)
}

// Close releases resources held by the recognizer.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func recognitionPrompt(text string) string {
	template := prompts.MustGet("recognition.json", "extract-entities")
	return prompts.Format(template, map[string]string{"Document": text})
}

func parseSpans(raw, text string) ([]Span, error) {
	var spans []Span
	if err := json.Unmarshal([]byte(raw), &spans); err != nil {
		return nil, fmt.Errorf("failed to parse entity spans: %w", err)
	}
	return Sanitize(spans, text), nil
}

// extractTextFromResponse extracts text from a Gemini API response.
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
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
