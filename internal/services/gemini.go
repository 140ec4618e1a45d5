package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Embedding input beyond this is truncated before the provider call
// (roughly the embedding model's token limit).
const embedInputLimit = 40000

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateText(ctx context.Context, model, prompt string, jsonOutput bool) (string, error)
}

// GeminiOptions carries the provider credentials and the embedding model
// identifier. Both are required external configuration; nothing here has
// a hard-coded default.
type GeminiOptions struct {
	APIKey     string
	EmbedModel string
}

type geminiService struct {
	client     *genai.Client
	embedModel string
}

func NewGeminiService(opts GeminiOptions) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		embedModel: opts.EmbedModel,
	}, nil
}

// GenerateEmbedding implements GeminiService. One call per text, no retry,
// no batching.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if len(text) > embedInputLimit {
		text = text[:embedInputLimit]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, classifyProviderError(err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: empty embedding result", ErrProviderError)
	}

	return result.Embeddings[0].Values, nil
}

// GenerateText implements GeminiService. With jsonOutput the response is
// constrained to a syntactically valid JSON object. Provider errors are
// returned raw so callers can inspect them before classifying.
func (g *geminiService) GenerateText(ctx context.Context, model, prompt string, jsonOutput bool) (string, error) {
	temperature := float32(0.3)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}
	if jsonOutput {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}

	if resp == nil {
		return "", fmt.Errorf("%w: nil completion response", ErrProviderError)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: no text content in response", ErrProviderError)
	}

	return text, nil
}

// Model families that predate the JSON response mode. Everything newer on
// the Gemini API accepts response_mime_type: application/json.
var legacyTextOnlyModels = map[string]bool{
	"gemini-pro":        true,
	"gemini-pro-vision": true,
	"gemini-1.0-pro":    true,
}

// SupportsStructuredOutput reports whether a model accepts the JSON
// response mode.
func SupportsStructuredOutput(model string) bool {
	return !legacyTextOnlyModels[strings.ToLower(strings.TrimSpace(model))]
}

// IsStructuredOutputUnsupported reports whether the provider rejected the
// JSON response mode itself rather than the request content. The
// invalid-argument status code is the primary signal; matching the message
// text is the last resort for responses that carry no structured detail.
func IsStructuredOutputUnsupported(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code != http.StatusBadRequest {
		return false
	}

	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "response_mime_type") ||
		strings.Contains(msg, "response mime type") ||
		strings.Contains(msg, "json mode")
}

// classifyProviderError folds a raw provider error into the pipeline
// taxonomy. Errors already carrying a taxonomy sentinel pass through.
func classifyProviderError(err error) error {
	switch {
	case errors.Is(err, ErrProviderUnavailable),
		errors.Is(err, ErrProviderRejected),
		errors.Is(err, ErrProviderError):
		return err
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		// No structured provider response: connectivity, DNS, TLS, or a
		// cancelled context.
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	switch {
	case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, apiErr.Message)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return fmt.Errorf("%w: %s", ErrProviderRejected, apiErr.Message)
	default:
		return fmt.Errorf("%w: %s", ErrProviderError, apiErr.Message)
	}
}
