package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"resumematch/internal/models"
)

type AnalyzerService interface {
	AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisResult, error)
}

// AnalyzerOptions selects the two model variants of the analysis call.
type AnalyzerOptions struct {
	// AnalysisModel serves the primary structured-output path.
	AnalysisModel string
	// LegacyModel serves the plain-text path taken when AnalysisModel does
	// not accept structured JSON output. Empty reuses AnalysisModel
	// without the JSON response mode.
	LegacyModel string
}

type analyzerService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	opts          AnalyzerOptions
}

func NewAnalyzerService(gemini GeminiService, opts AnalyzerOptions) AnalyzerService {
	return &analyzerService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		opts:          opts,
	}
}

// AnalyzeResume implements AnalyzerService.
func (a *analyzerService) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisResult, error) {
	prompt := a.promptBuilder.BuildResumeAnalysisPrompt(resumeText, jobDescription)

	response, err := a.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return ParseAnalysisResult(response)
}

// generate picks the capable-model or legacy-model path by capability
// check. Only a rejection of the JSON response mode itself triggers the
// one documented fallback; every other provider error propagates
// unretried.
func (a *analyzerService) generate(ctx context.Context, prompt string) (string, error) {
	if !SupportsStructuredOutput(a.opts.AnalysisModel) {
		return a.generateLegacy(ctx, prompt)
	}

	response, err := a.gemini.GenerateText(ctx, a.opts.AnalysisModel, prompt, true)
	if err == nil {
		return response, nil
	}

	// The capability table can lag behind the provider; honor a runtime
	// rejection of the JSON response mode the same way.
	if IsStructuredOutputUnsupported(err) {
		log.Printf("⚠️  Model %s rejected structured output, retrying without it", a.opts.AnalysisModel)
		return a.generateLegacy(ctx, prompt)
	}

	return "", classifyProviderError(err)
}

func (a *analyzerService) generateLegacy(ctx context.Context, prompt string) (string, error) {
	model := a.opts.LegacyModel
	if model == "" {
		model = a.opts.AnalysisModel
	}

	response, err := a.gemini.GenerateText(ctx, model, prompt, false)
	if err != nil {
		return "", classifyProviderError(err)
	}

	return response, nil
}

var analysisFields = []string{
	"key_strengths",
	"missing_skills",
	"recommendations",
	"sample_cover_letter",
}

// ParseAnalysisResult parses a completion response into the four-field
// analysis record. The object must carry exactly the four expected keys,
// matched case-insensitively since providers have returned
// "Sample_cover_letter". Missing or unknown keys fail the parse; fields
// are never defaulted or repaired.
func ParseAnalysisResult(response string) (*models.AnalysisResult, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(extractJSON(response)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAnalysisResponse, err)
	}

	fields := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		fields[strings.ToLower(key)] = value
	}

	if len(fields) != len(analysisFields) || len(fields) != len(raw) {
		return nil, fmt.Errorf("%w: expected exactly the fields %v", ErrMalformedAnalysisResponse, analysisFields)
	}

	result := &models.AnalysisResult{}
	targets := map[string]*[]string{
		"key_strengths":       &result.KeyStrengths,
		"missing_skills":      &result.MissingSkills,
		"recommendations":     &result.Recommendations,
		"sample_cover_letter": &result.SampleCoverLetter,
	}

	for _, key := range analysisFields {
		value, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrMalformedAnalysisResponse, key)
		}
		if err := json.Unmarshal(value, targets[key]); err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrMalformedAnalysisResponse, key, err)
		}
	}

	return result, nil
}

// extractJSON strips markdown code fences some models wrap around their
// output and narrows the text to the outermost JSON object.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
