package services

import (
	"context"

	"resumematch/internal/models"
)

// stubGemini implements GeminiService for pipeline and analyzer tests.
type stubGemini struct {
	embedFn    func(ctx context.Context, text string) ([]float32, error)
	generateFn func(ctx context.Context, model, prompt string, jsonOutput bool) (string, error)

	embedCalls    []string
	generateCalls []stubGenerateCall
}

type stubGenerateCall struct {
	model      string
	prompt     string
	jsonOutput bool
}

func (s *stubGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	s.embedCalls = append(s.embedCalls, text)
	if s.embedFn == nil {
		return []float32{1, 0, 0}, nil
	}
	return s.embedFn(ctx, text)
}

func (s *stubGemini) GenerateText(ctx context.Context, model, prompt string, jsonOutput bool) (string, error) {
	s.generateCalls = append(s.generateCalls, stubGenerateCall{model: model, prompt: prompt, jsonOutput: jsonOutput})
	return s.generateFn(ctx, model, prompt, jsonOutput)
}

// stubAnalyzer implements AnalyzerService for pipeline tests.
type stubAnalyzer struct {
	result *models.AnalysisResult
	err    error
	calls  int
}

func (s *stubAnalyzer) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (*models.AnalysisResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}
