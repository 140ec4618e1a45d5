package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"resumematch/internal/models"
)

// Stage identifies where an analysis run currently is. Transitions are
// strictly sequential; any failure moves straight to StageAborted.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageExtracting Stage = "extracting"
	StageEmbedding  Stage = "embedding"
	StageScoring    Stage = "scoring"
	StageAnalyzing  Stage = "analyzing"
	StageDone       Stage = "done"
	StageAborted    Stage = "aborted"
)

// AnalyzeRequest carries one uploaded document and the pasted job
// description. The document is consumed once and discarded; nothing
// outlives the request.
type AnalyzeRequest struct {
	Document       []byte
	MediaType      string
	JobDescription string
}

type PipelineService interface {
	Run(ctx context.Context, req AnalyzeRequest) (*models.MatchReport, error)
}

type pipelineService struct {
	extractor TextExtractorService
	gemini    GeminiService
	analyzer  AnalyzerService
}

func NewPipelineService(
	extractor TextExtractorService,
	gemini GeminiService,
	analyzer AnalyzerService,
) PipelineService {
	return &pipelineService{
		extractor: extractor,
		gemini:    gemini,
		analyzer:  analyzer,
	}
}

// Run implements PipelineService. Extraction, the two embedding calls,
// scoring and the analysis call execute strictly in sequence; the score
// and the analysis are emitted together or not at all.
func (p *pipelineService) Run(ctx context.Context, req AnalyzeRequest) (*models.MatchReport, error) {
	id := uuid.New()
	stage := StageIdle

	// Blocking preconditions, checked before any provider call.
	if len(req.Document) == 0 {
		return nil, p.abort(id, stage, fmt.Errorf("%w: no document provided", ErrUnsupportedFormat))
	}
	jobDescription := strings.TrimSpace(req.JobDescription)
	if jobDescription == "" {
		return nil, p.abort(id, stage, ErrMissingJobDescription)
	}

	stage = StageExtracting
	log.Printf("📄 [%s] Extracting resume text...", id)
	resumeText, err := p.extractor.ExtractText(req.Document, req.MediaType)
	if err != nil {
		return nil, p.abort(id, stage, err)
	}

	stage = StageEmbedding
	log.Printf("🧮 [%s] Embedding resume and job description...", id)
	resumeEmbedding, err := p.gemini.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		return nil, p.abort(id, stage, err)
	}
	jobEmbedding, err := p.gemini.GenerateEmbedding(ctx, jobDescription)
	if err != nil {
		return nil, p.abort(id, stage, err)
	}

	stage = StageScoring
	score, err := MatchScore(resumeEmbedding, jobEmbedding)
	if err != nil {
		return nil, p.abort(id, stage, err)
	}

	stage = StageAnalyzing
	log.Printf("🤖 [%s] Requesting analysis from completion provider...", id)
	analysis, err := p.analyzer.AnalyzeResume(ctx, resumeText, jobDescription)
	if err != nil {
		return nil, p.abort(id, stage, err)
	}

	stage = StageDone
	log.Printf("✅ [%s] Pipeline %s, match score %.2f", id, stage, score)

	return &models.MatchReport{
		ID:         id,
		MatchScore: score,
		Analysis:   analysis,
	}, nil
}

func (p *pipelineService) abort(id uuid.UUID, stage Stage, err error) error {
	log.Printf("❌ [%s] Pipeline %s during %s: %v", id, StageAborted, stage, err)
	return fmt.Errorf("%s: %w", stage, err)
}
