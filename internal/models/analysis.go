package models

import "github.com/google/uuid"

// AnalysisResult is the structured critique returned by the completion
// provider. All four fields must be present in the provider's JSON; the
// analyzer rejects anything else rather than guessing at missing data.
// List ordering is preserved exactly as the provider returned it.
type AnalysisResult struct {
	KeyStrengths      []string `json:"key_strengths"`
	MissingSkills     []string `json:"missing_skills"`
	Recommendations   []string `json:"recommendations"`
	SampleCoverLetter []string `json:"sample_cover_letter"`
}

// MatchReport is the unit of pipeline output. The score and the analysis
// are always emitted together; a pipeline run never produces one half.
type MatchReport struct {
	ID         uuid.UUID
	MatchScore float64
	Analysis   *AnalysisResult
}

// AnalyzeResponse is the JSON body returned to the presentation layer.
type AnalyzeResponse struct {
	ID         string          `json:"id"`
	MatchScore float64         `json:"match_score"`
	Analysis   *AnalysisResult `json:"analysis"`
}
