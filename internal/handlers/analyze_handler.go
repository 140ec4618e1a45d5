package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resumematch/internal/models"
	"resumematch/internal/services"
)

type AnalyzeHandler struct {
	pipeline    services.PipelineService
	maxFileSize int64
}

func NewAnalyzeHandler(pipeline services.PipelineService, maxFileSize int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		pipeline:    pipeline,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please upload your resume (multipart field 'resume').",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read resume file: %v", err),
		})
	}

	report, err := h.pipeline.Run(c.Context(), services.AnalyzeRequest{
		Document:       data,
		MediaType:      resolveMediaType(fileHeader),
		JobDescription: c.FormValue("job_description"),
	})
	if err != nil {
		status, message := mapPipelineError(err)
		return c.Status(status).JSON(fiber.Map{
			"error": message,
		})
	}

	return c.JSON(models.AnalyzeResponse{
		ID:         report.ID.String(),
		MatchScore: report.MatchScore,
		Analysis:   report.Analysis,
	})
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}

// resolveMediaType prefers the declared Content-Type; clients that send
// application/octet-stream fall back to the file extension.
func resolveMediaType(fileHeader *multipart.FileHeader) string {
	mediaType := strings.TrimSpace(strings.Split(fileHeader.Header.Get("Content-Type"), ";")[0])
	if mediaType != "" && mediaType != "application/octet-stream" {
		return mediaType
	}

	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".pdf":
		return services.MediaTypePDF
	case ".docx":
		return services.MediaTypeDOCX
	}

	return mediaType
}

// mapPipelineError translates the pipeline error taxonomy into an HTTP
// status and a user-facing message. Nothing is swallowed: unrecognized
// errors surface verbatim as 500s.
func mapPipelineError(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrMissingJobDescription):
		return fiber.StatusBadRequest, "Please paste the job description."
	case errors.Is(err, services.ErrUnsupportedFormat):
		return fiber.StatusUnsupportedMediaType, "Please upload your resume as a PDF or DOCX file."
	case errors.Is(err, services.ErrExtractionEmpty):
		return fiber.StatusUnprocessableEntity, "No text could be extracted from the resume. Please try another file."
	case errors.Is(err, services.ErrProviderRejected):
		return fiber.StatusUnprocessableEntity, "The AI provider rejected the input. The resume or job description may be too long."
	case errors.Is(err, services.ErrProviderUnavailable):
		return fiber.StatusServiceUnavailable, "The AI provider is unreachable. Please try again later."
	case errors.Is(err, services.ErrMalformedAnalysisResponse):
		return fiber.StatusBadGateway, "The AI response was not valid JSON. Please try again."
	case errors.Is(err, services.ErrDegenerateVector):
		return fiber.StatusInternalServerError, "Similarity could not be computed for this input."
	case errors.Is(err, services.ErrProviderError):
		return fiber.StatusBadGateway, "The AI provider returned an error. Please try again later."
	}

	return fiber.StatusInternalServerError, err.Error()
}
