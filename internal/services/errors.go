package services

import "errors"

// Pipeline error taxonomy. Every failure the pipeline can surface wraps
// exactly one of these sentinels; handlers translate them into
// human-readable HTTP responses with errors.Is.
var (
	// ErrUnsupportedFormat marks a document whose media type is neither
	// PDF nor DOCX, or one that cannot be opened as the declared type.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrExtractionEmpty marks a document that parsed but yielded no
	// usable text, e.g. a scanned image-only PDF.
	ErrExtractionEmpty = errors.New("document contains no extractable text")

	// ErrMissingJobDescription marks an empty or whitespace-only job
	// description input.
	ErrMissingJobDescription = errors.New("job description is empty")

	// ErrProviderUnavailable marks connectivity or auth failures against
	// the embedding or completion provider.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderRejected marks inputs the provider refused, e.g. text
	// beyond the model's input limit.
	ErrProviderRejected = errors.New("provider rejected input")

	// ErrProviderError marks unclassified provider-side failures.
	ErrProviderError = errors.New("provider error")

	// ErrMalformedAnalysisResponse marks a completion response that could
	// not be parsed into the four-field analysis record.
	ErrMalformedAnalysisResponse = errors.New("analysis response is not a valid four-field JSON object")

	// ErrDegenerateVector marks a zero-magnitude embedding, for which
	// cosine similarity is undefined.
	ErrDegenerateVector = errors.New("degenerate embedding vector")
)
