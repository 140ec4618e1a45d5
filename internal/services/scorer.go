package services

import (
	"fmt"
	"math"
)

// MatchScore maps the cosine similarity of two embedding vectors onto a
// 0-100 score rounded to two decimal places. A zero-magnitude vector on
// either side makes the similarity undefined and is rejected rather than
// silently scored as 0.
func MatchScore(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("%w: dimensions %d and %d", ErrDegenerateVector, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("%w: zero magnitude", ErrDegenerateVector)
	}

	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Round(similarity*10000) / 100, nil
}
