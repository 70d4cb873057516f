package search

import "math"

// Cosine computes the cosine similarity of two vectors.
// The second return value is false when the pair cannot be compared:
// mismatched dimensions or a zero-norm operand. Such pairs are skipped by
// callers, never treated as zero-similarity matches.
func Cosine(a, b []float32) (float32, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB))), true
}
