package ai

import "errors"

var (
	// ErrEmbeddingUnavailable indicates the embedding service could not
	// produce a vector for the requested text.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrGenerationFailed indicates the generation service failed to
	// produce a completion.
	ErrGenerationFailed = errors.New("generation failed")
)
