package search

import "github.com/kbforge/kbforge/core"

// Mode selects the matching strategy for a search request.
type Mode string

const (
	// ModeLexical matches on fuzzy token comparison across title, tags,
	// and content.
	ModeLexical Mode = "lexical"

	// ModeSemantic matches on embedding cosine similarity.
	ModeSemantic Mode = "semantic"
)

// ParseMode converts a string into a Mode.
// Returns ErrUnknownMode for anything other than "lexical" or "semantic".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLexical, ModeSemantic:
		return Mode(s), nil
	default:
		return "", ErrUnknownMode
	}
}

// Config holds tuning parameters for the search pipeline.
type Config struct {
	// LexicalLimit caps the number of lexical results, applied after
	// scoring. Default 10.
	LexicalLimit int

	// SemanticTopK caps the number of semantic results. Default 5.
	SemanticTopK int

	// SemanticThreshold is the minimum cosine similarity a semantic match
	// must reach. Results below it are discarded. Default 0.7.
	SemanticThreshold float32

	// SemanticBestOnly restricts semantic mode to the single best match
	// above threshold.
	SemanticBestOnly bool

	// EmbeddingDim is the required dimensionality of embedding vectors.
	// Query vectors of a different length fail the request; stored
	// vectors of a different length are skipped.
	EmbeddingDim int

	// ScanBatchSize bounds how many documents a corpus scan holds in
	// memory at once. Default 64.
	ScanBatchSize int
}

// DefaultConfig returns the default search configuration.
func DefaultConfig() Config {
	return Config{
		LexicalLimit:      10,
		SemanticTopK:      5,
		SemanticThreshold: 0.7,
		SemanticBestOnly:  false,
		EmbeddingDim:      core.DefaultEmbeddingDim,
		ScanBatchSize:     64,
	}
}

// normalize fills in zero values with defaults.
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.LexicalLimit <= 0 {
		c.LexicalLimit = d.LexicalLimit
	}
	if c.SemanticTopK <= 0 {
		c.SemanticTopK = d.SemanticTopK
	}
	if c.SemanticThreshold == 0 {
		c.SemanticThreshold = d.SemanticThreshold
	}
	if c.EmbeddingDim <= 0 {
		c.EmbeddingDim = d.EmbeddingDim
	}
	if c.ScanBatchSize <= 0 {
		c.ScanBatchSize = d.ScanBatchSize
	}
}
