package search

import (
	"context"

	"github.com/kbforge/kbforge/core"
)

// Matcher scores documents from the resolved access scope against a
// free-text query. Both matching strategies share this contract so ranking
// and thresholding are not re-derived per mode.
//
// Scores are internally consistent per matcher but the two scales are not
// comparable to each other: lexical scores are field-weight sums, semantic
// scores are raw cosine similarities.
type Matcher interface {
	Match(ctx context.Context, query string, scope *Scope) ([]*core.ScoredResult, error)
}
