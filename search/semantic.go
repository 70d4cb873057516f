// Copyright 2025 The kbforge Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/kbforge/kbforge/ai"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// SemanticMatcher scores documents by embedding cosine similarity. When the
// document repository implements storage.VectorSearcher, similarity search
// is delegated to it; otherwise a batched brute-force scan over the
// authorized corpus guarantees a correct result.
type SemanticMatcher struct {
	docs     storage.DocumentRepository
	embedder ai.Embedder
	config   Config
	logger   *slog.Logger
}

var _ Matcher = (*SemanticMatcher)(nil)

// NewSemanticMatcher creates a semantic matcher.
func NewSemanticMatcher(docs storage.DocumentRepository, embedder ai.Embedder, config Config) (*SemanticMatcher, error) {
	if docs == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrAIProviderRequired
	}
	config.normalize()
	return &SemanticMatcher{
		docs:     docs,
		embedder: embedder,
		config:   config,
		logger:   slog.Default().With("component", "semantic-matcher"),
	}, nil
}

// Match embeds the query and returns documents above the similarity
// threshold, best first. An empty result set is a valid outcome, not an
// error.
func (m *SemanticMatcher) Match(ctx context.Context, query string, scope *Scope) ([]*core.ScoredResult, error) {
	vector, err := m.embedder.EmbedText(ctx, query)
	if err != nil {
		m.logger.Error("query embedding failed", "err", err)
		return nil, fmt.Errorf("%w: %v", ai.ErrEmbeddingUnavailable, err)
	}
	if len(vector) != m.config.EmbeddingDim {
		m.logger.Error("query embedding has wrong dimension",
			"got", len(vector), "want", m.config.EmbeddingDim)
		return nil, fmt.Errorf("%w: embedding dimension %d, expected %d",
			ai.ErrEmbeddingUnavailable, len(vector), m.config.EmbeddingDim)
	}

	limit := m.config.SemanticTopK
	if m.config.SemanticBestOnly {
		limit = 1
	}

	var matches []*core.SimilarityMatch
	if searcher, ok := m.docs.(storage.VectorSearcher); ok {
		matches, err = searcher.FindSimilar(ctx, scope.TeamIDs, vector, m.config.SemanticThreshold, limit)
		if err != nil {
			return nil, err
		}
		// The index only covers team ownership; overlay grants are scored
		// separately and merged in.
		grantedMatches, err := m.scoreGranted(ctx, scope, vector)
		if err != nil {
			return nil, err
		}
		if len(grantedMatches) > 0 {
			matches = append(matches, grantedMatches...)
			sortMatches(matches)
			if len(matches) > limit {
				matches = matches[:limit]
			}
		}
	} else {
		matches, err = m.bruteForce(ctx, scope, vector, limit)
		if err != nil {
			return nil, err
		}
	}

	results := make([]*core.ScoredResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, &core.ScoredResult{
			Document: match.Document,
			Score:    match.Score,
		})
	}
	return results, nil
}

// bruteForce computes cosine similarity against every document in the
// scope with a usable embedding. Documents with missing or wrong-dimension
// embeddings are skipped, never treated as zero-similarity matches. The
// scan is batched so a large team never holds its whole corpus in memory.
func (m *SemanticMatcher) bruteForce(ctx context.Context, scope *Scope, vector []float32, limit int) ([]*core.SimilarityMatch, error) {
	var matches []*core.SimilarityMatch

	err := m.docs.ScanByTeams(ctx, scope.TeamIDs, m.config.ScanBatchSize, func(batch []*core.Document) error {
		matches = m.scoreBatch(matches, batch, vector)
		return nil
	})
	if err != nil {
		return nil, err
	}

	grantedMatches, err := m.scoreGranted(ctx, scope, vector)
	if err != nil {
		return nil, err
	}
	matches = append(matches, grantedMatches...)

	sortMatches(matches)

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// scoreGranted scores the scope's overlay-granted documents.
func (m *SemanticMatcher) scoreGranted(ctx context.Context, scope *Scope, vector []float32) ([]*core.SimilarityMatch, error) {
	granted, err := grantedDocuments(ctx, m.docs, scope)
	if err != nil {
		return nil, err
	}
	return m.scoreBatch(nil, granted, vector), nil
}

// scoreBatch appends every above-threshold document in the batch to matches.
func (m *SemanticMatcher) scoreBatch(matches []*core.SimilarityMatch, batch []*core.Document, vector []float32) []*core.SimilarityMatch {
	for _, doc := range batch {
		if !doc.HasEmbedding(m.config.EmbeddingDim) {
			continue
		}
		similarity, ok := Cosine(vector, doc.Embedding)
		if !ok {
			continue
		}
		if similarity >= m.config.SemanticThreshold {
			matches = append(matches, &core.SimilarityMatch{
				Document: doc,
				Score:    similarity,
			})
		}
	}
	return matches
}

// sortMatches orders matches by similarity descending.
func sortMatches(matches []*core.SimilarityMatch) {
	slices.SortFunc(matches, func(a, b *core.SimilarityMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})
}
