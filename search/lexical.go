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
	"log/slog"
	"slices"
	"strings"

	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// Field weights for lexical scoring. An exact token match contributes the
// full weight, a one-edit fuzzy match contributes half.
const (
	titleWeight   float32 = 3.0
	tagsWeight    float32 = 2.0
	contentWeight float32 = 1.0
)

// LexicalMatcher scores documents by fuzzy token comparison across title,
// tags, and content. A query token matches a document token when they
// differ by at most one edit.
type LexicalMatcher struct {
	docs   storage.DocumentRepository
	config Config
	logger *slog.Logger
}

var _ Matcher = (*LexicalMatcher)(nil)

// NewLexicalMatcher creates a lexical matcher over the given document repository.
func NewLexicalMatcher(docs storage.DocumentRepository, config Config) (*LexicalMatcher, error) {
	if docs == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	config.normalize()
	return &LexicalMatcher{
		docs:   docs,
		config: config,
		logger: slog.Default().With("component", "lexical-matcher"),
	}, nil
}

// Match scores every document in the resolved scope against the query and
// returns up to LexicalLimit results. Truncation happens after scoring so a
// late-scanned high scorer is never dropped. Equal scores order by most
// recent update time.
func (m *LexicalMatcher) Match(ctx context.Context, query string, scope *Scope) ([]*core.ScoredResult, error) {
	queryTokens := tokenizeAndFilter(query)
	if len(queryTokens) == 0 {
		return []*core.ScoredResult{}, nil
	}

	var results []*core.ScoredResult
	collect := func(batch []*core.Document) error {
		for _, doc := range batch {
			score := scoreDocument(doc, queryTokens)
			if score > 0 {
				results = append(results, &core.ScoredResult{
					Document: doc,
					Score:    score,
				})
			}
		}
		return nil
	}

	err := m.docs.ScanByTeams(ctx, scope.TeamIDs, m.config.ScanBatchSize, collect)
	if err != nil {
		m.logger.Error("lexical scan failed", "err", err)
		return nil, err
	}

	granted, err := grantedDocuments(ctx, m.docs, scope)
	if err != nil {
		m.logger.Error("granted document lookup failed", "err", err)
		return nil, err
	}
	collect(granted)

	slices.SortFunc(results, func(a, b *core.ScoredResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		// Tie-break by most recent update
		if a.Document.UpdatedAt.After(b.Document.UpdatedAt) {
			return -1
		}
		if a.Document.UpdatedAt.Before(b.Document.UpdatedAt) {
			return 1
		}
		return 0
	})

	if len(results) > m.config.LexicalLimit {
		results = results[:m.config.LexicalLimit]
	}
	return results, nil
}

// scoreDocument sums per-token field contributions. A token may score in
// several fields at once, so a multi-field exact match outranks a single
// fuzzy one.
func scoreDocument(doc *core.Document, queryTokens []string) float32 {
	titleTokens := tokenizeAndFilter(doc.Title)
	contentTokens := tokenizeAndFilter(doc.Content)
	tagTokens := tokenizeAndFilter(strings.Join(doc.Tags, " "))

	var score float32
	for _, q := range queryTokens {
		score += fieldContribution(q, titleTokens, titleWeight)
		score += fieldContribution(q, tagTokens, tagsWeight)
		score += fieldContribution(q, contentTokens, contentWeight)
	}
	return score
}

// fieldContribution returns the weight for an exact hit, half the weight
// for a one-edit fuzzy hit, and zero otherwise.
func fieldContribution(query string, fieldTokens []string, weight float32) float32 {
	fuzzy := false
	for _, t := range fieldTokens {
		if t == query {
			return weight
		}
		if !fuzzy && withinOneEdit(query, t) {
			fuzzy = true
		}
	}
	if fuzzy {
		return weight / 2
	}
	return 0
}
