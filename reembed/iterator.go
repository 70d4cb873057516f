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


package reembed

import (
	"context"

	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

const (
	// DefaultBatchSize is the default number of documents to fetch in each batch
	DefaultBatchSize = 100
)

// DocumentIterator iterates over all stored documents in batches.
type DocumentIterator struct {
	repo      storage.DocumentRepository
	batchSize int
}

// NewDocumentIterator creates a new document iterator.
// batchSize: number of documents to fetch in each batch (must be > 0)
func NewDocumentIterator(repo storage.DocumentRepository, batchSize int) *DocumentIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &DocumentIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all documents, calling fn for each batch.
// Iteration stops on the first error from fn or when every document has
// been seen. Batches are streamed, so the full corpus is never held in
// memory at once.
func (it *DocumentIterator) ForEach(ctx context.Context, fn func([]*core.Document) error) error {
	return it.repo.ScanAll(ctx, it.batchSize, fn)
}

// Count returns the total number of stored documents.
func (it *DocumentIterator) Count(ctx context.Context) (int, error) {
	total := 0
	err := it.repo.ScanAll(ctx, it.batchSize, func(batch []*core.Document) error {
		total += len(batch)
		return nil
	})
	return total, err
}
