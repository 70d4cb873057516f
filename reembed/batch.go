package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/kbforge/kbforge/ai"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// BatchProcessor handles embedding generation for batches of documents.
type BatchProcessor struct {
	repo           storage.DocumentRepository
	embedder       ai.Embedder
	embeddingDim   int
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// embeddingDim: expected vector length, 0 disables the check
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.DocumentRepository, embedder ai.Embedder, embeddingDim, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		embeddingDim:   embeddingDim,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of documents and updates them
// in storage. Vectors are normalized after embedding so dot products stay
// comparable across models.
func (bp *BatchProcessor) Process(ctx context.Context, docs []*core.Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(docs) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(docs), len(embeddings))
	}

	for i := range docs {
		if bp.embeddingDim > 0 && len(embeddings[i]) != bp.embeddingDim {
			return fmt.Errorf("embedding dimension mismatch for document %d: got %d, want %d",
				docs[i].Id, len(embeddings[i]), bp.embeddingDim)
		}
		docs[i].Embedding = NormalizeVector(embeddings[i])
	}

	_, err = bp.repo.UpdateDocuments(ctx, docs...)
	if err != nil {
		return fmt.Errorf("failed to update documents: %w", err)
	}

	return nil
}
