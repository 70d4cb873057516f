package docs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kbforge/kbforge/core"
)

const summaryPromptFormat = "Summarize the following document titled %q in 3-5 concise sentences:\n\n%s"

const tagsPromptFormat = `Generate 5-7 concise tags for the following document content.
Return ONLY the tags, separated by commas, with no numbering, explanations, or extra text.

Content:
%s`

// Summarize generates a short summary of the document content.
func (s *Service) Summarize(ctx context.Context, title, content string) (string, error) {
	if content == "" {
		return "", ErrContentRequired
	}
	summary, err := s.generator.Generate(ctx, fmt.Sprintf(summaryPromptFormat, title, content))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

// SuggestTags generates normalized tags for the document content.
func (s *Service) SuggestTags(ctx context.Context, content string) ([]string, error) {
	if content == "" {
		return nil, ErrContentRequired
	}
	raw, err := s.generator.Generate(ctx, fmt.Sprintf(tagsPromptFormat, content))
	if err != nil {
		return nil, err
	}
	return parseTags(raw), nil
}

// parseTags splits a model response into normalized tags. Models are
// inconsistent about separators, so commas, semicolons, and newlines all
// count.
func parseTags(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	return core.NormalizeTags(parts)
}

// enrichDocument populates summary, tags, and embedding for a stored
// document. Each enrichment step is independent: a failed step is logged
// and skipped, the rest still apply. Called from the worker pool after
// Create; errors never surface to the creating request.
func (s *Service) enrichDocument(ctx context.Context, id core.ID) error {
	doc, err := s.docs.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	logger := s.logger.With("document", id)

	var (
		summary   string
		tags      []string
		embedding []float32
		enriched  bool
	)

	if summary, err = s.Summarize(ctx, doc.Title, doc.Content); err != nil {
		logger.Error("error generating summary", "err", err)
		summary = ""
	} else {
		enriched = true
	}

	if tags, err = s.SuggestTags(ctx, doc.Content); err != nil {
		logger.Error("error generating tags", "err", err)
		tags = nil
	} else {
		enriched = true
	}

	if embedding, err = s.embedText(ctx, doc.Content, logger); err != nil {
		embedding = nil
	} else {
		enriched = true
	}

	if !enriched {
		return nil
	}

	// The model calls take long enough that a foreground edit may have
	// landed in the meantime. Merge onto a fresh read so its changes
	// survive, and only attach the embedding if it still describes the
	// stored content.
	fresh, err := s.docs.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if summary != "" {
		fresh.Summary = summary
	}
	if tags != nil {
		fresh.Tags = tags
	}
	if embedding != nil && fresh.Content == doc.Content {
		fresh.Embedding = embedding
	}

	_, err = s.docs.UpdateDocuments(ctx, fresh)
	return err
}

// embedText generates a content embedding and enforces the configured
// dimension.
func (s *Service) embedText(ctx context.Context, content string, logger *slog.Logger) ([]float32, error) {
	vector, err := s.embedder.EmbedText(ctx, content)
	if err != nil {
		logger.Error("error generating embedding", "err", err)
		return nil, err
	}
	if len(vector) != s.embeddingDim {
		err := fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(vector), s.embeddingDim)
		logger.Error("rejecting embedding", "err", err)
		return nil, err
	}
	return vector, nil
}

// reembedDocument regenerates only the embedding after a content edit.
func (s *Service) reembedDocument(ctx context.Context, id core.ID) error {
	doc, err := s.docs.GetDocument(ctx, id)
	if err != nil {
		return err
	}

	vector, err := s.embedText(ctx, doc.Content, s.logger.With("document", id))
	if err != nil {
		return err
	}

	fresh, err := s.docs.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if fresh.Content != doc.Content {
		// A newer edit queued its own re-embedding for the newer content.
		return nil
	}
	fresh.Embedding = vector

	_, err = s.docs.UpdateDocuments(ctx, fresh)
	return err
}
