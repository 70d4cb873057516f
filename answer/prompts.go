package answer

import (
	"fmt"
	"strings"

	"github.com/kbforge/kbforge/core"
)

// NotFoundPhrase is the fixed phrase the model is instructed to emit when
// the answer is not derivable from the supplied documents.
const NotFoundPhrase = "I couldn't find relevant information."

// FallbackAnswer is returned when the language model call fails.
const FallbackAnswer = "Sorry, I couldn't generate an answer at the moment."

// buildContext concatenates the documents into the textual context fed to
// the model: an ordinal label, title, and content per document, separated
// by blank lines.
func buildContext(docs []*core.Document) string {
	parts := make([]string, 0, len(docs))
	for i, doc := range docs {
		parts = append(parts, fmt.Sprintf("Document %d:\nTitle: %s\nContent: %s", i+1, doc.Title, doc.Content))
	}
	return strings.Join(parts, "\n\n")
}

// buildPrompt wraps the context and question with the grounding instruction.
func buildPrompt(context, question string) string {
	return fmt.Sprintf(
		"Answer the following question using ONLY the provided documents. If the documents don't contain the answer, say \"%s\"\n\nDocuments:\n%s\n\nQuestion: %s",
		NotFoundPhrase, context, question)
}
