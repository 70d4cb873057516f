package answer

import "errors"

var (
	// ErrQuestionRequired is returned when the question text is missing or blank.
	ErrQuestionRequired = errors.New("question required")

	// ErrUserRequired is returned when the requesting user is missing.
	ErrUserRequired = errors.New("user required")

	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrUserRepositoryRequired is returned when a user repository is not provided.
	ErrUserRepositoryRequired = errors.New("user repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
