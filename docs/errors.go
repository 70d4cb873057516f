package docs

import "errors"

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrTeamRepositoryRequired is returned when a team repository is not provided.
	ErrTeamRepositoryRequired = errors.New("team repository required")

	// ErrUserRepositoryRequired is returned when a user repository is not provided.
	ErrUserRepositoryRequired = errors.New("user repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrTeamRequired is returned when an operation is missing the owning team.
	ErrTeamRequired = errors.New("team required")

	// ErrUserRequired is returned when an operation is missing the acting user.
	ErrUserRequired = errors.New("user required")

	// ErrTitleRequired is returned when a document is created without a title.
	ErrTitleRequired = errors.New("title required")

	// ErrContentRequired is returned when a document is created without content.
	ErrContentRequired = errors.New("content required")

	// ErrNotMember is returned when the acting user does not belong to the
	// document's team.
	ErrNotMember = errors.New("user is not a member of this team")

	// ErrPermissionDenied is returned when the acting user is neither a team
	// admin nor the document's creator.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidAccessLevel is returned when a share request carries an
	// unknown access level.
	ErrInvalidAccessLevel = errors.New("invalid access level")

	// ErrNotShared is returned when revoking access the user does not have.
	ErrNotShared = errors.New("document not shared with user")
)
