package storage

import (
	"context"

	"github.com/kbforge/kbforge/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// VectorSearcher is an optional capability of a document repository. A
// backend that maintains (or can emulate) a vector index implements it;
// the search layer falls back to a brute-force scan otherwise.
type VectorSearcher interface {
	// FindSimilar returns documents from the given teams whose embeddings
	// have cosine similarity >= minSimilarity with the query vector, up to
	// limit results, ordered by similarity descending. Documents without a
	// usable embedding are skipped.
	FindSimilar(ctx context.Context, teamIDs []core.ID, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarityMatch, error)
}

// DocumentRepository provides operations for managing documents.
type DocumentRepository interface {
	Repository

	// AddDocuments adds one or more documents to storage.
	// For documents with ID=0, generates new IDs from sequence.
	// Sets CreatedAt/UpdatedAt timestamps.
	// Returns the documents with generated IDs and timestamps populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// UpdateDocuments updates existing documents.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any document doesn't exist.
	UpdateDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// DeleteDocuments removes documents by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, ids ...core.ID) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// FindByTeams retrieves all documents owned by any of the given teams.
	FindByTeams(ctx context.Context, teamIDs []core.ID) ([]*core.Document, error)

	// ScanByTeams streams documents owned by any of the given teams to fn
	// in batches of at most batchSize. Iteration stops on the first error
	// from fn. A large team never requires holding every document in
	// memory at once.
	ScanByTeams(ctx context.Context, teamIDs []core.ID, batchSize int, fn func([]*core.Document) error) error

	// RecentByTeams retrieves the most recently updated documents owned by
	// any of the given teams, newest first, up to limit results.
	RecentByTeams(ctx context.Context, teamIDs []core.ID, limit int) ([]*core.Document, error)

	// FindGrantedToUser retrieves documents whose access overlay names the
	// user, regardless of team ownership.
	FindGrantedToUser(ctx context.Context, userID core.ID) ([]*core.Document, error)

	// ScanAll streams every stored document to fn in batches of at most
	// batchSize, regardless of team. Maintenance path; query paths go
	// through the team-scoped scans.
	ScanAll(ctx context.Context, batchSize int, fn func([]*core.Document) error) error
}

// TeamRepository provides operations for managing teams.
type TeamRepository interface {
	Repository

	// AddTeams adds one or more teams to storage.
	// For teams with ID=0, generates new IDs from sequence.
	// Returns the teams with generated IDs and timestamps populated.
	AddTeams(ctx context.Context, teams ...*core.Team) ([]*core.Team, error)

	// UpdateTeams updates existing teams.
	// Returns ErrNotFound if any team doesn't exist.
	UpdateTeams(ctx context.Context, teams ...*core.Team) ([]*core.Team, error)

	// DeleteTeams removes teams by their IDs.
	// Returns ErrNotFound if any team doesn't exist.
	DeleteTeams(ctx context.Context, ids ...core.ID) error

	// GetTeam retrieves a single team by ID.
	// Returns ErrNotFound if the team doesn't exist.
	GetTeam(ctx context.Context, id core.ID) (*core.Team, error)

	// GetTeams retrieves multiple teams by their IDs.
	// Returns only the teams that exist (no error for missing teams).
	GetTeams(ctx context.Context, ids ...core.ID) ([]*core.Team, error)
}

// UserRepository provides operations for managing referenced identities.
type UserRepository interface {
	Repository

	// AddUsers adds one or more users to storage.
	// For users with ID=0, generates new IDs from sequence.
	// Emails are unique; returns ErrDuplicateKey on a conflict.
	AddUsers(ctx context.Context, users ...*core.User) ([]*core.User, error)

	// UpdateUsers updates existing users.
	// Returns ErrNotFound if any user doesn't exist.
	UpdateUsers(ctx context.Context, users ...*core.User) ([]*core.User, error)

	// GetUser retrieves a single user by ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetUser(ctx context.Context, id core.ID) (*core.User, error)

	// GetUsers retrieves multiple users by their IDs.
	// Returns only the users that exist (no error for missing users).
	GetUsers(ctx context.Context, ids ...core.ID) ([]*core.User, error)

	// FindByEmail retrieves a user by normalized email address.
	// Returns ErrNotFound if no user has that email.
	FindByEmail(ctx context.Context, email string) (*core.User, error)

	// TeamsForUser returns the IDs of the teams the user belongs to.
	// Returns ErrNotFound if the user doesn't exist. This is the access
	// scope resolution primitive: everything downstream is filtered by
	// the returned set.
	TeamsForUser(ctx context.Context, id core.ID) ([]core.ID, error)
}
