package search

import (
	"context"
	"log/slog"

	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// ScopeResolver maps a requesting user to the set of teams they may read.
// The resolved set is the mandatory filter for every later stage: no
// document outside it is ever scored, ranked, or surfaced.
type ScopeResolver struct {
	users  storage.UserRepository
	logger *slog.Logger
}

// NewScopeResolver creates a scope resolver over the given user repository.
func NewScopeResolver(users storage.UserRepository) (*ScopeResolver, error) {
	if users == nil {
		return nil, ErrUserRepositoryRequired
	}
	return &ScopeResolver{
		users:  users,
		logger: slog.Default().With("component", "scope-resolver"),
	}, nil
}

// Scope is a resolved access scope: the requesting user and the teams they
// belong to. A document passes the scope when its team is in the set or
// its access overlay grants the user at least read access.
type Scope struct {
	UserID  core.ID
	TeamIDs []core.ID

	teamSet map[core.ID]bool
}

// NewScope builds a scope for the given user and team set.
func NewScope(userID core.ID, teamIDs []core.ID) *Scope {
	set := make(map[core.ID]bool, len(teamIDs))
	for _, id := range teamIDs {
		set[id] = true
	}
	return &Scope{UserID: userID, TeamIDs: teamIDs, teamSet: set}
}

// Allows reports whether the scope authorizes reading the document.
func (s *Scope) Allows(doc *core.Document) bool {
	if doc == nil {
		return false
	}
	return s.teamSet[doc.Team] || doc.GrantsAccess(s.UserID, core.AccessRead)
}

// grantedDocuments fetches the scope's overlay-granted documents that the
// team scans do not already cover. Grants inside the scope's own teams are
// dropped as duplicates.
func grantedDocuments(ctx context.Context, docs storage.DocumentRepository, scope *Scope) ([]*core.Document, error) {
	granted, err := docs.FindGrantedToUser(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}

	kept := make([]*core.Document, 0, len(granted))
	for _, doc := range granted {
		if scope.teamSet[doc.Team] {
			continue
		}
		if !doc.GrantsAccess(scope.UserID, core.AccessRead) {
			continue
		}
		kept = append(kept, doc)
	}
	return kept, nil
}

// Resolve maps the user to their access scope.
// Returns storage.ErrNotFound for an unknown user.
func (r *ScopeResolver) Resolve(ctx context.Context, userID core.ID) (*Scope, error) {
	teams, err := r.users.TeamsForUser(ctx, userID)
	if err != nil {
		r.logger.Debug("scope resolution failed", "user", userID, "err", err)
		return nil, err
	}
	return NewScope(userID, teams), nil
}
