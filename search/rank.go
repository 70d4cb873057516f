package search

import (
	"context"
	"log/slog"

	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// Ranker finalizes matcher output: it re-checks the authorized scope and
// hydrates creator, last-editor, and version-editor references into
// display-ready records.
type Ranker struct {
	users  storage.UserRepository
	logger *slog.Logger
}

// NewRanker creates a ranker over the given user repository.
func NewRanker(users storage.UserRepository) (*Ranker, error) {
	if users == nil {
		return nil, ErrUserRepositoryRequired
	}
	return &Ranker{
		users:  users,
		logger: slog.Default().With("component", "ranker"),
	}, nil
}

// Finalize filters results to the resolved scope and hydrates provenance.
// A failed identity lookup degrades that result's metadata instead of
// dropping the result or failing the batch.
func (r *Ranker) Finalize(ctx context.Context, results []*core.ScoredResult, scope *Scope) ([]*core.ScoredResult, error) {
	// Defense-in-depth: matchers already filter by scope, but an
	// out-of-scope document must never survive to the caller.
	kept := make([]*core.ScoredResult, 0, len(results))
	for _, res := range results {
		if res == nil || res.Document == nil {
			continue
		}
		if !scope.Allows(res.Document) {
			r.logger.Warn("dropping out-of-scope result", "document", res.Document.Id, "team", res.Document.Team)
			continue
		}
		kept = append(kept, res)
	}

	if len(kept) == 0 {
		return []*core.ScoredResult{}, nil
	}

	userSet := make(map[core.ID]bool)
	for _, res := range kept {
		userSet[res.Document.CreatedBy] = true
		userSet[res.Document.UpdatedBy] = true
		for _, v := range res.Document.Versions {
			userSet[v.EditedBy] = true
		}
	}

	userIDs := make([]core.ID, 0, len(userSet))
	for id := range userSet {
		userIDs = append(userIDs, id)
	}

	byID := make(map[core.ID]*core.User, len(userIDs))
	users, err := r.users.GetUsers(ctx, userIDs...)
	if err != nil {
		// Partial enrichment: results go out with empty provenance
		r.logger.Warn("provenance lookup failed", "err", err)
	} else {
		for _, u := range users {
			byID[u.Id] = u
		}
	}

	for _, res := range kept {
		res.CreatedBy = byID[res.Document.CreatedBy].Ref()
		res.UpdatedBy = byID[res.Document.UpdatedBy].Ref()
		res.VersionEditors = make([]*core.UserRef, len(res.Document.Versions))
		for i, v := range res.Document.Versions {
			res.VersionEditors[i] = byID[v.EditedBy].Ref()
		}
	}

	return kept, nil
}
