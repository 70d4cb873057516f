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


package docs

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/kbforge/kbforge/ai"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// feedLimit is the number of documents in the activity feed.
const feedLimit = 5

// Service manages the document lifecycle: creation with membership
// checks, permissioned edits with version history, deletion with team
// cascade, and asynchronous AI enrichment through a worker pool.
type Service struct {
	docs         storage.DocumentRepository
	teams        storage.TeamRepository
	users        storage.UserRepository
	embedder     ai.Embedder
	generator    ai.Generator
	pool         *ants.Pool
	embeddingDim int
	logger       *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithPoolSize sets the worker pool size for enrichment tasks.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Service) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithEmbeddingDim sets the expected embedding dimension.
// Default is core.DefaultEmbeddingDim.
func WithEmbeddingDim(dim int) Option {
	return func(s *Service) error {
		if dim > 0 {
			s.embeddingDim = dim
		}
		return nil
	}
}

// NewService creates a document lifecycle service.
func NewService(
	docRepository storage.DocumentRepository,
	teamRepository storage.TeamRepository,
	userRepository storage.UserRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Service, error) {
	if docRepository == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if teamRepository == nil {
		return nil, ErrTeamRepositoryRequired
	}
	if userRepository == nil {
		return nil, ErrUserRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Service{
		docs:         docRepository,
		teams:        teamRepository,
		users:        userRepository,
		embedder:     provider.Embedder(),
		generator:    provider.Generator(),
		pool:         pool,
		embeddingDim: core.DefaultEmbeddingDim,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	return s, nil
}

// Create stores a new document and schedules its AI enrichment. The acting
// user must be a member of the owning team. The stored document carries a
// creation version snapshotting title and content; summary, tags, and
// embedding arrive asynchronously and their failures never fail creation.
func (s *Service) Create(ctx context.Context, teamID, userID core.ID, title, content string) (*core.Document, error) {
	if teamID == 0 {
		return nil, ErrTeamRequired
	}
	if userID == 0 {
		return nil, ErrUserRequired
	}
	if title == "" {
		return nil, ErrTitleRequired
	}
	if content == "" {
		return nil, ErrContentRequired
	}

	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	role, ok := team.MemberRole(userID)
	if !ok {
		return nil, ErrNotMember
	}

	doc := &core.Document{
		Team:          teamID,
		Title:         title,
		Content:       content,
		CreatedBy:     userID,
		CreatedByRole: role,
		UpdatedBy:     userID,
		Versions: []core.Version{{
			Title:    title,
			Content:  content,
			EditedBy: userID,
			EditedAt: time.Now().UTC(),
		}},
	}

	if err := core.ValidateDocument(doc, s.embeddingDim); err != nil {
		return nil, err
	}

	added, err := s.docs.AddDocuments(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc = added[0]

	team.Documents = append(team.Documents, doc.Id)
	if _, err := s.teams.UpdateTeams(ctx, team); err != nil {
		return nil, err
	}

	id := doc.Id
	s.pool.Submit(func() {
		switch err := s.enrichDocument(context.Background(), id); {
		case errors.Is(err, storage.ErrNotFound):
			// Deleted before enrichment finished.
			s.logger.Debug("document gone before enrichment", "document", id)
		case err != nil:
			s.logger.Error("error enriching document", "document", id, "err", err)
		}
	})

	return doc, nil
}

// EditRequest carries the fields of an edit. Empty fields are left
// unchanged; Tags nil means unchanged while an empty non-nil slice clears
// the tags.
type EditRequest struct {
	Title   string
	Content string
	Summary string
	Tags    []string
}

// Edit applies a permissioned edit to a document. Team admins, the
// document's creator, and users with a write grant in the access overlay
// may edit; other members get ErrPermissionDenied. Changed fields are
// snapshotted into an appended version, and a content change schedules
// embedding regeneration. A no-op edit still records the acting user as
// the last editor.
func (s *Service) Edit(ctx context.Context, docID, userID core.ID, req EditRequest) (*core.Document, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}

	doc, err := s.docs.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	team, err := s.teams.GetTeam(ctx, doc.Team)
	if err != nil {
		return nil, err
	}

	role, isMember := team.MemberRole(userID)
	switch {
	case isMember && (role == core.RoleAdmin || doc.CreatedBy == userID):
	case doc.GrantsAccess(userID, core.AccessWrite):
	case isMember:
		return nil, ErrPermissionDenied
	default:
		return nil, ErrNotMember
	}

	version := core.Version{EditedBy: userID, EditedAt: time.Now().UTC()}
	changed := false
	contentChanged := false

	if req.Title != "" && req.Title != doc.Title {
		doc.Title = req.Title
		version.Title = req.Title
		changed = true
	}
	if req.Summary != "" && req.Summary != doc.Summary {
		doc.Summary = req.Summary
		changed = true
	}
	if req.Tags != nil {
		tags := core.NormalizeTags(req.Tags)
		if !slices.Equal(tags, doc.Tags) {
			doc.Tags = tags
			changed = true
		}
	}
	if req.Content != "" && req.Content != doc.Content {
		doc.Content = req.Content
		version.Content = req.Content
		changed = true
		contentChanged = true
	}

	if changed {
		doc.Versions = append(doc.Versions, version)
	}
	doc.UpdatedBy = userID

	if contentChanged {
		// The old vector describes the old content. Drop it now so the
		// semantic matcher skips the document until re-embedding lands.
		doc.Embedding = nil
	}

	if err := core.ValidateDocument(doc, s.embeddingDim); err != nil {
		return nil, err
	}

	updated, err := s.docs.UpdateDocuments(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc = updated[0]

	if contentChanged {
		id := doc.Id
		s.pool.Submit(func() {
			switch err := s.reembedDocument(context.Background(), id); {
			case errors.Is(err, storage.ErrNotFound):
				s.logger.Debug("document gone before re-embedding", "document", id)
			case err != nil:
				s.logger.Error("error re-embedding document", "document", id, "err", err)
			}
		})
	}

	return doc, nil
}

// Delete removes a document. Team admins and the document's creator may
// delete. The document reference is removed from the owning team before
// the record itself goes away.
func (s *Service) Delete(ctx context.Context, docID, userID core.ID) error {
	if userID == 0 {
		return ErrUserRequired
	}

	doc, err := s.docs.GetDocument(ctx, docID)
	if err != nil {
		return err
	}

	team, err := s.teams.GetTeam(ctx, doc.Team)
	if err != nil {
		return err
	}

	role, ok := team.MemberRole(userID)
	if !ok {
		return ErrNotMember
	}
	if role != core.RoleAdmin && doc.CreatedBy != userID {
		return ErrPermissionDenied
	}

	if i := slices.Index(team.Documents, docID); i >= 0 {
		team.Documents = slices.Delete(team.Documents, i, i+1)
		if _, err := s.teams.UpdateTeams(ctx, team); err != nil {
			return err
		}
	}

	return s.docs.DeleteDocuments(ctx, docID)
}

// Share grants another user explicit access to a document through its
// access overlay, so the document becomes visible to them regardless of
// team membership. Only team admins and the document's creator may share.
// Sharing again with a different level replaces the existing grant.
func (s *Service) Share(ctx context.Context, docID, userID, granteeID core.ID, level core.AccessLevel) (*core.Document, error) {
	if userID == 0 || granteeID == 0 {
		return nil, ErrUserRequired
	}
	if level != core.AccessRead && level != core.AccessWrite {
		return nil, ErrInvalidAccessLevel
	}

	doc, err := s.docs.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := s.requireShareAuthority(ctx, doc, userID); err != nil {
		return nil, err
	}

	// The grantee must exist; a dangling grant would never be resolvable.
	if _, err := s.users.GetUser(ctx, granteeID); err != nil {
		return nil, err
	}

	replaced := false
	for i, entry := range doc.Access {
		if entry.User == granteeID {
			doc.Access[i].Level = level
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Access = append(doc.Access, core.AccessEntry{User: granteeID, Level: level})
	}
	doc.UpdatedBy = userID

	updated, err := s.docs.UpdateDocuments(ctx, doc)
	if err != nil {
		return nil, err
	}
	return updated[0], nil
}

// Unshare revokes a user's overlay grant on a document. Only team admins
// and the document's creator may revoke. Returns ErrNotShared when no
// grant exists for that user.
func (s *Service) Unshare(ctx context.Context, docID, userID, granteeID core.ID) (*core.Document, error) {
	if userID == 0 || granteeID == 0 {
		return nil, ErrUserRequired
	}

	doc, err := s.docs.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := s.requireShareAuthority(ctx, doc, userID); err != nil {
		return nil, err
	}

	i := slices.IndexFunc(doc.Access, func(entry core.AccessEntry) bool {
		return entry.User == granteeID
	})
	if i < 0 {
		return nil, ErrNotShared
	}
	doc.Access = slices.Delete(doc.Access, i, i+1)
	doc.UpdatedBy = userID

	updated, err := s.docs.UpdateDocuments(ctx, doc)
	if err != nil {
		return nil, err
	}
	return updated[0], nil
}

// requireShareAuthority checks that the user may manage the document's
// access overlay: team admin or document creator.
func (s *Service) requireShareAuthority(ctx context.Context, doc *core.Document, userID core.ID) error {
	team, err := s.teams.GetTeam(ctx, doc.Team)
	if err != nil {
		return err
	}
	role, ok := team.MemberRole(userID)
	if !ok {
		return ErrNotMember
	}
	if role != core.RoleAdmin && doc.CreatedBy != userID {
		return ErrPermissionDenied
	}
	return nil
}

// DocumentDetail is a document with hydrated provenance references.
// Reference fields may be nil when an identity lookup failed.
type DocumentDetail struct {
	Document  *core.Document
	CreatedBy *core.UserRef
	UpdatedBy *core.UserRef
	// VersionEditors is parallel to Document.Versions.
	VersionEditors []*core.UserRef
}

// Get retrieves a single document with hydrated provenance. A failed
// identity lookup degrades the references, not the document.
func (s *Service) Get(ctx context.Context, docID core.ID) (*DocumentDetail, error) {
	doc, err := s.docs.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}

	userSet := map[core.ID]bool{doc.CreatedBy: true, doc.UpdatedBy: true}
	for _, v := range doc.Versions {
		userSet[v.EditedBy] = true
	}
	userIDs := make([]core.ID, 0, len(userSet))
	for id := range userSet {
		userIDs = append(userIDs, id)
	}

	byID := make(map[core.ID]*core.User, len(userIDs))
	if users, err := s.users.GetUsers(ctx, userIDs...); err != nil {
		s.logger.Warn("provenance lookup failed", "document", docID, "err", err)
	} else {
		for _, u := range users {
			byID[u.Id] = u
		}
	}

	detail := &DocumentDetail{
		Document:       doc,
		CreatedBy:      byID[doc.CreatedBy].Ref(),
		UpdatedBy:      byID[doc.UpdatedBy].Ref(),
		VersionEditors: make([]*core.UserRef, len(doc.Versions)),
	}
	for i, v := range doc.Versions {
		detail.VersionEditors[i] = byID[v.EditedBy].Ref()
	}

	return detail, nil
}

// Activity is an activity feed entry: a recently updated document with
// its team name and last editor hydrated.
type Activity struct {
	Document  *core.Document
	TeamName  string
	UpdatedBy *core.UserRef
}

// ActivityFeed returns the most recently updated documents across all of
// the user's teams, newest first. Hydration failures degrade the entry's
// metadata, never the feed.
func (s *Service) ActivityFeed(ctx context.Context, userID core.ID) ([]*Activity, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}

	teamIDs, err := s.users.TeamsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(teamIDs) == 0 {
		return []*Activity{}, nil
	}

	recent, err := s.docs.RecentByTeams(ctx, teamIDs, feedLimit)
	if err != nil {
		return nil, err
	}

	teamNames := make(map[core.ID]string)
	if teams, err := s.teams.GetTeams(ctx, teamIDs...); err != nil {
		s.logger.Warn("team lookup failed", "err", err)
	} else {
		for _, team := range teams {
			teamNames[team.Id] = team.Name
		}
	}

	editorSet := make(map[core.ID]bool, len(recent))
	for _, doc := range recent {
		editorSet[doc.UpdatedBy] = true
	}
	editorIDs := make([]core.ID, 0, len(editorSet))
	for id := range editorSet {
		editorIDs = append(editorIDs, id)
	}

	byID := make(map[core.ID]*core.User, len(editorIDs))
	if users, err := s.users.GetUsers(ctx, editorIDs...); err != nil {
		s.logger.Warn("editor lookup failed", "err", err)
	} else {
		for _, u := range users {
			byID[u.Id] = u
		}
	}

	feed := make([]*Activity, len(recent))
	for i, doc := range recent {
		feed[i] = &Activity{
			Document:  doc,
			TeamName:  teamNames[doc.Team],
			UpdatedBy: byID[doc.UpdatedBy].Ref(),
		}
	}

	return feed, nil
}

// Release releases the enrichment worker pool.
// The service should not be used after calling Release.
func (s *Service) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
