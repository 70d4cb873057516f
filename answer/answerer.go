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


package answer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kbforge/kbforge/ai"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
)

// Answerer produces grounded answers to free-text questions over a user's
// authorized corpus. The whole corpus is the context candidate set: the
// question is not necessarily lexically or semantically close to any single
// document, so no ranking or filtering happens before context assembly.
type Answerer struct {
	docs      storage.DocumentRepository
	users     storage.UserRepository
	generator ai.Generator
	logger    *slog.Logger
}

// Option configures an Answerer.
type Option func(*Answerer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Answerer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnswerer creates a new answerer.
func NewAnswerer(
	docs storage.DocumentRepository,
	users storage.UserRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Answerer, error) {
	if docs == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if users == nil {
		return nil, ErrUserRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	a := &Answerer{
		docs:      docs,
		users:     users,
		generator: provider.Generator(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Ask answers the question from the user's authorized documents only.
// Returns ErrQuestionRequired or ErrUserRequired on missing input, and
// storage.ErrNotFound for an unknown user. An empty authorized corpus
// yields an ungrounded empty answer without invoking the language model.
// A model failure yields a fixed fallback answer, never an error.
func (a *Answerer) Ask(ctx context.Context, question string, userID core.ID) (*core.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrQuestionRequired
	}
	if userID == 0 {
		return nil, ErrUserRequired
	}

	// Authorization first
	teamIDs, err := a.users.TeamsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	docs, err := a.docs.FindByTeams(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	// The overlay extends the corpus past team boundaries.
	granted, err := a.docs.FindGrantedToUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	teamSet := make(map[core.ID]bool, len(teamIDs))
	for _, id := range teamIDs {
		teamSet[id] = true
	}
	for _, doc := range granted {
		if !teamSet[doc.Team] && doc.GrantsAccess(userID, core.AccessRead) {
			docs = append(docs, doc)
		}
	}

	if len(docs) == 0 {
		// No context, no model call
		return &core.Answer{}, nil
	}

	prompt := buildPrompt(buildContext(docs), question)

	text, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		a.logger.Error("answer generation failed", "err", err)
		return &core.Answer{Answer: FallbackAnswer, Grounded: false}, nil
	}

	return &core.Answer{
		Answer:   text,
		Grounded: text != NotFoundPhrase,
	}, nil
}
