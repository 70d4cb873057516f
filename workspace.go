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


package kbforge

import (
	"log/slog"

	"github.com/kbforge/kbforge/ai"
	"github.com/kbforge/kbforge/ai/openai"
	"github.com/kbforge/kbforge/answer"
	"github.com/kbforge/kbforge/docs"
	"github.com/kbforge/kbforge/search"
	"github.com/kbforge/kbforge/storage"
	"github.com/kbforge/kbforge/storage/badger"
	"github.com/kbforge/kbforge/teams"
)

// Workspace is the top-level handle: one storage backend, its
// repositories, and an AI provider, from which the retrieval and
// lifecycle services are constructed.
type Workspace struct {
	backend  *badger.Backend
	docRepo  storage.DocumentRepository
	teamRepo storage.TeamRepository
	userRepo storage.UserRepository
	provider ai.AIProvider
	logger   *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) WorkspaceOption {
	return func(o *workspaceOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithAIProvider supplies a pre-built AI provider instead of
// constructing the OpenAI-compatible one from config.
func WithAIProvider(provider ai.AIProvider) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.provider = provider
	}
}

// OpenWorkspace opens (or creates) a workspace at the given path.
func OpenWorkspace(filePath string, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	docRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	teamRepo, err := badger.NewTeamRepository(backend)
	if err != nil {
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	userRepo, err := badger.NewUserRepository(backend)
	if err != nil {
		teamRepo.Close()
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			userRepo.Close()
			teamRepo.Close()
			docRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Workspace{
		backend:  backend,
		docRepo:  docRepo,
		teamRepo: teamRepo,
		userRepo: userRepo,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider, repositories, and backend.
func (w *Workspace) Close() error {
	if err := w.provider.Close(); err != nil {
		w.logger.Error("error closing AI provider", "err", err)
	}

	if err := w.userRepo.Close(); err != nil {
		w.logger.Error("error closing user repository", "err", err)
		return err
	}
	if err := w.teamRepo.Close(); err != nil {
		w.logger.Error("error closing team repository", "err", err)
		return err
	}
	if err := w.docRepo.Close(); err != nil {
		w.logger.Error("error closing document repository", "err", err)
		return err
	}

	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (w *Workspace) DocumentRepository() storage.DocumentRepository {
	return w.docRepo
}

func (w *Workspace) TeamRepository() storage.TeamRepository {
	return w.teamRepo
}

func (w *Workspace) UserRepository() storage.UserRepository {
	return w.userRepo
}

func (w *Workspace) Provider() ai.AIProvider {
	return w.provider
}

func (w *Workspace) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(w.docRepo, w.userRepo, w.provider, opts...)
}

func (w *Workspace) NewAnswerer(opts ...answer.Option) (*answer.Answerer, error) {
	return answer.NewAnswerer(w.docRepo, w.userRepo, w.provider, opts...)
}

func (w *Workspace) NewDocumentService(opts ...docs.Option) (*docs.Service, error) {
	return docs.NewService(w.docRepo, w.teamRepo, w.userRepo, w.provider, opts...)
}

func (w *Workspace) NewTeamService(opts ...teams.Option) (*teams.Service, error) {
	return teams.NewService(w.teamRepo, w.userRepo, w.docRepo, opts...)
}
