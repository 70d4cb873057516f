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


package badger

import "github.com/kbforge/kbforge/storage"

// NewRepositories opens a BadgerDB database at path and creates the
// document, team, and user repositories over it.
// Caller must close all repos and the backend when done.
func NewRepositories(path string) (storage.DocumentRepository, storage.TeamRepository, storage.UserRepository, *Backend, error) {
	return newRepositories(path, false)
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must close all repos and the backend when done.
func NewMemoryRepositories() (storage.DocumentRepository, storage.TeamRepository, storage.UserRepository, *Backend, error) {
	return newRepositories("", true)
}

func newRepositories(path string, inMemory bool) (storage.DocumentRepository, storage.TeamRepository, storage.UserRepository, *Backend, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	docRepo, err := NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	teamRepo, err := NewTeamRepository(backend)
	if err != nil {
		docRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	userRepo, err := NewUserRepository(backend)
	if err != nil {
		teamRepo.Close()
		docRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	return docRepo, teamRepo, userRepo, backend, nil
}
