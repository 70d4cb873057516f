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


// Package storage provides the storage abstraction layer for kbforge.
//
// This package defines repository interfaces that decouple storage
// implementation from retrieval and lifecycle logic. It allows for
// different storage backends (BadgerDB, in-memory, etc.) to be used
// interchangeably.
//
// # Constructor Return Type Pattern
//
// This package follows a strict "return interface" pattern for all public
// constructors to enforce abstraction and enable multiple storage backend
// implementations:
//
//	docs, teams, users, err := badger.NewRepositories(path)
//
// Internal package constructors (newDocumentRepository, newBackend, etc.)
// may return concrete types since they're only used within the
// implementation package.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - DocumentRepository: Operations for documents and their team/recency indices
//   - TeamRepository: Operations for teams
//   - UserRepository: Operations for referenced identities
//   - VectorSearcher: Optional backend-assisted similarity search
//
// A DocumentRepository MAY additionally implement VectorSearcher; callers
// probe for the capability with a type assertion and fall back to scanning
// when it is absent.
//
// # Usage
//
// Create repositories backed by a shared database:
//
//	docs, teams, users, err := badger.NewRepositories("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer docs.Close()
//
// Use in tests with in-memory storage:
//
//	docs, teams, users, err := badger.NewMemoryRepositories()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support.
package storage
