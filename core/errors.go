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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidTeam indicates a Team failed validation.
	ErrInvalidTeam = errors.New("invalid team")

	// ErrInvalidUser indicates a User failed validation.
	ErrInvalidUser = errors.New("invalid user")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrMissingTeam indicates a document has no owning team.
	ErrMissingTeam = errors.New("document must belong to a team")

	// ErrEmbeddingDimension indicates a stored embedding is neither empty
	// nor of the configured dimension.
	ErrEmbeddingDimension = errors.New("embedding must be empty or of the configured dimension")

	// ErrNoVersions indicates a created document carries no version history.
	ErrNoVersions = errors.New("document must have at least the creation version")

	// ErrInvalidRole indicates an invalid Role value.
	ErrInvalidRole = errors.New("invalid role")

	// ErrDuplicateMember indicates a team lists the same user twice.
	ErrDuplicateMember = errors.New("duplicate team member")

	// ErrEmptyTeamName indicates the team Name field is empty.
	ErrEmptyTeamName = errors.New("team name cannot be empty")

	// ErrEmptyUserName indicates the user Name field is empty.
	ErrEmptyUserName = errors.New("user name cannot be empty")

	// ErrEmptyEmail indicates the user Email field is empty.
	ErrEmptyEmail = errors.New("user email cannot be empty")
)
