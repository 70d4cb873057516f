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

import (
	"fmt"
	"strings"
)

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Team must be set
//   - Title and Content must not be empty
//   - CreatedByRole must be a valid role
//   - Embedding must be empty or exactly embeddingDim long
//   - Versions must contain at least the creation version
//
// NOT validated (populated by enrichment):
//   - Summary and Tags (can be empty until the enrichment worker runs)
//   - ID (0 is valid from database sequences)
func ValidateDocument(doc *Document, embeddingDim int) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Team == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingTeam)
	}

	if doc.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyTitle)
	}

	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	if err := ValidateRole(doc.CreatedByRole); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if len(doc.Embedding) != 0 && len(doc.Embedding) != embeddingDim {
		return fmt.Errorf("%w: %w: got %d, want 0 or %d",
			ErrInvalidDocument, ErrEmbeddingDimension, len(doc.Embedding), embeddingDim)
	}

	if len(doc.Versions) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrNoVersions)
	}

	return nil
}

// ValidateTeam validates a Team according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Membership must be unique per user
//   - Each member role must be valid
func ValidateTeam(team *Team) error {
	if team == nil {
		return fmt.Errorf("%w: team is nil", ErrInvalidTeam)
	}

	if team.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTeam, ErrEmptyTeamName)
	}

	seen := make(map[ID]bool, len(team.Members))
	for _, m := range team.Members {
		if seen[m.User] {
			return fmt.Errorf("%w: %w: user %d", ErrInvalidTeam, ErrDuplicateMember, m.User)
		}
		seen[m.User] = true
		if err := ValidateRole(m.Role); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTeam, err)
		}
	}

	return nil
}

// ValidateUser validates a User according to domain rules.
func ValidateUser(user *User) error {
	if user == nil {
		return fmt.Errorf("%w: user is nil", ErrInvalidUser)
	}

	if user.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUser, ErrEmptyUserName)
	}

	if user.Email == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUser, ErrEmptyEmail)
	}

	return nil
}

// ValidateRole validates that a Role has a valid value.
func ValidateRole(role Role) error {
	if role != RoleUser && role != RoleAdmin {
		return fmt.Errorf("%w: value %d", ErrInvalidRole, role)
	}
	return nil
}

// NormalizeTags lowercases, trims, and deduplicates tags while preserving
// their original order. Empty tags are dropped.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		cleaned := strings.ToLower(strings.TrimSpace(tag))
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		normalized = append(normalized, cleaned)
	}

	if len(normalized) == 0 {
		return nil
	}
	return normalized
}

// NormalizeEmail canonicalizes an email address for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
