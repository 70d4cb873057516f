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


// Package search provides access-scoped hybrid retrieval over documents.
//
// Every request passes through three stages:
//
//   - Scope resolution: the requesting user is mapped to the set of teams
//     they belong to. That set filters everything downstream; a document
//     outside it is never scored, ranked, or surfaced.
//   - Matching: lexical mode scores documents by fuzzy token comparison
//     across title, tags, and content (one edit of tolerance per token);
//     semantic mode embeds the query and scores documents by cosine
//     similarity, delegating to a backend vector index when available and
//     falling back to a batched brute-force scan otherwise.
//   - Ranking: results are re-checked against the authorized scope and
//     creator/editor references are hydrated into display-ready records.
//     A failed identity lookup degrades one result's metadata rather than
//     dropping the result.
//
// Thresholds, result limits, and the embedding dimension are configurable
// via Config; an empty result set after thresholding is a valid outcome.
package search
