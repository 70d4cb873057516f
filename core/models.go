package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DefaultEmbeddingDim is the embedding dimension produced by the default
// embedding model. Stored embeddings must be empty or exactly the
// dimension configured at provider setup.
const DefaultEmbeddingDim = 768

// Role identifies a member's authority within a team.
type Role int

const (
	// RoleUser is a regular team member.
	RoleUser Role = iota + 1
	// RoleAdmin may edit and delete documents created by others.
	RoleAdmin
)

// String returns the wire representation of the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	default:
		return "user"
	}
}

// ParseRole converts a wire representation back into a Role.
// Unknown values map to RoleUser.
func ParseRole(s string) Role {
	if s == "admin" {
		return RoleAdmin
	}
	return RoleUser
}

// AccessLevel is the permission granted by a per-user access overlay entry.
type AccessLevel int

const (
	// AccessRead grants read-only visibility of a document.
	AccessRead AccessLevel = iota + 1
	// AccessWrite grants edit authority in addition to read.
	AccessWrite
)

// String returns the wire representation of the access level.
func (l AccessLevel) String() string {
	switch l {
	case AccessWrite:
		return "write"
	default:
		return "read"
	}
}

// Member is a team membership with the member's role in that team.
type Member struct {
	User ID
	Role Role
}

// AccessEntry grants a single user explicit access to a document,
// layered on top of team-based access.
type AccessEntry struct {
	User  ID
	Level AccessLevel
}

// Version is an append-only snapshot of a document edit. It captures the
// values of the fields that changed in that edit; unchanged fields are
// left empty. The creation version captures both title and content.
type Version struct {
	Title    string
	Content  string
	EditedBy ID
	EditedAt time.Time
}

// Document is a unit of retrievable content owned by exactly one team.
type Document struct {
	Id            ID
	Team          ID // immutable after creation
	Title         string
	Content       string
	Summary       string
	Tags          []string  // lowercase, deduplicated at write time
	Embedding     []float32 // empty until generated, then exactly the model dimension
	CreatedBy     ID
	CreatedByRole Role
	UpdatedBy     ID
	Versions      []Version // never empty once created
	Access        []AccessEntry
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasEmbedding reports whether the document carries a usable embedding of
// the given dimension. Documents without one are skipped by the semantic
// matcher, never treated as zero-similarity matches.
func (d *Document) HasEmbedding(dim int) bool {
	return len(d.Embedding) == dim
}

// GrantsAccess reports whether the document's access overlay grants the
// user at least the given level.
func (d *Document) GrantsAccess(user ID, level AccessLevel) bool {
	for _, entry := range d.Access {
		if entry.User == user && entry.Level >= level {
			return true
		}
	}
	return false
}

// Team is an access-control scope owning zero or more documents.
type Team struct {
	Id        ID
	Name      string
	Members   []Member
	Documents []ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MemberRole returns the role of the given user in the team.
// The second return value is false if the user is not a member.
func (t *Team) MemberRole(user ID) (Role, bool) {
	for _, m := range t.Members {
		if m.User == user {
			return m.Role, true
		}
	}
	return 0, false
}

// HasMember reports whether the user belongs to the team.
func (t *Team) HasMember(user ID) bool {
	_, ok := t.MemberRole(user)
	return ok
}

// User is a referenced identity. The retrieval core only needs the set of
// teams a user belongs to; profile fields exist for provenance hydration.
type User struct {
	Id        ID
	Name      string
	Email     string
	Avatar    string
	Teams     []ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref returns the display-ready reference used in hydrated results.
func (u *User) Ref() *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{Id: u.Id, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

// UserRef is a display-ready identity reference (name/email/avatar).
type UserRef struct {
	Id     ID
	Name   string
	Email  string
	Avatar string
}

// ScoredResult is a search hit with its mode-specific relevance score and
// hydrated provenance. Provenance fields may be nil when an identity
// lookup failed; the result itself is still returned.
type ScoredResult struct {
	Document *Document
	Score    float32
	CreatedBy *UserRef
	UpdatedBy *UserRef
	// VersionEditors is parallel to Document.Versions.
	VersionEditors []*UserRef
}

// SimilarityMatch is a document match from vector similarity search.
type SimilarityMatch struct {
	Document *Document
	Score    float32
}

// Answer is the result of a retrieval-augmented question. Grounded is
// false when the answer is the fixed fallback rather than derived from
// the authorized corpus.
type Answer struct {
	Answer   string
	Grounded bool
}
