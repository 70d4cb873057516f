package storage

import (
	"testing"
	"time"

	"github.com/kbforge/kbforge/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalDocument(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		doc  *core.Document
	}{
		{
			name: "minimal document",
			doc: &core.Document{
				Id:            core.ID(1),
				Team:          core.ID(7),
				Title:         "Onboarding",
				Content:       "Welcome aboard.",
				CreatedBy:     core.ID(3),
				CreatedByRole: core.RoleUser,
				UpdatedBy:     core.ID(3),
				Versions: []core.Version{
					{Title: "Onboarding", Content: "Welcome aboard.", EditedBy: core.ID(3), EditedAt: now},
				},
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name: "document with enrichment and access overlay",
			doc: &core.Document{
				Id:            core.ID(2),
				Team:          core.ID(7),
				Title:         "Release process",
				Content:       "Tag, build, ship.",
				Summary:       "How releases are cut.",
				Tags:          []string{"release", "process"},
				Embedding:     []float32{0.1, -0.2, 0.3, 0.4},
				CreatedBy:     core.ID(3),
				CreatedByRole: core.RoleAdmin,
				UpdatedBy:     core.ID(4),
				Versions: []core.Version{
					{Title: "Release process", Content: "Tag and ship.", EditedBy: core.ID(3), EditedAt: now.Add(-time.Hour)},
					{Content: "Tag, build, ship.", EditedBy: core.ID(4), EditedAt: now},
				},
				Access: []core.AccessEntry{
					{User: core.ID(9), Level: core.AccessRead},
				},
				CreatedAt: now.Add(-time.Hour),
				UpdatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalDocument(tt.doc)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalDocument(data)
			require.NoError(t, err)
			assert.Equal(t, tt.doc, decoded)
		})
	}
}

func TestMarshalDocument_Nil(t *testing.T) {
	_, err := MarshalDocument(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestUnmarshalDocument_Truncated(t *testing.T) {
	doc := &core.Document{
		Id:            core.ID(5),
		Team:          core.ID(1),
		Title:         "Truncation target",
		Content:       "Some content that will be cut off.",
		CreatedBy:     core.ID(1),
		CreatedByRole: core.RoleUser,
		UpdatedBy:     core.ID(1),
		Versions:      []core.Version{{EditedBy: core.ID(1), EditedAt: time.Now().UTC()}},
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	data, err := MarshalDocument(doc)
	require.NoError(t, err)

	_, err = UnmarshalDocument(data[:len(data)/2])
	assert.Error(t, err)
}

func TestMarshalUnmarshalTeam(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	team := &core.Team{
		Id:   core.ID(7),
		Name: "Platform",
		Members: []core.Member{
			{User: core.ID(3), Role: core.RoleAdmin},
			{User: core.ID(4), Role: core.RoleUser},
		},
		Documents: []core.ID{1, 2},
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := MarshalTeam(team)
	require.NoError(t, err)

	decoded, err := UnmarshalTeam(data)
	require.NoError(t, err)
	assert.Equal(t, team, decoded)
}

func TestMarshalUnmarshalUser(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	user := &core.User{
		Id:        core.ID(3),
		Name:      "Ada",
		Email:     "ada@example.com",
		Avatar:    "https://example.com/a.png",
		Teams:     []core.ID{7},
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := MarshalUser(user)
	require.NoError(t, err)

	decoded, err := UnmarshalUser(data)
	require.NoError(t, err)
	assert.Equal(t, user, decoded)
}
