package docs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbforge/kbforge/ai/mock"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/storage"
	"github.com/kbforge/kbforge/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 4

type testEnv struct {
	service   *Service
	docs      storage.DocumentRepository
	teams     storage.TeamRepository
	users     storage.UserRepository
	embedder  *mock.MockEmbedder
	generator *mock.MockGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	docRepo, teamRepo, userRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		userRepo.Close()
		teamRepo.Close()
		docRepo.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	embedder.Dim = testDim
	generator := mock.NewMockGenerator()

	service, err := NewService(docRepo, teamRepo, userRepo,
		mock.NewMockProviderWithServices(embedder, generator),
		WithEmbeddingDim(testDim), WithPoolSize(1))
	require.NoError(t, err)
	t.Cleanup(service.Release)

	return &testEnv{
		service:   service,
		docs:      docRepo,
		teams:     teamRepo,
		users:     userRepo,
		embedder:  embedder,
		generator: generator,
	}
}

func (env *testEnv) seedUser(t *testing.T, name, email string) *core.User {
	t.Helper()
	added, err := env.users.AddUsers(context.Background(), &core.User{Name: name, Email: email})
	require.NoError(t, err)
	return added[0]
}

func (env *testEnv) seedTeam(t *testing.T, name string, members ...core.Member) *core.Team {
	t.Helper()
	added, err := env.teams.AddTeams(context.Background(), &core.Team{Name: name, Members: members})
	require.NoError(t, err)
	team := added[0]
	for _, m := range members {
		user, err := env.users.GetUser(context.Background(), m.User)
		require.NoError(t, err)
		user.Teams = append(user.Teams, team.Id)
		_, err = env.users.UpdateUsers(context.Background(), user)
		require.NoError(t, err)
	}
	return team
}

func TestNewService(t *testing.T) {
	env := newTestEnv(t)
	provider := mock.NewMockProvider()

	t.Run("nil document repository", func(t *testing.T) {
		_, err := NewService(nil, env.teams, env.users, provider)
		assert.Equal(t, ErrDocumentRepositoryRequired, err)
	})

	t.Run("nil team repository", func(t *testing.T) {
		_, err := NewService(env.docs, nil, env.users, provider)
		assert.Equal(t, ErrTeamRepositoryRequired, err)
	})

	t.Run("nil user repository", func(t *testing.T) {
		_, err := NewService(env.docs, env.teams, nil, provider)
		assert.Equal(t, ErrUserRepositoryRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewService(env.docs, env.teams, env.users, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestCreate_InputValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.service.Create(ctx, 0, 1, "Title", "Content")
	assert.Equal(t, ErrTeamRequired, err)

	_, err = env.service.Create(ctx, 1, 0, "Title", "Content")
	assert.Equal(t, ErrUserRequired, err)

	_, err = env.service.Create(ctx, 1, 1, "", "Content")
	assert.Equal(t, ErrTitleRequired, err)

	_, err = env.service.Create(ctx, 1, 1, "Title", "")
	assert.Equal(t, ErrContentRequired, err)
}

func TestCreate_MembershipRequired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, "Alice", "alice@example.com")
	outsider := env.seedUser(t, "Bob", "bob@example.com")
	team := env.seedTeam(t, "Platform", core.Member{User: owner.Id, Role: core.RoleAdmin})

	_, err := env.service.Create(ctx, team.Id, outsider.Id, "Title", "Content")
	assert.ErrorIs(t, err, ErrNotMember)

	_, err = env.service.Create(ctx, 99999, owner.Id, "Title", "Content")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCreate_StoresDocumentAndCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, "Alice", "alice@example.com")
	team := env.seedTeam(t, "Platform", core.Member{User: owner.Id, Role: core.RoleAdmin})

	doc, err := env.service.Create(ctx, team.Id, owner.Id, "Release Notes", "The release ships on Friday.")
	require.NoError(t, err)
	require.NotZero(t, doc.Id)

	assert.Equal(t, owner.Id, doc.CreatedBy)
	assert.Equal(t, core.RoleAdmin, doc.CreatedByRole)
	assert.Equal(t, owner.Id, doc.UpdatedBy)
	require.Len(t, doc.Versions, 1)
	assert.Equal(t, "Release Notes", doc.Versions[0].Title)
	assert.Equal(t, "The release ships on Friday.", doc.Versions[0].Content)
	assert.Equal(t, owner.Id, doc.Versions[0].EditedBy)

	updatedTeam, err := env.teams.GetTeam(ctx, team.Id)
	require.NoError(t, err)
	assert.Contains(t, updatedTeam.Documents, doc.Id)
}

func TestCreate_AsyncEnrichment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "Summarize") {
			return "A concise summary.", nil
		}
		return "go, releases; process\nplanning", nil
	}

	owner := env.seedUser(t, "Alice", "alice@example.com")
	team := env.seedTeam(t, "Platform", core.Member{User: owner.Id, Role: core.RoleAdmin})

	doc, err := env.service.Create(ctx, team.Id, owner.Id, "Release Notes", "The release ships on Friday.")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		stored, err := env.docs.GetDocument(ctx, doc.Id)
		return err == nil && stored.Summary != "" && len(stored.Embedding) == testDim
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := env.docs.GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, "A concise summary.", stored.Summary)
	assert.Equal(t, []string{"go", "releases", "process", "planning"}, stored.Tags)
}

func TestCreate_EnrichmentFailureDoesNotFailCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("model offline")
	}
	env.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("model offline")
	}

	owner := env.seedUser(t, "Alice", "alice@example.com")
	team := env.seedTeam(t, "Platform", core.Member{User: owner.Id, Role: core.RoleAdmin})

	doc, err := env.service.Create(ctx, team.Id, owner.Id, "Release Notes", "Content.")
	require.NoError(t, err)
	require.NotZero(t, doc.Id)

	time.Sleep(100 * time.Millisecond)

	stored, err := env.docs.GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Empty(t, stored.Summary)
	assert.Empty(t, stored.Tags)
	assert.Empty(t, stored.Embedding)
}

func TestEdit_Permissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "Alice", "alice@example.com")
	author := env.seedUser(t, "Bob", "bob@example.com")
	reader := env.seedUser(t, "Carol", "carol@example.com")
	outsider := env.seedUser(t, "Dave", "dave@example.com")
	team := env.seedTeam(t, "Platform",
		core.Member{User: admin.Id, Role: core.RoleAdmin},
		core.Member{User: author.Id, Role: core.RoleUser},
		core.Member{User: reader.Id, Role: core.RoleUser},
	)

	doc, err := env.service.Create(ctx, team.Id, author.Id, "Draft", "Original content.")
	require.NoError(t, err)

	t.Run("creator may edit", func(t *testing.T) {
		_, err := env.service.Edit(ctx, doc.Id, author.Id, EditRequest{Title: "Draft v2"})
		assert.NoError(t, err)
	})

	t.Run("admin may edit", func(t *testing.T) {
		_, err := env.service.Edit(ctx, doc.Id, admin.Id, EditRequest{Title: "Draft v3"})
		assert.NoError(t, err)
	})

	t.Run("regular member may not edit", func(t *testing.T) {
		_, err := env.service.Edit(ctx, doc.Id, reader.Id, EditRequest{Title: "Hijack"})
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("outsider is not a member", func(t *testing.T) {
		_, err := env.service.Edit(ctx, doc.Id, outsider.Id, EditRequest{Title: "Hijack"})
		assert.ErrorIs(t, err, ErrNotMember)
	})
}

func TestEdit_WriteGrant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, "Alice", "alice@example.com")
	outsider := env.seedUser(t, "Dave", "dave@example.com")
	team := env.seedTeam(t, "Platform", core.Member{User: owner.Id, Role: core.RoleAdmin})

	doc, err := env.service.Create(ctx, team.Id, owner.Id, "Draft", "Original content.")
	require.NoError(t, err)

	t.Run("read grant does not allow editing", func(t *testing.T) {
		_, err := env.service.Share(ctx, doc.Id, owner.Id, outsider.Id, core.AccessRead)
		require.NoError(t, err)
		_, err = env.service.Edit(ctx, doc.Id, outsider.Id, EditRequest{Title: "Hijack"})
		assert.ErrorIs(t, err, ErrNotMember)
	})

	t.Run("write grant allows a non-member to edit", func(t *testing.T) {
		_, err := env.service.Share(ctx, doc.Id, owner.Id, outsider.Id, core.AccessWrite)
		require.NoError(t, err)
		updated, err := env.service.Edit(ctx, doc.Id, outsider.Id, EditRequest{Title: "Guest edit"})
		require.NoError(t, err)
		assert.Equal(t, "Guest edit", updated.Title)
		assert.Equal(t, outsider.Id, updated.UpdatedBy)
	})

	t.Run("revoked grant blocks editing again", func(t *testing.T) {
		_, err := env.service.Unshare(ctx, doc.Id, owner.Id, outsider.Id)
		require.NoError(t, err)
		_, err = env.service.Edit(ctx, doc.Id, outsider.Id, EditRequest{Title: "Hijack"})
		assert.ErrorIs(t, err, ErrNotMember)
	})
}

func TestShare_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, "Alice", "alice@example.com")
	grantee := env.seedUser(t, "Grace", "grace@example.com")
	team := env.seedTeam(t, "Platform", core.Member{User: owner.Id, Role: core.RoleAdmin})

	doc, err := env.service.Create(ctx, team.Id, owner.Id, "Handbook", "Content.")
	require.NoError(t, err)

	shared, err := env.service.Share(ctx, doc.Id, owner.Id, grantee.Id, core.AccessRead)
	require.NoError(t, err)
	require.Len(t, shared.Access, 1)
	assert.Equal(t, grantee.Id, shared.Access[0].User)
	assert.Equal(t, core.AccessRead, shared.Access[0].Level)

	// Sharing again replaces the level instead of stacking entries.
	shared, err = env.service.Share(ctx, doc.Id, owner.Id, grantee.Id, core.AccessWrite)
	require.NoError(t, err)
	require.Len(t, shared.Access, 1)
	assert.Equal(t, core.AccessWrite, shared.Access[0].Level)

	revoked, err := env.service.Unshare(ctx, doc.Id, owner.Id, grantee.Id)
	require.NoError(t, err)
	assert.Empty(t, revoked.Access)

	_, err = env.service.Unshare(ctx, doc.Id, owner.Id, grantee.Id)
	assert.ErrorIs(t, err, ErrNotShared)
}

func TestShare_Permissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.seedUser(t, "Alice", "alice@example.com")
	member := env.seedUser(t, "Bob", "bob@example.com")
	outsider := env.seedUser(t, "Dave", "dave@example.com")
	team := env.seedTeam(t, "Platform",
		core.Member{User: admin.Id, Role: core.RoleAdmin},
		core.Member{User: member.Id, Role: core.RoleUser},
	)

	doc, err := env.service.Create(ctx, team.Id, admin.Id, "Handbook", "Content.")
	require.NoError(t, err)

	t.Run("zero user or grantee", func(t *testing.T) {
		_, err := env.service.Share(ctx, doc.Id, 0, outsider.Id, core.AccessRead)
		assert.ErrorIs(t, err, ErrUserRequired)
		_, err = env.service.Share(ctx, doc.Id, admin.Id, 0, core.AccessRead)
		assert.ErrorIs(t, err, ErrUserRequired)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := env.service.Share(ctx, doc.Id, admin.Id, outsider.Id, core.AccessLevel(0))
		assert.ErrorIs(t, err, ErrInvalidAccessLevel)
	})

	t.Run("unknown grantee", func(t *testing.T) {
		_, err := env.service.Share(ctx, doc.Id, admin.Id, core.ID(424242), core.AccessRead)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("regular member may not share another's document", func(t *testing.T) {
		_, err := env.service.Share(ctx, doc.Id, member.Id, outsider.Id, core.AccessRead)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("outsider may not share", func(t *testing.T) {
		_, err := env.service.Share(ctx, doc.Id, outsider.Id, member.Id, core.AccessRead)
		assert.ErrorIs(t, err, ErrNotMember)
	})
}

func TestEdit_ChangeDetectionAndVersions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, "Alice", "alice@example.com")
	team := env.seedTeam(t, "Platform", core.Member{User: owner.Id, Role: core.RoleAdmin})

	doc, err := env.service.Create(ctx, team.Id, owner.Id, "Draft", "Original content.")
	require.NoError(t, err)

	t.Run("no-op edit appends no version", func(t *testing.T) {
		updated, err := env.service.Edit(ctx, doc.Id, owner.Id, EditRequest{Title: "Draft"})
		require.NoError(t, err)
		assert.Len(t, updated.Versions, 1)
	})

	t.Run("title change snapshots only the title", func(t *testing.T) {
		updated, err := env.service.Edit(ctx, doc.Id, owner.Id, EditRequest{Title: "Draft v2"})
		require.NoError(t, err)
		require.Len(t, updated.Versions, 2)
		v := updated.Versions[1]
		assert.Equal(t, "Draft v2", v.Title)
		assert.Empty(t, v.Content)
		assert.Equal(t, owner.Id, v.EditedBy)
	})

	t.Run("content change snapshots only the content", func(t *testing.T) {
		updated, err := env.service.Edit(ctx, doc.Id, owner.Id, EditRequest{Content: "Revised content."})
		require.NoError(t, err)
		require.Len(t, updated.Versions, 3)
		v := updated.Versions[2]
		assert.Empty(t, v.Title)
		assert.Equal(t, "Revised content.", v.Content)
	})

	t.Run("tags are normalized before comparison", func(t *testing.T) {
		updated, err := env.service.Edit(ctx, doc.Id, owner.Id, EditRequest{Tags: []string{" Go ", "go", "Releases"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "releases"}, updated.Tags)
	})
}

func TestEdit_ContentChangeDropsStaleEmbedding(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, "Alice", "alice@example.com")
	team := env.seedTeam(t, "Platform", core.Member{User: owner.Id, Role: core.RoleAdmin})

	doc, err := env.service.Create(ctx, team.Id, owner.Id, "Draft", "Original content.")
	require.NoError(t, err)

	// Wait for the creation enrichment to land an embedding.
	require.Eventually(t, func() bool {
		stored, err := env.docs.GetDocument(ctx, doc.Id)
		return err == nil && len(stored.Embedding) == testDim
	}, 2*time.Second, 10*time.Millisecond)

	// Block re-embedding so the intermediate state is observable.
	env.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedder offline")
	}

	updated, err := env.service.Edit(ctx, doc.Id, owner.Id, EditRequest{Content: "Revised content."})
	require.NoError(t, err)
	assert.Empty(t, updated.Embedding)

	// Restore the embedder; the pool retries on the next edit.
	env.embedder.EmbedTextFunc = nil
	_, err = env.service.Edit(ctx, doc.Id, owner.Id, EditRequest{Content: "Revised again."})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		stored, err := env.docs.GetDocument(ctx, doc.Id)
		return err == nil && len(stored.Embedding) == testDim
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDelete_DuringPendingEnrichment(t *testing.T) {
	// A delete that lands while the creation enrichment is still calling
	// the model must succeed, and the enrichment must not resurrect the
	// document when it finishes.
	env := newTestEnv(t)
	ctx := context.Background()

	release := make(chan struct{})
	env.generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		<-release
		return "A concise summary.", nil
	}

	owner := env.seedUser(t, "Alice", "alice@example.com")
	team := env.seedTeam(t, "Platform", core.Member{User: owner.Id, Role: core.RoleAdmin})

	doc, err := env.service.Create(ctx, team.Id, owner.Id, "Short lived", "Content.")
	require.NoError(t, err)

	require.NoError(t, env.service.Delete(ctx, doc.Id, owner.Id))
	close(release)

	time.Sleep(100 * time.Millisecond)
	_, err = env.docs.GetDocument(ctx, doc.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEdit_SurvivesPendingEnrichment(t *testing.T) {
	// A foreground edit that lands between enrichment's read and write
	// must not be clobbered when the enrichment result is stored.
	env := newTestEnv(t)
	ctx := context.Background()

	release := make(chan struct{})
	env.generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		<-release
		if strings.Contains(prompt, "Summarize") {
			return "A concise summary.", nil
		}
		return "go, releases", nil
	}

	owner := env.seedUser(t, "Alice", "alice@example.com")
	team := env.seedTeam(t, "Platform", core.Member{User: owner.Id, Role: core.RoleAdmin})

	doc, err := env.service.Create(ctx, team.Id, owner.Id, "Draft", "Content.")
	require.NoError(t, err)

	_, err = env.service.Edit(ctx, doc.Id, owner.Id, EditRequest{Title: "Renamed"})
	require.NoError(t, err)
	close(release)

	require.Eventually(t, func() bool {
		stored, err := env.docs.GetDocument(ctx, doc.Id)
		return err == nil && stored.Summary != ""
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := env.docs.GetDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, "A concise summary.", stored.Summary)
	require.Len(t, stored.Versions, 2)
}

func TestDelete_CascadesTeamReference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, "Alice", "alice@example.com")
	member := env.seedUser(t, "Bob", "bob@example.com")
	team := env.seedTeam(t, "Platform",
		core.Member{User: owner.Id, Role: core.RoleAdmin},
		core.Member{User: member.Id, Role: core.RoleUser},
	)

	doc, err := env.service.Create(ctx, team.Id, owner.Id, "Draft", "Content.")
	require.NoError(t, err)

	t.Run("regular member may not delete another's document", func(t *testing.T) {
		err := env.service.Delete(ctx, doc.Id, member.Id)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("admin delete removes record and team reference", func(t *testing.T) {
		require.NoError(t, env.service.Delete(ctx, doc.Id, owner.Id))

		_, err := env.docs.GetDocument(ctx, doc.Id)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		updatedTeam, err := env.teams.GetTeam(ctx, team.Id)
		require.NoError(t, err)
		assert.NotContains(t, updatedTeam.Documents, doc.Id)
	})

	t.Run("deleting a missing document", func(t *testing.T) {
		err := env.service.Delete(ctx, doc.Id, owner.Id)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestGet_HydratesProvenance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.seedUser(t, "Alice", "alice@example.com")
	editor := env.seedUser(t, "Bob", "bob@example.com")
	team := env.seedTeam(t, "Platform",
		core.Member{User: author.Id, Role: core.RoleUser},
		core.Member{User: editor.Id, Role: core.RoleAdmin},
	)

	doc, err := env.service.Create(ctx, team.Id, author.Id, "Draft", "Content.")
	require.NoError(t, err)
	_, err = env.service.Edit(ctx, doc.Id, editor.Id, EditRequest{Title: "Draft v2"})
	require.NoError(t, err)

	detail, err := env.service.Get(ctx, doc.Id)
	require.NoError(t, err)

	require.NotNil(t, detail.CreatedBy)
	assert.Equal(t, "Alice", detail.CreatedBy.Name)
	require.NotNil(t, detail.UpdatedBy)
	assert.Equal(t, "Bob", detail.UpdatedBy.Name)

	require.Len(t, detail.VersionEditors, 2)
	assert.Equal(t, "Alice", detail.VersionEditors[0].Name)
	assert.Equal(t, "Bob", detail.VersionEditors[1].Name)
}

func TestActivityFeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t, "Alice", "alice@example.com")
	stranger := env.seedUser(t, "Eve", "eve@example.com")
	team := env.seedTeam(t, "Platform", core.Member{User: owner.Id, Role: core.RoleAdmin})
	otherTeam := env.seedTeam(t, "Secret", core.Member{User: stranger.Id, Role: core.RoleAdmin})

	for _, title := range []string{"One", "Two", "Three", "Four", "Five", "Six", "Seven"} {
		_, err := env.service.Create(ctx, team.Id, owner.Id, title, "Content for "+title)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := env.service.Create(ctx, otherTeam.Id, stranger.Id, "Hidden", "Not for Alice")
	require.NoError(t, err)

	feed, err := env.service.ActivityFeed(ctx, owner.Id)
	require.NoError(t, err)
	require.Len(t, feed, feedLimit)

	for _, entry := range feed {
		assert.Equal(t, team.Id, entry.Document.Team)
		assert.Equal(t, "Platform", entry.TeamName)
		require.NotNil(t, entry.UpdatedBy)
		assert.Equal(t, "Alice", entry.UpdatedBy.Name)
		assert.NotEqual(t, "Hidden", entry.Document.Title)
	}

	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].Document.UpdatedAt.After(feed[i-1].Document.UpdatedAt))
	}
}

func TestActivityFeed_NoTeams(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	loner := env.seedUser(t, "Zed", "zed@example.com")

	feed, err := env.service.ActivityFeed(ctx, loner.Id)
	require.NoError(t, err)
	assert.Empty(t, feed)

	_, err = env.service.ActivityFeed(ctx, 0)
	assert.Equal(t, ErrUserRequired, err)

	_, err = env.service.ActivityFeed(ctx, 424242)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"comma separated", "go, storage, search", []string{"go", "storage", "search"}},
		{"mixed separators", "go; storage\nsearch", []string{"go", "storage", "search"}},
		{"dedup and case", "Go, go, GO, Search", []string{"go", "search"}},
		{"blank pieces dropped", " , ,go,,", []string{"go"}},
		{"empty response", "", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseTags(tc.in))
		})
	}
}
