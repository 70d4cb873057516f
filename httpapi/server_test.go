package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kbforge/kbforge/ai/mock"
	"github.com/kbforge/kbforge/answer"
	"github.com/kbforge/kbforge/core"
	"github.com/kbforge/kbforge/docs"
	"github.com/kbforge/kbforge/search"
	"github.com/kbforge/kbforge/storage"
	"github.com/kbforge/kbforge/storage/badger"
	"github.com/kbforge/kbforge/teams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDim = 4

type testServer struct {
	server    *Server
	users     storage.UserRepository
	generator *mock.MockGenerator
}

func newTestServer(t *testing.T) *testServer {
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
	provider := mock.NewMockProviderWithServices(embedder, generator)

	cfg := search.DefaultConfig()
	cfg.EmbeddingDim = testDim
	searcher, err := search.NewSearcher(docRepo, userRepo, provider, search.WithConfig(cfg))
	require.NoError(t, err)

	answerer, err := answer.NewAnswerer(docRepo, userRepo, provider)
	require.NoError(t, err)

	docService, err := docs.NewService(docRepo, teamRepo, userRepo, provider,
		docs.WithEmbeddingDim(testDim), docs.WithPoolSize(1))
	require.NoError(t, err)
	t.Cleanup(docService.Release)

	teamService, err := teams.NewService(teamRepo, userRepo, docRepo)
	require.NoError(t, err)

	return &testServer{
		server:    NewServer(searcher, answerer, docService, teamService),
		users:     userRepo,
		generator: generator,
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(encoded))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echoContentType, "application/json")
	rec := httptest.NewRecorder()
	ts.server.Handler().ServeHTTP(rec, req)
	return rec
}

const echoContentType = "Content-Type"

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (ts *testServer) seedUser(t *testing.T, name, email string) uint64 {
	t.Helper()
	added, err := ts.users.AddUsers(context.Background(), &core.User{Name: name, Email: email})
	require.NoError(t, err)
	return uint64(added[0].Id)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestTeamAndDocumentLifecycle(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.seedUser(t, "Alice", "alice@example.com")
	bob := ts.seedUser(t, "Bob", "bob@example.com")

	// Create a team
	rec := ts.do(t, http.MethodPost, "/api/teams", map[string]any{"name": "Platform", "user_id": alice})
	require.Equal(t, http.StatusCreated, rec.Code)
	team := decode(t, rec)["team"].(map[string]any)
	teamID := uint64(team["id"].(float64))

	// Invite Bob
	rec = ts.do(t, http.MethodPost, fmt.Sprintf("/api/teams/%d/invite", teamID), map[string]any{"email": "bob@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	// Duplicate invite conflicts
	rec = ts.do(t, http.MethodPost, fmt.Sprintf("/api/teams/%d/invite", teamID), map[string]any{"email": "bob@example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Create a document
	rec = ts.do(t, http.MethodPost, "/api/documents", map[string]any{
		"team_id": teamID, "user_id": alice,
		"title": "Runbook", "content": "Restart the ingestion worker first.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	doc := decode(t, rec)["document"].(map[string]any)
	docID := uint64(doc["id"].(float64))

	// Outsiders cannot create documents in the team
	carol := ts.seedUser(t, "Carol", "carol@example.com")
	rec = ts.do(t, http.MethodPost, "/api/documents", map[string]any{
		"team_id": teamID, "user_id": carol,
		"title": "Rogue", "content": "Nope.",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Bob (regular member, not creator) cannot edit
	rec = ts.do(t, http.MethodPut, fmt.Sprintf("/api/documents/%d", docID), map[string]any{
		"user_id": bob, "title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Alice edits
	rec = ts.do(t, http.MethodPut, fmt.Sprintf("/api/documents/%d", docID), map[string]any{
		"user_id": alice, "title": "Runbook v2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Get with provenance
	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/documents/%d", docID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode(t, rec)
	assert.Equal(t, "Runbook v2", detail["document"].(map[string]any)["title"])
	assert.Equal(t, "Alice", detail["created_by"].(map[string]any)["name"])

	// Activity feed
	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/activity?user_id=%d", bob), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	activities := decode(t, rec)["activities"].([]any)
	require.NotEmpty(t, activities)

	// Team listing with role
	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/teams?user_id=%d", bob), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	views := decode(t, rec)["teams"].([]any)
	require.Len(t, views, 1)
	assert.Equal(t, "user", views[0].(map[string]any)["role"])

	// Member removal: Bob cannot, Alice can
	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/teams/%d/members/%d?user_id=%d", teamID, alice, bob), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/teams/%d/members/%d?user_id=%d", teamID, bob, alice), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Delete document
	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/documents/%d?user_id=%d", docID, alice), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/documents/%d", docID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.seedUser(t, "Alice", "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/api/teams", map[string]any{"name": "Platform", "user_id": alice})
	require.Equal(t, http.StatusCreated, rec.Code)
	teamID := uint64(decode(t, rec)["team"].(map[string]any)["id"].(float64))

	rec = ts.do(t, http.MethodPost, "/api/documents", map[string]any{
		"team_id": teamID, "user_id": alice,
		"title": "Budget Report", "content": "Quarterly budget numbers.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("lexical hit", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/search", map[string]any{
			"user_id": alice, "query": "budget", "mode": "lexical",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		results := decode(t, rec)["results"].([]any)
		require.Len(t, results, 1)
		hit := results[0].(map[string]any)
		assert.Equal(t, "Budget Report", hit["document"].(map[string]any)["title"])
		assert.Greater(t, hit["score"].(float64), 0.0)
		// Embeddings are not part of the wire format
		assert.NotContains(t, rec.Body.String(), "Embedding")
	})

	t.Run("omitted mode defaults to lexical", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/search", map[string]any{
			"user_id": alice, "query": "budget",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		results := decode(t, rec)["results"].([]any)
		require.Len(t, results, 1)
	})

	t.Run("no matches is an empty 200", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/search", map[string]any{
			"user_id": alice, "query": "zzzzzz", "mode": "lexical",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode(t, rec)["results"])
	})

	t.Run("validation failures are 400", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/search", map[string]any{
			"user_id": alice, "query": "budget", "mode": "psychic",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = ts.do(t, http.MethodPost, "/api/search", map[string]any{
			"user_id": alice, "query": "   ", "mode": "lexical",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown user is 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/search", map[string]any{
			"user_id": 987654, "query": "budget", "mode": "lexical",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDocumentSharingEndpoints(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.seedUser(t, "Alice", "alice@example.com")
	dave := ts.seedUser(t, "Dave", "dave@example.com")

	rec := ts.do(t, http.MethodPost, "/api/teams", map[string]any{"name": "Platform", "user_id": alice})
	require.Equal(t, http.StatusCreated, rec.Code)
	teamID := uint64(decode(t, rec)["team"].(map[string]any)["id"].(float64))

	rec = ts.do(t, http.MethodPost, "/api/documents", map[string]any{
		"team_id": teamID, "user_id": alice,
		"title": "Budget Report", "content": "Quarterly budget numbers.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	docID := uint64(decode(t, rec)["document"].(map[string]any)["id"].(float64))

	// Dave is in no team, so the document is invisible to him.
	rec = ts.do(t, http.MethodPost, "/api/search", map[string]any{
		"user_id": dave, "query": "budget", "mode": "lexical",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["results"])

	// Share with Dave and the document surfaces for him.
	rec = ts.do(t, http.MethodPost, fmt.Sprintf("/api/documents/%d/access", docID), map[string]any{
		"user_id": alice, "grantee_id": dave, "level": "read",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	access := decode(t, rec)["document"].(map[string]any)["access"].([]any)
	require.Len(t, access, 1)
	assert.Equal(t, "read", access[0].(map[string]any)["level"])

	rec = ts.do(t, http.MethodPost, "/api/search", map[string]any{
		"user_id": dave, "query": "budget", "mode": "lexical",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode(t, rec)["results"].([]any), 1)

	t.Run("bad level is 400", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, fmt.Sprintf("/api/documents/%d/access", docID), map[string]any{
			"user_id": alice, "grantee_id": dave, "level": "owner",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown grantee is 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, fmt.Sprintf("/api/documents/%d/access", docID), map[string]any{
			"user_id": alice, "grantee_id": 987654, "level": "read",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	// Revoke and the document disappears for Dave again.
	rec = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/documents/%d/access/%d?user_id=%d", docID, dave, alice), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/search", map[string]any{
		"user_id": dave, "query": "budget", "mode": "lexical",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["results"])

	t.Run("revoking an absent grant is 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodDelete, fmt.Sprintf("/api/documents/%d/access/%d?user_id=%d", docID, dave, alice), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAskEndpoint(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.seedUser(t, "Alice", "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/api/teams", map[string]any{"name": "Platform", "user_id": alice})
	require.Equal(t, http.StatusCreated, rec.Code)
	teamID := uint64(decode(t, rec)["team"].(map[string]any)["id"].(float64))

	rec = ts.do(t, http.MethodPost, "/api/documents", map[string]any{
		"team_id": teamID, "user_id": alice,
		"title": "Oncall", "content": "Escalate to the platform channel.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Creation schedules async enrichment; give it a moment so the
	// generator stub below only sees the ask prompt.
	time.Sleep(100 * time.Millisecond)

	ts.generator.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "Escalate to the platform channel.", nil
	}

	rec = ts.do(t, http.MethodPost, "/api/ask", map[string]any{
		"user_id": alice, "question": "Who do I escalate to?",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Escalate to the platform channel.", body["answer"])
	assert.Equal(t, true, body["grounded"])

	t.Run("blank question is 400", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/ask", map[string]any{
			"user_id": alice, "question": " ",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
