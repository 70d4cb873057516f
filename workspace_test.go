package kbforge

import (
	"context"
	"testing"

	"github.com/kbforge/kbforge/ai/mock"
	"github.com/kbforge/kbforge/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLifecycle(t *testing.T) {
	ws, err := OpenWorkspace(t.TempDir(), WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	require.NotNil(t, ws.DocumentRepository())
	require.NotNil(t, ws.TeamRepository())
	require.NotNil(t, ws.UserRepository())
	require.NotNil(t, ws.Provider())

	searcher, err := ws.NewSearcher()
	require.NoError(t, err)
	assert.NotNil(t, searcher)

	answerer, err := ws.NewAnswerer()
	require.NoError(t, err)
	assert.NotNil(t, answerer)

	docService, err := ws.NewDocumentService()
	require.NoError(t, err)
	assert.NotNil(t, docService)
	docService.Release()

	teamService, err := ws.NewTeamService()
	require.NoError(t, err)
	assert.NotNil(t, teamService)

	require.NoError(t, ws.Close())
}

func TestWorkspacePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	ws, err := OpenWorkspace(dir, WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)

	added, err := ws.UserRepository().AddUsers(ctx, &core.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	userID := added[0].Id
	require.NoError(t, ws.Close())

	ws, err = OpenWorkspace(dir, WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer ws.Close()

	user, err := ws.UserRepository().GetUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
}
