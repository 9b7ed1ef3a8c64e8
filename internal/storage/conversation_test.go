package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santisabra00/finagent/internal/common"
	"github.com/santisabra00/finagent/internal/models"
)

func newTestStore(t *testing.T) (*ConversationStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conversations.json")
	return NewConversationStore(path, common.NewSilentLogger()), path
}

func TestConversationRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, path := newTestStore(t)

	turns := []models.Turn{
		models.TextTurn(models.RoleUser, "what is AAPL doing today?"),
		models.TextTurn(models.RoleAssistant, "AAPL is up 1.2%."),
		models.TextTurn(models.RoleUser, "thanks"),
	}
	for _, turn := range turns {
		require.NoError(t, store.Append(ctx, turn))
	}

	// Reload from disk.
	reloaded := NewConversationStore(path, common.NewSilentLogger())
	history, err := reloaded.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, len(turns))
	for i, turn := range turns {
		assert.Equal(t, turn.Role, history[i].Role)
		assert.Equal(t, turn.Text, history[i].Text)
	}
}

func TestConversationToolTurnsNotPersisted(t *testing.T) {
	ctx := context.Background()
	store, path := newTestStore(t)

	require.NoError(t, store.Append(ctx, models.TextTurn(models.RoleUser, "price of AAPL?")))
	require.NoError(t, store.Append(ctx, models.ToolCallTurn([]models.ToolCall{
		{ID: "call_1", Name: "get_price", Input: map[string]any{"ticker": "AAPL"}},
	})))
	require.NoError(t, store.Append(ctx, models.ToolResultTurn([]models.ToolResult{
		{ID: "call_1", Name: "get_price", Content: "AAPL: 185.20 USD"},
	})))
	require.NoError(t, store.Append(ctx, models.TextTurn(models.RoleAssistant, "AAPL trades at 185.20 USD.")))

	// In-memory history keeps all four turns.
	history, err := store.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 4)

	// Reload sees only the two text turns.
	reloaded := NewConversationStore(path, common.NewSilentLogger())
	persisted, err := reloaded.History(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 2)
	for _, turn := range persisted {
		assert.True(t, turn.IsText())
	}
}

func TestConversationResetIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Append(ctx, models.TextTurn(models.RoleUser, "hello")))

	require.NoError(t, store.Reset(ctx))
	history, err := store.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	// Resetting an already-empty conversation is not an error.
	require.NoError(t, store.Reset(ctx))
	history, err = store.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestConversationCorruptLogStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversations.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewConversationStore(path, common.NewSilentLogger())
	history, err := store.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestConversationAppendFailsWhenUnwritable(t *testing.T) {
	// Point the store at a path whose parent is a file, so the rename fails.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	store := NewConversationStore(filepath.Join(blocker, "conversations.json"), common.NewSilentLogger())
	err := store.Append(context.Background(), models.TextTurn(models.RoleUser, "hi"))
	require.Error(t, err)

	// The failed append must not land in memory either.
	history, herr := store.History(context.Background())
	require.NoError(t, herr)
	assert.Empty(t, history)
}
