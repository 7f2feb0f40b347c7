package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindzy/internal/repositories"
)

func TestStateStore_DefaultsForNewDevice(t *testing.T) {
	store, _ := newTestStore()
	st, err := store.Load(context.Background(), "dev")
	require.NoError(t, err)

	assert.Equal(t, DefaultCoins, st.Coins)
	assert.Equal(t, DefaultTasks(), st.Tasks)
	assert.Equal(t, DefaultRewards(), st.Rewards)
	assert.Empty(t, st.UserName)
	assert.False(t, st.TermsAccepted)
}

func TestStateStore_CorruptValuesFallBack(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()
	require.NoError(t, repo.PutMany(ctx, "dev", map[string]string{
		KeyCoins:   "lots",
		KeyTasks:   "{not json",
		KeyRewards: "[]",
	}))

	st, err := store.Load(ctx, "dev")
	require.NoError(t, err)
	assert.Equal(t, DefaultCoins, st.Coins)
	assert.Equal(t, DefaultTasks(), st.Tasks)
	assert.Empty(t, st.Rewards, "a valid empty list is kept")
}

func TestStateStore_UpdatePersistsAcrossInstances(t *testing.T) {
	repo := repositories.NewMemoryKVRepository()
	ctx := context.Background()

	first := NewStateStore(repo, fixedClock)
	require.NoError(t, first.Update(ctx, "dev", func(st *AppState) error {
		st.CompleteTask("1")
		return st.SetUserName("Ana")
	}))

	// a fresh store simulates a restart
	second := NewStateStore(repo, fixedClock)
	st, err := second.Load(ctx, "dev")
	require.NoError(t, err)
	assert.Equal(t, "Ana", st.UserName)
	assert.Equal(t, 200, st.Coins)
	assert.True(t, st.Tasks[0].Completed)
}

func TestStateStore_CompletionFlushedInOneCall(t *testing.T) {
	repo := &countingRepo{KVRepository: repositories.NewMemoryKVRepository()}
	store := NewStateStore(repo, fixedClock)

	require.NoError(t, store.Update(context.Background(), "dev", func(st *AppState) error {
		st.CompleteTask("2")
		return nil
	}))
	require.Len(t, repo.puts, 1)
	assert.Equal(t, "230", repo.puts[0][KeyCoins])
	assert.Contains(t, repo.puts[0], KeyTasks)
}

func TestStateStore_UpdateFlushesOnError(t *testing.T) {
	repo := &countingRepo{KVRepository: repositories.NewMemoryKVRepository()}
	store := NewStateStore(repo, fixedClock)
	boom := errors.New("boom")

	err := store.Update(context.Background(), "dev", func(st *AppState) error {
		st.LinkTelegram(42)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.Len(t, repo.puts, 1)
	assert.Equal(t, "42", repo.puts[0][KeyTelegramChatID])
}

func TestStateStore_NoWriteWithoutChanges(t *testing.T) {
	repo := &countingRepo{KVRepository: repositories.NewMemoryKVRepository()}
	store := NewStateStore(repo, fixedClock)

	require.NoError(t, store.Update(context.Background(), "dev", func(st *AppState) error {
		st.CompleteTask("missing")
		return nil
	}))
	assert.Empty(t, repo.puts)
}
