package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardService_RedeemScenario(t *testing.T) {
	store, _ := newTestStore()
	rewards := NewRewardService(store)
	ctx := context.Background()

	q, err := rewards.Quote(ctx, "dev", "2")
	require.NoError(t, err)
	assert.True(t, q.Affordable)
	assert.Equal(t, 150, q.Balance)
	assert.Equal(t, 110, q.Remaining)

	_, coins, err := rewards.List(ctx, "dev")
	require.NoError(t, err)
	assert.Equal(t, 150, coins, "quote never spends")

	res, err := rewards.Redeem(ctx, "dev", "2")
	require.NoError(t, err)
	assert.Equal(t, 40, res.Spent)
	assert.Equal(t, 110, res.Remaining)
}

func TestRewardService_RedeemAfterCompletion(t *testing.T) {
	store, _ := newTestStore()
	rewards := NewRewardService(store)
	ctx := context.Background()

	_, err := NewTaskService(store).Complete(ctx, "dev", "1")
	require.NoError(t, err)

	res, err := rewards.Redeem(ctx, "dev", "2")
	require.NoError(t, err)
	assert.Equal(t, 160, res.Remaining)
}

func TestRewardService_Insufficient(t *testing.T) {
	store, _ := newTestStore()
	rewards := NewRewardService(store)
	ctx := context.Background()

	big, err := rewards.Create(ctx, "dev", "Laptop", 1000, "💻")
	require.NoError(t, err)

	q, err := rewards.Quote(ctx, "dev", big.ID)
	require.NoError(t, err)
	assert.False(t, q.Affordable)

	_, err = rewards.Redeem(ctx, "dev", big.ID)
	assert.ErrorIs(t, err, ErrInsufficientCoins)

	_, coins, err := rewards.List(ctx, "dev")
	require.NoError(t, err)
	assert.Equal(t, 150, coins)

	_, err = rewards.Redeem(ctx, "dev", "missing")
	assert.ErrorIs(t, err, ErrRewardNotFound)
	_, err = rewards.Quote(ctx, "dev", "missing")
	assert.ErrorIs(t, err, ErrRewardNotFound)
}

func TestRewardService_CreateAndDelete(t *testing.T) {
	store, _ := newTestStore()
	rewards := NewRewardService(store)
	ctx := context.Background()

	_, err := rewards.Create(ctx, "dev", "", 10, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = rewards.Create(ctx, "dev", "Café", -5, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	r, err := rewards.Create(ctx, "dev", "Café", 15, "")
	require.NoError(t, err)
	require.NoError(t, rewards.Delete(ctx, "dev", r.ID))

	list, _, err := rewards.List(ctx, "dev")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
