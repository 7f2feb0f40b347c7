package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Login(t *testing.T) {
	store, _ := newTestStore()
	profiles := NewProfileService(store)
	ctx := context.Background()

	_, err := profiles.Login(ctx, "Ana", false)
	assert.ErrorIs(t, err, ErrTermsNotAccepted)
	_, err = profiles.Login(ctx, "  ", true)
	assert.ErrorIs(t, err, ErrInvalidInput)

	dev, err := profiles.Login(ctx, " Ana ", true)
	require.NoError(t, err)
	require.NotEmpty(t, dev)

	p, err := profiles.Get(ctx, dev)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.UserName)
	assert.True(t, p.TermsAccepted)
	assert.Equal(t, DefaultCoins, p.Coins)
	assert.Equal(t, 2, p.PendingTasks)
	assert.Equal(t, 130, p.PotentialReward)
	assert.False(t, p.TelegramLinked)

	other, err := profiles.Login(ctx, "Ana", true)
	require.NoError(t, err)
	assert.NotEqual(t, dev, other, "every login gets its own device")
}

func TestProfileService_RenameAndTelegram(t *testing.T) {
	store, _ := newTestStore()
	profiles := NewProfileService(store)
	ctx := context.Background()

	dev, err := profiles.Login(ctx, "Ana", true)
	require.NoError(t, err)

	p, err := profiles.Rename(ctx, dev, "Ana María")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", p.UserName)

	_, err = profiles.Rename(ctx, dev, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, profiles.LinkTelegram(ctx, dev, 12345))
	p, err = profiles.Get(ctx, dev)
	require.NoError(t, err)
	assert.True(t, p.TelegramLinked)
	assert.Equal(t, "Ana María", p.UserName)
}

func TestSearchPsychologists(t *testing.T) {
	assert.Len(t, SearchPsychologists(""), 4)

	got := SearchPsychologists("  maría ")
	require.Len(t, got, 1)
	assert.Equal(t, "Dra. María González", got[0].Name)

	assert.Len(t, SearchPsychologists("DRA."), 2)
	assert.Empty(t, SearchPsychologists("freud"))

	bySpecialty := SearchPsychologists("ansiedad")
	require.Len(t, bySpecialty, 1)
	assert.Equal(t, "Dra. María González", bySpecialty[0].Name)
	assert.Len(t, SearchPsychologists("BURNOUT"), 1)
}
