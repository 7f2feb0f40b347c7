package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessenger struct {
	sent map[int64][]string
	err  error
}

func (f *fakeMessenger) SendMessage(chatID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	if f.sent == nil {
		f.sent = map[int64][]string{}
	}
	f.sent[chatID] = append(f.sent[chatID], text)
	return nil
}

func TestReminderService_OneDigestPerDay(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	profiles := NewProfileService(store)

	linked, err := profiles.Login(ctx, "Ana <3", true)
	require.NoError(t, err)
	require.NoError(t, profiles.LinkTelegram(ctx, linked, 777))
	_, err = profiles.Login(ctx, "Luis", true) // not linked
	require.NoError(t, err)

	msgr := &fakeMessenger{}
	rem := NewReminderService(store, msgr)

	n, err := rem.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, msgr.sent[777], 1)
	digest := msgr.sent[777][0]
	assert.Contains(t, digest, "Ana &lt;3")
	assert.Contains(t, digest, "Estudiar para examen de Cálculo")
	assert.NotContains(t, digest, "Programación", "not overdue yet")

	n, err = rem.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "already reminded today")
}

func TestReminderService_NothingOverdue(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	profiles := NewProfileService(store)

	dev, err := profiles.Login(ctx, "Ana", true)
	require.NoError(t, err)
	require.NoError(t, profiles.LinkTelegram(ctx, dev, 777))
	_, err = NewTaskService(store).Complete(ctx, dev, "1")
	require.NoError(t, err)

	msgr := &fakeMessenger{}
	n, err := NewReminderService(store, msgr).RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, msgr.sent)
}

func TestReminderService_SendFailureRetriesLater(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	profiles := NewProfileService(store)
	dev, err := profiles.Login(ctx, "Ana", true)
	require.NoError(t, err)
	require.NoError(t, profiles.LinkTelegram(ctx, dev, 777))

	msgr := &fakeMessenger{err: errors.New("telegram down")}
	rem := NewReminderService(store, msgr)
	n, err := rem.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	msgr.err = nil
	n, err = rem.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
