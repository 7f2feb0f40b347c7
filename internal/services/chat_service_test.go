package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindzy/internal/models"
)

type fakeChatClient struct {
	mu      sync.Mutex
	calls   int
	reply   string
	err     error
	history [][]models.ChatTurn
	block   chan struct{}
}

func (f *fakeChatClient) Generate(_ context.Context, _ string, history []models.ChatTurn, _ string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.history = append(f.history, history)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.reply, f.err
}

func (f *fakeChatClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestChatService_StartSessionGreets(t *testing.T) {
	svc := NewChatService(&fakeChatClient{}, 0, time.Hour)
	s := svc.StartSession("dev", "Ana")

	assert.Equal(t, models.ChatIdle, s.State)
	assert.Equal(t, DefaultMaxMessages, s.MaxMessages)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, models.SenderBot, s.Messages[0].Sender)
	assert.Contains(t, s.Messages[0].Text, "¡Hola Ana! 👋 Soy tu espacio seguro")
}

func TestChatService_QuotaCap(t *testing.T) {
	client := &fakeChatClient{reply: "Te escucho."}
	svc := NewChatService(client, 10, time.Hour)
	s := svc.StartSession("dev", "Ana")
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		res, err := svc.SendMessage(ctx, "dev", s.ID, "hola")
		require.NoError(t, err, "message %d", i)
		assert.Equal(t, 10-i, res.Remaining)
	}
	view, err := svc.Get("dev", s.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChatLimitReached, view.State)
	assert.Equal(t, 10, view.MessageCount)

	_, err = svc.SendMessage(ctx, "dev", s.ID, "una más")
	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, 10, client.Calls(), "no call past the cap")

	view, err = svc.Get("dev", s.ID)
	require.NoError(t, err)
	assert.Len(t, view.Messages, 21, "greeting plus ten exchanges")
}

func TestChatService_EmptyMessageRejected(t *testing.T) {
	client := &fakeChatClient{reply: "ok"}
	svc := NewChatService(client, 10, time.Hour)
	s := svc.StartSession("dev", "Ana")

	_, err := svc.SendMessage(context.Background(), "dev", s.ID, "   \n")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, client.Calls())

	view, _ := svc.Get("dev", s.ID)
	assert.Zero(t, view.MessageCount)
}

func TestChatService_FailureUsesFallbackAndConsumesQuota(t *testing.T) {
	client := &fakeChatClient{err: errors.New("connection reset")}
	svc := NewChatService(client, 10, time.Hour)
	s := svc.StartSession("dev", "Ana")
	ctx := context.Background()

	res, err := svc.SendMessage(ctx, "dev", s.ID, "hola")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, res.BotMessage.Text)
	assert.Equal(t, models.SupportNormal, res.BotMessage.SupportLevel)
	assert.Equal(t, ConnectionNotice, res.Notice)
	assert.Equal(t, 9, res.Remaining)
	assert.Equal(t, models.ChatIdle, res.State)

	// the failed turn never reaches the model history
	client.err = nil
	client.reply = "Aquí estoy."
	_, err = svc.SendMessage(ctx, "dev", s.ID, "¿sigues ahí?")
	require.NoError(t, err)
	require.Len(t, client.history, 2)
	assert.Len(t, client.history[1], 2, "only the intro turns")
}

func TestChatService_SuccessExtendsHistory(t *testing.T) {
	client := &fakeChatClient{reply: "Cuéntame más."}
	svc := NewChatService(client, 10, time.Hour)
	s := svc.StartSession("dev", "Ana")
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "dev", s.ID, "estoy cansada")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "dev", s.ID, "mucho")
	require.NoError(t, err)

	require.Len(t, client.history, 2)
	assert.Equal(t, []models.ChatTurn{
		{Role: "user", Text: "Hola, soy Ana."},
		{Role: "model", Text: "Hola Ana, estoy listo para escucharte."},
		{Role: "user", Text: "estoy cansada"},
		{Role: "model", Text: "Cuéntame más."},
	}, client.history[1])
}

func TestChatService_ConcernFlag(t *testing.T) {
	tests := []struct {
		reply string
		want  models.SupportLevel
	}{
		{"Podrías hablar con un Profesional.", models.SupportConcern},
		{"La TERAPIA puede ayudar.", models.SupportConcern},
		{"Buscar ayuda psicológica es válido.", models.SupportConcern},
		{"A veces pasa.", models.SupportNormal},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			svc := NewChatService(&fakeChatClient{reply: tt.reply}, 10, time.Hour)
			s := svc.StartSession("dev", "Ana")
			res, err := svc.SendMessage(context.Background(), "dev", s.ID, "hola")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.BotMessage.SupportLevel)
			if tt.want == models.SupportConcern {
				assert.Equal(t, ConcernDisclaimer, res.BotMessage.Disclaimer)
			} else {
				assert.Empty(t, res.BotMessage.Disclaimer)
			}
		})
	}
}

func TestChatService_RejectsWhileAwaiting(t *testing.T) {
	client := &fakeChatClient{reply: "ok", block: make(chan struct{})}
	svc := NewChatService(client, 10, time.Hour)
	s := svc.StartSession("dev", "Ana")
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.SendMessage(ctx, "dev", s.ID, "primero")
		done <- err
	}()
	require.Eventually(t, func() bool { return client.Calls() == 1 }, time.Second, 5*time.Millisecond)

	_, err := svc.SendMessage(ctx, "dev", s.ID, "segundo")
	assert.ErrorIs(t, err, ErrAwaitingResponse)

	close(client.block)
	require.NoError(t, <-done)
	view, _ := svc.Get("dev", s.ID)
	assert.Equal(t, 1, view.MessageCount)
	assert.Equal(t, models.ChatIdle, view.State)
}

func TestChatService_SessionsBoundToDevice(t *testing.T) {
	svc := NewChatService(&fakeChatClient{reply: "ok"}, 10, time.Hour)
	s := svc.StartSession("dev-a", "Ana")

	_, err := svc.Get("dev-b", s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.SendMessage(context.Background(), "dev-b", s.ID, "hola")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestChatService_EvictIdle(t *testing.T) {
	svc := NewChatService(&fakeChatClient{reply: "ok"}, 10, time.Hour)
	now := testNow
	svc.now = func() time.Time { return now }

	old := svc.StartSession("dev", "Ana")
	now = now.Add(50 * time.Minute)
	fresh := svc.StartSession("dev", "Ana")
	now = now.Add(20 * time.Minute)

	assert.Equal(t, 1, svc.EvictIdle())
	_, err := svc.Get("dev", old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get("dev", fresh.ID)
	assert.NoError(t, err)
}
