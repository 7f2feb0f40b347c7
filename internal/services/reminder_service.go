package services

import (
	"context"
	"html"
	"log"
	"strconv"
	"strings"
	"time"

	"mindzy/internal/models"
)

// ReminderService sends each linked device at most one overdue-task digest
// per day.
type ReminderService struct {
	store     *StateStore
	messenger Messenger
	now       func() time.Time
}

func NewReminderService(store *StateStore, messenger Messenger) *ReminderService {
	return &ReminderService{store: store, messenger: messenger, now: store.now}
}

// RunOnce scans every device and returns how many digests were sent.
func (s *ReminderService) RunOnce(ctx context.Context) (int, error) {
	devices, err := s.store.Devices(ctx)
	if err != nil {
		return 0, err
	}
	today := s.now().Format(models.DateLayout)
	sent := 0
	for _, deviceID := range devices {
		err := s.store.Update(ctx, deviceID, func(st *AppState) error {
			if st.TelegramChatID == 0 || st.LastReminder == today {
				return nil
			}
			overdue := st.OverdueTasks()
			if len(overdue) == 0 {
				return nil
			}
			if err := s.messenger.SendMessage(st.TelegramChatID, formatDigest(st.UserName, overdue)); err != nil {
				return err
			}
			st.MarkReminded(today)
			sent++
			return nil
		})
		if err != nil {
			log.Printf("[reminder][device][err] device=%s: %v", deviceID, err)
		}
	}
	return sent, nil
}

// Run repeats RunOnce every interval until ctx is done.
func (s *ReminderService) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.RunOnce(ctx)
			if err != nil {
				log.Printf("[reminder][run][err] %v", err)
				continue
			}
			log.Printf("[reminder][run][ok] sent=%d", n)
		}
	}
}

func formatDigest(userName string, tasks []models.Task) string {
	var sb strings.Builder
	sb.WriteString("⏰ <b>" + html.EscapeString(userName) + "</b>, tienes tareas vencidas:\n")
	for _, t := range tasks {
		sb.WriteString("• " + html.EscapeString(t.Title) +
			" (<code>" + t.DueDate + "</code>, " + strconv.Itoa(t.Reward) + " monedas)\n")
	}
	return sb.String()
}
