package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"mindzy/internal/models"
	"mindzy/internal/repositories"
)

// Storage keys, one value per device.
const (
	KeyUserName       = "app_userName"
	KeyTermsAccepted  = "app_terms_accepted"
	KeyCoins          = "app_coins"
	KeyTasks          = "app_tasks"
	KeyRewards        = "app_rewards"
	KeyTelegramChatID = "app_telegram_chat_id"
	KeyLastReminder   = "app_last_reminder"
)

var allKeys = []string{
	KeyUserName, KeyTermsAccepted, KeyCoins, KeyTasks, KeyRewards,
	KeyTelegramChatID, KeyLastReminder,
}

// DefaultCoins is the starting balance of a new device.
const DefaultCoins = 150

func DefaultTasks() []models.Task {
	return []models.Task{
		{ID: "1", Title: "Estudiar para examen de Cálculo", Reward: 50, DueDate: "2025-12-18"},
		{ID: "2", Title: "Entregar proyecto de Programación", Reward: 80, DueDate: "2025-12-20"},
	}
}

func DefaultRewards() []models.Reward {
	return []models.Reward{
		{ID: "1", Title: "Ver una película", Cost: 50, Icon: "🎬"},
		{ID: "2", Title: "1 hora de videojuegos", Cost: 40, Icon: "🎮"},
		{ID: "3", Title: "Salir con amigos", Cost: 100, Icon: "👥"},
	}
}

// StateStore hydrates and flushes AppState against the key-value repository.
// A per-device mutex makes every Update a single writer for that device.
type StateStore struct {
	repo repositories.KVRepository
	now  func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStateStore(repo repositories.KVRepository, now func() time.Time) *StateStore {
	if now == nil {
		now = time.Now
	}
	return &StateStore{repo: repo, now: now, locks: map[string]*sync.Mutex{}}
}

func (s *StateStore) lockFor(deviceID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[deviceID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[deviceID] = l
	}
	return l
}

// Load reads the device's state, falling back to defaults for missing or
// unreadable keys.
func (s *StateStore) Load(ctx context.Context, deviceID string) (*AppState, error) {
	raw, err := s.repo.GetAll(ctx, deviceID, allKeys)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	st := newAppState(s.now)
	st.UserName = raw[KeyUserName]
	st.TermsAccepted = raw[KeyTermsAccepted] == "true"
	st.LastReminder = raw[KeyLastReminder]

	st.Coins = DefaultCoins
	if v, ok := raw[KeyCoins]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			st.Coins = n
		} else {
			log.Printf("[state][load][warn] device=%s bad coins=%q, using default", deviceID, v)
		}
	}

	st.Tasks = DefaultTasks()
	if v, ok := raw[KeyTasks]; ok {
		var tasks []models.Task
		if err := json.Unmarshal([]byte(v), &tasks); err == nil {
			st.Tasks = tasks
		} else {
			log.Printf("[state][load][warn] device=%s bad tasks: %v", deviceID, err)
		}
	}

	st.Rewards = DefaultRewards()
	if v, ok := raw[KeyRewards]; ok {
		var rewards []models.Reward
		if err := json.Unmarshal([]byte(v), &rewards); err == nil {
			st.Rewards = rewards
		} else {
			log.Printf("[state][load][warn] device=%s bad rewards: %v", deviceID, err)
		}
	}

	if v, ok := raw[KeyTelegramChatID]; ok && v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			st.TelegramChatID = id
		}
	}
	return st, nil
}

func encodeKey(st *AppState, key string) (string, error) {
	switch key {
	case KeyUserName:
		return st.UserName, nil
	case KeyTermsAccepted:
		return strconv.FormatBool(st.TermsAccepted), nil
	case KeyCoins:
		return strconv.Itoa(st.Coins), nil
	case KeyTasks:
		tasks := st.Tasks
		if tasks == nil {
			tasks = []models.Task{}
		}
		b, err := json.Marshal(tasks)
		return string(b), err
	case KeyRewards:
		rewards := st.Rewards
		if rewards == nil {
			rewards = []models.Reward{}
		}
		b, err := json.Marshal(rewards)
		return string(b), err
	case KeyTelegramChatID:
		if st.TelegramChatID == 0 {
			return "", nil
		}
		return strconv.FormatInt(st.TelegramChatID, 10), nil
	case KeyLastReminder:
		return st.LastReminder, nil
	}
	return "", fmt.Errorf("unknown state key %q", key)
}

// Flush writes the given keys of st in one repository call.
func (s *StateStore) Flush(ctx context.Context, deviceID string, st *AppState, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	entries := make(map[string]string, len(keys))
	for _, k := range keys {
		v, err := encodeKey(st, k)
		if err != nil {
			return err
		}
		entries[k] = v
	}
	if err := s.repo.PutMany(ctx, deviceID, entries); err != nil {
		return fmt.Errorf("flush state: %w", err)
	}
	return nil
}

// View runs fn against a freshly loaded state without persisting anything.
func (s *StateStore) View(ctx context.Context, deviceID string, fn func(st *AppState) error) error {
	l := s.lockFor(deviceID)
	l.Lock()
	defer l.Unlock()

	st, err := s.Load(ctx, deviceID)
	if err != nil {
		return err
	}
	return fn(st)
}

// Update runs fn and then flushes whatever keys fn changed, on every exit
// path including errors returned by fn.
func (s *StateStore) Update(ctx context.Context, deviceID string, fn func(st *AppState) error) (err error) {
	l := s.lockFor(deviceID)
	l.Lock()
	defer l.Unlock()

	st, err := s.Load(ctx, deviceID)
	if err != nil {
		return err
	}
	defer func() {
		dirty := st.DirtyKeys()
		if ferr := s.Flush(ctx, deviceID, st, dirty...); ferr != nil {
			log.Printf("[state][flush][err] device=%s keys=%v: %v", deviceID, dirty, ferr)
			if err == nil {
				err = ferr
			}
		}
	}()
	return fn(st)
}

// Devices lists every device that has stored state.
func (s *StateStore) Devices(ctx context.Context) ([]string, error) {
	return s.repo.ListDevices(ctx)
}
