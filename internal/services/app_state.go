package services

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"mindzy/internal/models"
)

// AppState is everything one device owns: profile, coin balance, tasks and
// rewards. All mutation goes through its methods, which record the storage
// keys they touched so the caller can flush exactly those.
type AppState struct {
	UserName       string
	TermsAccepted  bool
	Coins          int
	Tasks          []models.Task
	Rewards        []models.Reward
	TelegramChatID int64
	LastReminder   string

	now   func() time.Time
	dirty map[string]struct{}
}

func newAppState(now func() time.Time) *AppState {
	if now == nil {
		now = time.Now
	}
	return &AppState{now: now, dirty: map[string]struct{}{}}
}

func (s *AppState) touch(keys ...string) {
	for _, k := range keys {
		s.dirty[k] = struct{}{}
	}
}

// DirtyKeys returns the keys changed since the last call and resets the set.
func (s *AppState) DirtyKeys() []string {
	out := make([]string, 0, len(s.dirty))
	for k := range s.dirty {
		out = append(out, k)
	}
	sort.Strings(out)
	s.dirty = map[string]struct{}{}
	return out
}

// ---- profile ----

func (s *AppState) SetUserName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: user name is required", ErrInvalidInput)
	}
	s.UserName = name
	s.touch(KeyUserName)
	return nil
}

func (s *AppState) AcceptTerms() {
	if !s.TermsAccepted {
		s.TermsAccepted = true
		s.touch(KeyTermsAccepted)
	}
}

func (s *AppState) LinkTelegram(chatID int64) {
	s.TelegramChatID = chatID
	s.touch(KeyTelegramChatID)
}

func (s *AppState) MarkReminded(day string) {
	s.LastReminder = day
	s.touch(KeyLastReminder)
}

func (s *AppState) Profile() models.Profile {
	return models.Profile{
		UserName:        s.UserName,
		TermsAccepted:   s.TermsAccepted,
		Coins:           s.Coins,
		PendingTasks:    len(s.pending()),
		CompletedTasks:  len(s.CompletedTasks()),
		PotentialReward: s.PotentialReward(),
		TelegramLinked:  s.TelegramChatID != 0,
	}
}

// ---- task ledger ----

// nextID returns a time-derived id that is unique among existing ids.
func (s *AppState) nextID(taken func(string) bool) string {
	n := s.now().UnixMilli()
	id := strconv.FormatInt(n, 10)
	for taken(id) {
		n++
		id = strconv.FormatInt(n, 10)
	}
	return id
}

func (s *AppState) taskIndex(id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// AddTask appends an open task. dueDate must be YYYY-MM-DD.
func (s *AppState) AddTask(title string, reward int, dueDate string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !models.IsTierReward(reward) {
		return models.Task{}, fmt.Errorf("%w: reward must be %d, %d or %d",
			ErrInvalidInput, models.RewardHigh, models.RewardMedium, models.RewardLow)
	}
	if _, err := time.Parse(models.DateLayout, dueDate); err != nil {
		return models.Task{}, fmt.Errorf("%w: due date must be YYYY-MM-DD", ErrInvalidInput)
	}
	t := models.Task{
		ID:      s.nextID(func(id string) bool { return s.taskIndex(id) >= 0 }),
		Title:   title,
		Reward:  reward,
		DueDate: dueDate,
	}
	s.Tasks = append(s.Tasks, t)
	s.touch(KeyTasks)
	return t, nil
}

// CompleteTask marks an open task done and credits its reward. Unknown ids
// and already-completed tasks are left untouched; credited reports whether
// coins moved.
func (s *AppState) CompleteTask(id string) (task models.Task, found, credited bool) {
	i := s.taskIndex(id)
	if i < 0 {
		return models.Task{}, false, false
	}
	if s.Tasks[i].Completed {
		return s.Tasks[i], true, false
	}
	// stored rewards are not trusted; the balance must stay non-negative
	if r := s.Tasks[i].Reward; r < 0 || r > math.MaxInt-s.Coins {
		log.Printf("[state][task][complete][refused] id=%s reward=%d coins=%d", id, r, s.Coins)
		return s.Tasks[i], true, false
	}
	s.Tasks[i].Completed = true
	s.Coins += s.Tasks[i].Reward
	s.touch(KeyTasks, KeyCoins)
	return s.Tasks[i], true, true
}

// DeleteTask removes the task whatever its state. Coins already credited stay.
func (s *AppState) DeleteTask(id string) bool {
	i := s.taskIndex(id)
	if i < 0 {
		return false
	}
	s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
	s.touch(KeyTasks)
	return true
}

func (s *AppState) pending() []models.Task {
	var out []models.Task
	for _, t := range s.Tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// PendingTasks returns open tasks sorted by due date, then narrowed to the
// priority tier unless filter is "all" or empty.
func (s *AppState) PendingTasks(filter models.TaskPriority) []models.Task {
	out := s.pending()
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	if filter == "" || filter == models.PriorityAll {
		return out
	}
	filtered := out[:0]
	for _, t := range out {
		if t.Priority() == filter {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func (s *AppState) CompletedTasks() []models.Task {
	var out []models.Task
	for _, t := range s.Tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// PotentialReward is the sum of rewards still to be earned.
func (s *AppState) PotentialReward() int {
	sum := 0
	for _, t := range s.pending() {
		sum += t.Reward
	}
	return sum
}

// OverdueTasks lists open tasks due before today.
func (s *AppState) OverdueTasks() []models.Task {
	now := s.now()
	var out []models.Task
	for _, t := range s.PendingTasks(models.PriorityAll) {
		if t.IsOverdue(now) {
			out = append(out, t)
		}
	}
	return out
}

// TasksOnDate lists open tasks due on the given day.
func (s *AppState) TasksOnDate(date string) []models.Task {
	var out []models.Task
	for _, t := range s.pending() {
		if t.DueDate == date {
			out = append(out, t)
		}
	}
	return out
}

// TasksInMonth lists open tasks due within the given month.
func (s *AppState) TasksInMonth(year int, month time.Month) []models.Task {
	var out []models.Task
	for _, t := range s.PendingTasks(models.PriorityAll) {
		due, ok := t.Due()
		if ok && due.Year() == year && due.Month() == month {
			out = append(out, t)
		}
	}
	return out
}

// ---- reward ledger ----

func (s *AppState) rewardIndex(id string) int {
	for i := range s.Rewards {
		if s.Rewards[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *AppState) Reward(id string) (models.Reward, bool) {
	i := s.rewardIndex(id)
	if i < 0 {
		return models.Reward{}, false
	}
	return s.Rewards[i], true
}

func (s *AppState) AddReward(title string, cost int, icon string) (models.Reward, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Reward{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if cost <= 0 {
		return models.Reward{}, fmt.Errorf("%w: cost must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(icon) == "" {
		icon = models.DefaultRewardIcon
	}
	r := models.Reward{
		ID:    s.nextID(func(id string) bool { return s.rewardIndex(id) >= 0 }),
		Title: title,
		Cost:  cost,
		Icon:  icon,
	}
	s.Rewards = append(s.Rewards, r)
	s.touch(KeyRewards)
	return r, nil
}

// RedeemReward debits the reward's cost when the balance covers it.
// It returns false, with no side effects, otherwise.
func (s *AppState) RedeemReward(id string) bool {
	r, ok := s.Reward(id)
	if !ok || s.Coins < r.Cost {
		return false
	}
	s.Coins -= r.Cost
	s.touch(KeyCoins)
	return true
}

func (s *AppState) DeleteReward(id string) bool {
	i := s.rewardIndex(id)
	if i < 0 {
		return false
	}
	s.Rewards = append(s.Rewards[:i], s.Rewards[i+1:]...)
	s.touch(KeyRewards)
	return true
}
