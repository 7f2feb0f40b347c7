// internal/models/task.go
package models

import "time"

// DateLayout is the calendar-date format used for due dates.
const DateLayout = "2006-01-02"

type TaskPriority string

const (
	PriorityAll    TaskPriority = "all"
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

// Coins credited on completion for each priority tier.
const (
	RewardHigh   = 100
	RewardMedium = 50
	RewardLow    = 20
)

// Task represents a to-do item that pays coins once completed.
// Priority is never stored; it is derived from Reward.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Reward    int    `json:"reward"`
	DueDate   string `json:"dueDate"` // YYYY-MM-DD
}

// TaskView is a task as returned by the API, with derived fields.
type TaskView struct {
	Task
	Priority TaskPriority `json:"priority"`
	Overdue  bool         `json:"overdue"`
}

// PriorityFor derives the priority tier from a reward amount.
func PriorityFor(reward int) TaskPriority {
	switch {
	case reward >= RewardHigh:
		return PriorityHigh
	case reward >= RewardMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// RewardFor maps a priority tier chosen at creation time to its coin value.
func RewardFor(p TaskPriority) (int, bool) {
	switch p {
	case PriorityHigh:
		return RewardHigh, true
	case PriorityMedium:
		return RewardMedium, true
	case PriorityLow:
		return RewardLow, true
	}
	return 0, false
}

// IsTierReward reports whether reward is one of the tier values.
func IsTierReward(reward int) bool {
	return reward == RewardHigh || reward == RewardMedium || reward == RewardLow
}

// IsValidPriorityFilter reports whether p can be used to filter task lists.
func IsValidPriorityFilter(p TaskPriority) bool {
	switch p {
	case PriorityAll, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Priority returns the derived tier of the task.
func (t Task) Priority() TaskPriority {
	return PriorityFor(t.Reward)
}

// Due parses the due date. Invalid dates return ok=false.
func (t Task) Due() (time.Time, bool) {
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// IsOverdue reports whether an open task's due date is strictly before the
// calendar day of now.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	due, ok := t.Due()
	if !ok {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// View decorates the task with its derived fields.
func (t Task) View(now time.Time) TaskView {
	return TaskView{Task: t, Priority: t.Priority(), Overdue: t.IsOverdue(now)}
}

// TaskFilter defines the available parameters for listing tasks.
type TaskFilter struct {
	Priority TaskPriority
	Date     *string
	Month    *time.Time
}
