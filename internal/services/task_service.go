// internal/services/task_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"mindzy/internal/models"
)

// CompleteResult reports a completion attempt. Found and Credited are false
// for unknown or already completed tasks; Coins is always the current balance.
type CompleteResult struct {
	Task     *models.TaskView `json:"task,omitempty"`
	Found    bool             `json:"found"`
	Credited bool             `json:"credited"`
	Coins    int              `json:"coins"`
}

// TaskService defines the task ledger operations for one device.
type TaskService interface {
	Create(ctx context.Context, deviceID, title string, reward int, dueDate string) (*models.TaskView, error)
	List(ctx context.Context, deviceID string, filter models.TaskFilter) ([]models.TaskView, error)
	Completed(ctx context.Context, deviceID string) ([]models.TaskView, error)
	Overdue(ctx context.Context, deviceID string) ([]models.TaskView, error)
	Complete(ctx context.Context, deviceID, id string) (*CompleteResult, error)
	Delete(ctx context.Context, deviceID, id string) error
}

type taskService struct {
	store *StateStore
	now   func() time.Time
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(store *StateStore) TaskService {
	return &taskService{store: store, now: store.now}
}

func (s *taskService) views(tasks []models.Task) []models.TaskView {
	now := s.now()
	out := make([]models.TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.View(now))
	}
	return out
}

func (s *taskService) Create(ctx context.Context, deviceID, title string, reward int, dueDate string) (*models.TaskView, error) {
	var created models.Task
	err := s.store.Update(ctx, deviceID, func(st *AppState) error {
		t, err := st.AddTask(title, reward, dueDate)
		created = t
		return err
	})
	if err != nil {
		return nil, err
	}
	v := created.View(s.now())
	return &v, nil
}

// List returns pending tasks ordered by due date. A Date or Month filter
// narrows to the calendar views; Priority applies after sorting.
func (s *taskService) List(ctx context.Context, deviceID string, filter models.TaskFilter) ([]models.TaskView, error) {
	if filter.Priority != "" && !models.IsValidPriorityFilter(filter.Priority) {
		return nil, fmt.Errorf("%w: priority must be all|high|medium|low", ErrInvalidInput)
	}
	var out []models.TaskView
	err := s.store.View(ctx, deviceID, func(st *AppState) error {
		tasks := st.PendingTasks(filter.Priority)
		switch {
		case filter.Date != nil:
			tasks = intersect(tasks, st.TasksOnDate(*filter.Date))
		case filter.Month != nil:
			tasks = intersect(tasks, st.TasksInMonth(filter.Month.Year(), filter.Month.Month()))
		}
		out = s.views(tasks)
		return nil
	})
	return out, err
}

// intersect keeps the elements of ordered that also appear in subset,
// preserving ordered's order.
func intersect(ordered, subset []models.Task) []models.Task {
	keep := make(map[string]struct{}, len(subset))
	for _, t := range subset {
		keep[t.ID] = struct{}{}
	}
	var out []models.Task
	for _, t := range ordered {
		if _, ok := keep[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (s *taskService) Completed(ctx context.Context, deviceID string) ([]models.TaskView, error) {
	var out []models.TaskView
	err := s.store.View(ctx, deviceID, func(st *AppState) error {
		out = s.views(st.CompletedTasks())
		return nil
	})
	return out, err
}

func (s *taskService) Overdue(ctx context.Context, deviceID string) ([]models.TaskView, error) {
	var out []models.TaskView
	err := s.store.View(ctx, deviceID, func(st *AppState) error {
		out = s.views(st.OverdueTasks())
		return nil
	})
	return out, err
}

func (s *taskService) Complete(ctx context.Context, deviceID, id string) (*CompleteResult, error) {
	res := &CompleteResult{}
	err := s.store.Update(ctx, deviceID, func(st *AppState) error {
		t, found, credited := st.CompleteTask(id)
		res.Found = found
		res.Credited = credited
		res.Coins = st.Coins
		if found {
			v := t.View(s.now())
			res.Task = &v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *taskService) Delete(ctx context.Context, deviceID, id string) error {
	return s.store.Update(ctx, deviceID, func(st *AppState) error {
		st.DeleteTask(id)
		return nil
	})
}
