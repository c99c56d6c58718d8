package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"todo-widget/app/models"
	"todo-widget/app/storage"
)

// TaskStore persists the whole task list as one JSON array in a single
// backend slot. Every mutation is a full read-modify-write.
type TaskStore struct {
	backend storage.Backend
	key     string
	logger  *log.Logger
}

// NewTaskStore creates a TaskStore over the slot named key.
func NewTaskStore(backend storage.Backend, key string, logger *log.Logger) *TaskStore {
	return &TaskStore{backend: backend, key: key, logger: logger}
}

// Load returns the stored tasks in order. An absent, empty or unparsable slot
// yields an empty list.
func (s *TaskStore) Load(ctx context.Context) ([]models.Task, error) {
	raw, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if !ok || raw == "" {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		s.logger.Warn("stored tasks are corrupt, treating as empty", "key", s.key, "err", err)
		return []models.Task{}, nil
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// Save replaces the stored list with tasks.
func (s *TaskStore) Save(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// Add appends a new, not completed task.
func (s *TaskStore) Add(ctx context.Context, id, value string) error {
	return s.update(ctx, func(tasks []models.Task) []models.Task {
		return append(tasks, models.Task{ID: id, Value: value})
	})
}

// Remove drops the task with the given id, if present.
func (s *TaskStore) Remove(ctx context.Context, id string) error {
	return s.update(ctx, func(tasks []models.Task) []models.Task {
		kept := tasks[:0]
		for _, t := range tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		return kept
	})
}

// SetCompleted sets the completed flag of the task with the given id.
func (s *TaskStore) SetCompleted(ctx context.Context, id string, completed bool) error {
	return s.update(ctx, func(tasks []models.Task) []models.Task {
		for i := range tasks {
			if tasks[i].ID == id {
				tasks[i].Completed = completed
			}
		}
		return tasks
	})
}

// SetValue replaces the text of the task with the given id.
func (s *TaskStore) SetValue(ctx context.Context, id, value string) error {
	return s.update(ctx, func(tasks []models.Task) []models.Task {
		for i := range tasks {
			if tasks[i].ID == id {
				tasks[i].Value = value
			}
		}
		return tasks
	})
}

// Toggle flips the completed flag of the task with the given id and returns
// the new value. found is false when no such task is stored.
func (s *TaskStore) Toggle(ctx context.Context, id string) (completed, found bool, err error) {
	err = s.update(ctx, func(tasks []models.Task) []models.Task {
		for i := range tasks {
			if tasks[i].ID == id {
				tasks[i].Completed = !tasks[i].Completed
				completed, found = tasks[i].Completed, true
			}
		}
		return tasks
	})
	return completed, found, err
}

// Clear erases the slot.
func (s *TaskStore) Clear(ctx context.Context) error {
	if err := s.backend.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}

func (s *TaskStore) update(ctx context.Context, apply func([]models.Task) []models.Task) error {
	tasks, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return s.Save(ctx, apply(tasks))
}
