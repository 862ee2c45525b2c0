package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/tasknest/tasknest/internal/metrics"
	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/repository"
)

// Task errors.
var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidTitle        = errors.New("title must be between 1 and 255 characters")
	ErrInvalidStatusFilter = errors.New("status must be one of all, pending, completed")
)

// TaskService handles task business logic. Every operation is scoped to an owner.
type TaskService struct {
	store   repository.Store
	metrics metrics.Recorder
}

// NewTaskService creates a new TaskService.
func NewTaskService(store repository.Store, recorder metrics.Recorder) *TaskService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TaskService{
		store:   store,
		metrics: recorder,
	}
}

// CreateTaskInput defines input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description *string
}

// Create adds an incomplete task for ownerID.
func (s *TaskService) Create(ctx context.Context, ownerID string, input CreateTaskInput) (*model.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &model.Task{
		Title:       input.Title,
		Description: input.Description,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.metrics.IncTaskCreated()
	return task, nil
}

// List returns the owner's tasks matching status ("", all, pending or completed).
func (s *TaskService) List(ctx context.Context, ownerID, status string) ([]*model.Task, error) {
	filter, err := model.ParseTaskStatus(status)
	if err != nil {
		return nil, ErrInvalidStatusFilter
	}

	tasks, err := s.store.ListTasks(ctx, ownerID, filter.CompletedFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns one of the owner's tasks.
func (s *TaskService) Get(ctx context.Context, ownerID string, id int64) (*model.Task, error) {
	task, err := s.store.GetTask(ctx, id, ownerID)
	if err != nil {
		return nil, mapTaskError("get", err)
	}
	return task, nil
}

// Update changes only the supplied fields of one of the owner's tasks.
func (s *TaskService) Update(ctx context.Context, ownerID string, id int64, changes model.TaskChanges) (*model.Task, error) {
	if changes.Title != nil {
		if err := validateTitle(*changes.Title); err != nil {
			return nil, err
		}
	}

	task, err := s.store.UpdateTask(ctx, id, ownerID, changes)
	if err != nil {
		return nil, mapTaskError("update", err)
	}

	s.metrics.IncTaskUpdated()
	return task, nil
}

// Delete removes one of the owner's tasks.
func (s *TaskService) Delete(ctx context.Context, ownerID string, id int64) error {
	if err := s.store.DeleteTask(ctx, id, ownerID); err != nil {
		return mapTaskError("delete", err)
	}

	s.metrics.IncTaskDeleted()
	return nil
}

// ToggleComplete flips the completed flag of one of the owner's tasks.
func (s *TaskService) ToggleComplete(ctx context.Context, ownerID string, id int64) (*model.Task, error) {
	task, err := s.store.ToggleTask(ctx, id, ownerID)
	if err != nil {
		return nil, mapTaskError("toggle", err)
	}

	s.metrics.IncTaskToggled()
	return task, nil
}

// validateTitle counts Unicode code points, not bytes.
func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < 1 || n > model.MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func mapTaskError(op string, err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("failed to %s task: %w", op, err)
}
