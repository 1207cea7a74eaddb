package service

import (
	"context"
	"errors"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

const (
	minTitleLen       = 3
	minDescriptionLen = 5
)

// UpdateTaskParams carries a partial update: nil fields keep their stored value.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TaskService coordinates task operations for an authenticated user. The
// owning user id always comes from the caller's resolved identity, never from
// client input.
type TaskService interface {
	Create(ctx context.Context, userID, title, description string) (*domain.Task, error)
	List(ctx context.Context, userID string) ([]domain.Task, error)
	Update(ctx context.Context, userID, taskID string, params UpdateTaskParams) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, userID, title, description string) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" || description == "" {
		return nil, validationf("all fields are required")
	}
	if len(title) < minTitleLen {
		return nil, validationf("title must be at least %d characters", minTitleLen)
	}
	if len(description) < minDescriptionLen {
		return nil, validationf("description must be at least %d characters", minDescriptionLen)
	}

	task := &domain.Task{
		Title:       title,
		Description: description,
		Status:      domain.TaskStatusPending,
		UserID:      userID,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

func (s *taskService) Update(ctx context.Context, userID, taskID string, params UpdateTaskParams) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if len(title) < minTitleLen {
			return nil, validationf("title must be at least %d characters", minTitleLen)
		}
		task.Title = title
	}
	if params.Description != nil {
		description := strings.TrimSpace(*params.Description)
		if len(description) < minDescriptionLen {
			return nil, validationf("description must be at least %d characters", minDescriptionLen)
		}
		task.Description = description
	}
	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, validationf("invalid status %q", string(*params.Status))
		}
		task.Status = *params.Status
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID string) error {
	if err := s.tasks.Delete(ctx, userID, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}
