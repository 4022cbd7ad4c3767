// Package task implements the owner-scoped task operations. Every
// function takes the owner id explicitly and passes it through to the
// repository; there is no unscoped path.
package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/internal/infrastructure/audit"
	"github.com/taskhive/backend/repository"
	"github.com/taskhive/backend/usecase"
)

// CreateInput carries the writable fields for a new task. Priority and
// status default to medium/pending when empty.
type CreateInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
}

// UpdateInput carries partial changes: nil fields are left untouched.
// There is intentionally no owner field.
type UpdateInput struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
}

// ListResult is a page of tasks plus the numbers needed to render
// pagination: pages == ceil(total/limit).
type ListResult struct {
	Tasks []domain.Task
	Total int
	Page  int
	Limit int
	Pages int
}

type UseCase struct {
	tasks  repository.TaskRepository
	trail  usecase.AuditTrail
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, trail usecase.AuditTrail, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		trail:  trail,
		logger: logger,
	}
}

// List returns the owner's tasks, newest first.
func (uc *UseCase) List(ctx context.Context, ownerID string, filter repository.TaskFilter, page repository.Page) (*ListResult, error) {
	page = page.Normalized()

	tasks, total, err := uc.tasks.List(ctx, ownerID, filter, page)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Tasks: tasks,
		Total: total,
		Page:  page.Number,
		Limit: page.Limit,
		Pages: (total + page.Limit - 1) / page.Limit,
	}, nil
}

func (uc *UseCase) Get(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, ownerID, id)
}

// Create validates the input, applies defaults and persists the task
// under the caller's identity.
func (uc *UseCase) Create(ctx context.Context, ownerID string, input CreateInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Title is required")
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if input.Status == "" {
		input.Status = domain.StatusPending
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Invalid priority")
	}
	if !domain.ValidStatus(input.Status) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "Invalid status")
	}

	created, err := uc.tasks.Create(ctx, &domain.Task{
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
	})
	if err != nil {
		return nil, err
	}

	uc.record(audit.ActionTaskCreate, ownerID, created.ID)
	return created, nil
}

// Update fetches the task under the owner first (same non-disclosure
// rule as Get), merges the provided fields and writes it back. The
// owner is never among the merged fields.
func (uc *UseCase) Update(ctx context.Context, ownerID, id string, input UpdateInput) (*domain.Task, error) {
	current, err := uc.tasks.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "Title is required")
		}
		current.Title = *input.Title
	}
	if input.Description != nil {
		current.Description = *input.Description
	}
	if input.Priority != nil {
		if !domain.ValidPriority(*input.Priority) {
			return nil, domain.NewError(domain.ErrCodeInvalid, "Invalid priority")
		}
		current.Priority = *input.Priority
	}
	if input.Status != nil {
		if !domain.ValidStatus(*input.Status) {
			return nil, domain.NewError(domain.ErrCodeInvalid, "Invalid status")
		}
		current.Status = *input.Status
	}

	updated, err := uc.tasks.Update(ctx, ownerID, current)
	if err != nil {
		return nil, err
	}

	uc.record(audit.ActionTaskUpdate, ownerID, updated.ID)
	return updated, nil
}

func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	if err := uc.tasks.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	uc.record(audit.ActionTaskDelete, ownerID, id)
	return nil
}

func (uc *UseCase) record(action, ownerID, taskID string) {
	if uc.trail == nil {
		return
	}
	uc.trail.Record(action, ownerID, taskID, "")
}
