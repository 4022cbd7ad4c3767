package repository

import (
	"context"

	"github.com/taskhive/backend/domain"
)

// TaskFilter narrows a listing by equality on status and/or priority.
// The owner is deliberately not part of the filter: it is a mandatory
// parameter on every repository method so no query can be written
// without it.
type TaskFilter struct {
	Status   string
	Priority string
}

// Page addresses a window of a listing. Values are normalized before
// use: page and limit fall back to 1 and 10. No upper bound is applied
// to limit.
type Page struct {
	Number int
	Limit  int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Normalized returns the page with defaults applied.
func (p Page) Normalized() Page {
	if p.Number <= 0 {
		p.Number = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset converts the page address into a row offset.
func (p Page) Offset() int {
	p = p.Normalized()
	return (p.Number - 1) * p.Limit
}

// TaskRepository is the owner-scoped task store. Every method takes the
// owner id explicitly; implementations fold it into every underlying
// query. GetByID, Update and Delete return domain.ErrTaskNotFound both
// when the task is absent and when it belongs to a different owner.
type TaskRepository interface {
	// List returns the owner's tasks matching the filter, ordered by
	// creation time descending, plus the total match count before
	// pagination.
	List(ctx context.Context, ownerID string, filter TaskFilter, page Page) ([]domain.Task, int, error)
	GetByID(ctx context.Context, ownerID, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// Update rewrites the mutable fields of the task identified by
	// task.ID under ownerID. The stored owner column is never touched.
	Update(ctx context.Context, ownerID string, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}
