package ports

import (
	"context"
	"time"

	"github.com/identity-platform/identity-service/internal/core/domain"
)

// TaskWithCreator pairs a task with the resolved display information of
// the user who created it. Creator is nil when the user could no longer
// be resolved (deleted account, lookup outage).
type TaskWithCreator struct {
	Task        domain.Task
	Creator     domain.AppUserInfo
	CreatorName string
}

type TaskService interface {
	// Create stores a new task attributed to the current user. Fails with
	// domain.ErrNoCurrentUser when the context carries no authenticated
	// principal.
	Create(ctx context.Context, description string, dueDate *time.Time) (*domain.Task, error)
	// List returns all tasks with creator attribution resolved through the
	// user info lookup.
	List(ctx context.Context) ([]TaskWithCreator, error)
}
