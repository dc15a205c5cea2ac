package ports

import (
	"context"

	"github.com/identity-platform/identity-service/internal/core/domain"
)

// TaskRepository defines the interface for task persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
}
