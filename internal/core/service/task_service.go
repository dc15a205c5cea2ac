package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/identity-platform/identity-service/internal/api/metrics"
	"github.com/identity-platform/identity-service/internal/auth"
	"github.com/identity-platform/identity-service/internal/core/domain"
	"github.com/identity-platform/identity-service/internal/core/ports"
)

type taskService struct {
	repo   ports.TaskRepository
	lookup ports.UserInfoLookup
	log    zerolog.Logger
}

// NewTaskService returns a TaskService that attributes tasks to the
// current user and resolves creator display info through lookup.
func NewTaskService(repo ports.TaskRepository, lookup ports.UserInfoLookup, log zerolog.Logger) ports.TaskService {
	return &taskService{repo: repo, lookup: lookup, log: log}
}

func (s *taskService) Create(ctx context.Context, description string, dueDate *time.Time) (*domain.Task, error) {
	user, err := auth.Require(ctx)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Description: description,
		CreatedDate: time.Now().UTC(),
		CreatedBy:   user.UserID(),
		DueDate:     dueDate,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TasksCreatedTotal.Inc()
	return created, nil
}

// List resolves each task's creator through the user info lookup. A
// deleted creator or a lookup outage degrades to an unresolved name
// instead of failing the whole listing.
func (s *taskService) List(ctx context.Context) ([]ports.TaskWithCreator, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]ports.TaskWithCreator, 0, len(tasks))
	for _, task := range tasks {
		entry := ports.TaskWithCreator{Task: task}
		if info, err := s.lookup.FindUserInfo(ctx, task.CreatedBy); err == nil {
			entry.Creator = info
			entry.CreatorName = info.FullName()
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Err(err).
				Str("user_id", task.CreatedBy.String()).
				Msg("failed to resolve task creator")
		}
		out = append(out, entry)
	}
	return out, nil
}
