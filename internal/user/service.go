package user

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/timesheet-tracker/internal"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/policy"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	List(ctx context.Context, role coreUser.Role) ([]*User, error)
	CountByRole(ctx context.Context, role coreUser.Role) (int, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns every account, optionally narrowed to one role.
func (s *Service) List(ctx context.Context, actor *coreUser.Actor, role string) ([]*User, error) {
	if err := policy.Authorize(actor, policy.ActionListAllUsers, policy.Resource{}); err != nil {
		s.logger.Warn("list users denied", "actor_id", actorID(actor), "error", err)
		return nil, err
	}

	var filter coreUser.Role
	if role != "" {
		parsed, err := coreUser.ParseRole(role)
		if err != nil {
			return nil, internal.NewValidationFieldError("role", err.Error(), internal.ErrCodeInvalidRole)
		}
		filter = parsed
	}

	users, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) CountByRole(ctx context.Context, role coreUser.Role) (int, error) {
	return s.repo.CountByRole(ctx, role)
}

func actorID(a *coreUser.Actor) string {
	if a == nil {
		return ""
	}
	return a.ID
}
