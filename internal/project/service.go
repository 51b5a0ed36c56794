package project

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/policy"
)

// Repository interface defines the data access methods for projects
type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	// List returns projects in creation order. A non-empty employeeID keeps only projects that employee is assigned to.
	List(ctx context.Context, employeeID string) ([]*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
}

// Service handles project business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, actor *coreUser.Actor, dto ProjectDTO) (*Project, error) {
	if err := policy.Authorize(actor, policy.ActionCreateProject, policy.Resource{}); err != nil {
		s.logger.Warn("create project denied", "error", err)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := NewProject(uuid.NewString(), actor.ID, dto, s.now())
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create project", "error", err, "actor_id", actor.ID)
		return nil, err
	}

	s.logger.Info("project created", "project_id", p.ID, "actor_id", actor.ID, "assigned", len(p.AssignedEmployees))
	return p, nil
}

// Get loads first so a missing project is not_found for every role.
func (s *Service) Get(ctx context.Context, actor *coreUser.Actor, id string) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionReadProject, p.Resource()); err != nil {
		s.logger.Warn("read project denied", "project_id", id, "error", err)
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, actor *coreUser.Actor) ([]*Project, error) {
	if err := policy.Authorize(actor, policy.ActionListProjects, policy.Resource{}); err != nil {
		return nil, err
	}

	var employeeID string
	if actor.IsEmployee() {
		employeeID = actor.ID
	}

	projects, err := s.repo.List(ctx, employeeID)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err, "actor_id", actor.ID)
		return nil, err
	}
	return projects, nil
}

func (s *Service) Replace(ctx context.Context, actor *coreUser.Actor, id string, dto ProjectDTO) (*Project, error) {
	if err := policy.Authorize(actor, policy.ActionUpdateProject, policy.Resource{}); err != nil {
		s.logger.Warn("update project denied", "project_id", id, "error", err)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Replace(dto, s.now())
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update project", "error", err, "project_id", id)
		return nil, err
	}

	s.logger.Info("project replaced", "project_id", id, "actor_id", actor.ID)
	return p, nil
}

// Delete leaves timesheets that reference the project untouched.
func (s *Service) Delete(ctx context.Context, actor *coreUser.Actor, id string) error {
	if err := policy.Authorize(actor, policy.ActionDeleteProject, policy.Resource{}); err != nil {
		s.logger.Warn("delete project denied", "project_id", id, "error", err)
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted", "project_id", id, "actor_id", actor.ID)
	return nil
}
