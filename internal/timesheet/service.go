package timesheet

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/timesheet-tracker/internal"
	"github.com/frahmantamala/timesheet-tracker/internal/core/common/validation"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/policy"
	"github.com/frahmantamala/timesheet-tracker/internal/project"
)

// Repository interface defines the data access methods for timesheets
type Repository interface {
	Create(ctx context.Context, t *Timesheet) error
	GetByID(ctx context.Context, id string) (*Timesheet, error)
	List(ctx context.Context, filter Filter) ([]*Timesheet, error)
	Update(ctx context.Context, t *Timesheet) error
	Delete(ctx context.Context, id string) error
}

// ProjectReader resolves the project a timesheet is logged against
type ProjectReader interface {
	GetByID(ctx context.Context, id string) (*project.Project, error)
}

// Service handles timesheet business logic
type Service struct {
	repo     Repository
	projects ProjectReader
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, projects ProjectReader, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create logs hours as a draft owned by the actor.
func (s *Service) Create(ctx context.Context, actor *coreUser.Actor, dto CreateTimesheetDTO) (*Timesheet, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.projects.GetByID(ctx, dto.ProjectID)
	if err != nil {
		s.logger.Warn("timesheet project lookup failed", "error", err, "project_id", dto.ProjectID)
		return nil, err
	}

	if err := policy.Authorize(actor, policy.ActionCreateTimesheet, p.Resource()); err != nil {
		s.logger.Warn("create timesheet denied", "error", err, "project_id", p.ID)
		return nil, err
	}

	t := NewTimesheet(uuid.NewString(), actor.ID, dto, s.now())
	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("failed to create timesheet", "error", err, "employee_id", actor.ID)
		return nil, err
	}

	s.logger.Info("timesheet created",
		"timesheet_id", t.ID,
		"employee_id", t.EmployeeID,
		"project_id", t.ProjectID,
		"hours", t.Hours)
	return t, nil
}

func (s *Service) Get(ctx context.Context, actor *coreUser.Actor, id string) (*Timesheet, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionReadTimesheet, t.Resource()); err != nil {
		s.logger.Warn("read timesheet denied", "timesheet_id", id, "error", err)
		return nil, err
	}
	return t, nil
}

// List applies the caller's filters; employees always see only their own timesheets.
func (s *Service) List(ctx context.Context, actor *coreUser.Actor, filter Filter) ([]*Timesheet, error) {
	if err := policy.Authorize(actor, policy.ActionListTimesheets, policy.Resource{}); err != nil {
		return nil, err
	}
	v := validation.NewValidator()
	v.Field("status", string(filter.Status)).OneOf(Statuses, internal.ErrCodeInvalidStatus)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	filter.EmployeeID = policy.ScopeEmployeeID(actor, filter.EmployeeID)

	timesheets, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list timesheets", "error", err)
		return nil, err
	}
	return timesheets, nil
}

func (s *Service) Update(ctx context.Context, actor *coreUser.Actor, id string, dto UpdateTimesheetDTO) (*Timesheet, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ActionUpdateTimesheet, t.Resource()); err != nil {
		s.logger.Warn("update timesheet denied", "timesheet_id", id, "error", err)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := t.ApplyUpdate(actor, dto, s.now()); err != nil {
		s.logger.Warn("timesheet update rejected", "timesheet_id", id, "status", t.Status, "error", err)
		return nil, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("failed to update timesheet", "error", err, "timesheet_id", id)
		return nil, err
	}
	return t, nil
}

// Decide approves or rejects a timesheet.
func (s *Service) Decide(ctx context.Context, actor *coreUser.Actor, id string, dto ApprovalDTO) (*Timesheet, error) {
	if err := policy.Authorize(actor, policy.ActionApproveTimesheet, policy.Resource{}); err != nil {
		s.logger.Warn("approve timesheet denied", "timesheet_id", id, "error", err)
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := t.Decide(actor, Status(dto.Status), dto.RejectionReason, s.now()); err != nil {
		s.logger.Warn("timesheet decision rejected", "timesheet_id", id, "status", t.Status, "error", err)
		return nil, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("failed to store timesheet decision", "error", err, "timesheet_id", id)
		return nil, err
	}

	s.logger.Info("timesheet decided",
		"timesheet_id", id,
		"status", t.Status,
		"decided_by", actor.ID)
	return t, nil
}

func (s *Service) Delete(ctx context.Context, actor *coreUser.Actor, id string) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(actor, policy.ActionDeleteTimesheet, t.Resource()); err != nil {
		s.logger.Warn("delete timesheet denied", "timesheet_id", id, "error", err)
		return err
	}
	if err := t.CheckDelete(actor); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete timesheet", "error", err, "timesheet_id", id)
		return err
	}

	s.logger.Info("timesheet deleted", "timesheet_id", id, "actor_id", actor.ID)
	return nil
}
