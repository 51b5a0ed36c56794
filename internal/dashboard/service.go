package dashboard

import (
	"context"
	"log/slog"

	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/policy"
	"github.com/frahmantamala/timesheet-tracker/internal/project"
	"github.com/frahmantamala/timesheet-tracker/internal/timesheet"
)

type TimesheetReader interface {
	List(ctx context.Context, filter timesheet.Filter) ([]*timesheet.Timesheet, error)
}

type ProjectReader interface {
	List(ctx context.Context, employeeID string) ([]*project.Project, error)
}

type UserCounter interface {
	CountByRole(ctx context.Context, role coreUser.Role) (int, error)
}

// Service derives summaries on demand from the repositories; nothing is stored.
type Service struct {
	timesheets TimesheetReader
	projects   ProjectReader
	users      UserCounter
	logger     *slog.Logger
}

func NewService(timesheets TimesheetReader, projects ProjectReader, users UserCounter, logger *slog.Logger) *Service {
	return &Service{
		timesheets: timesheets,
		projects:   projects,
		users:      users,
		logger:     logger,
	}
}

// Summary returns an EmployeeSummary for employees and an ApproverSummary otherwise.
func (s *Service) Summary(ctx context.Context, actor *coreUser.Actor) (interface{}, error) {
	if err := policy.Authorize(actor, policy.ActionReadDashboard, policy.Resource{}); err != nil {
		return nil, err
	}

	if actor.IsEmployee() {
		return s.employeeSummary(ctx, actor.ID)
	}
	return s.approverSummary(ctx)
}

func (s *Service) employeeSummary(ctx context.Context, employeeID string) (*EmployeeSummary, error) {
	timesheets, err := s.timesheets.List(ctx, timesheet.Filter{EmployeeID: employeeID})
	if err != nil {
		s.logger.Error("dashboard: failed to list timesheets", "error", err, "employee_id", employeeID)
		return nil, err
	}
	projects, err := s.projects.List(ctx, employeeID)
	if err != nil {
		s.logger.Error("dashboard: failed to list projects", "error", err, "employee_id", employeeID)
		return nil, err
	}

	summary := ForEmployee(timesheets, len(projects))
	return &summary, nil
}

func (s *Service) approverSummary(ctx context.Context) (*ApproverSummary, error) {
	timesheets, err := s.timesheets.List(ctx, timesheet.Filter{})
	if err != nil {
		s.logger.Error("dashboard: failed to list timesheets", "error", err)
		return nil, err
	}
	projects, err := s.projects.List(ctx, "")
	if err != nil {
		s.logger.Error("dashboard: failed to list projects", "error", err)
		return nil, err
	}
	employees, err := s.users.CountByRole(ctx, coreUser.RoleEmployee)
	if err != nil {
		s.logger.Error("dashboard: failed to count employees", "error", err)
		return nil, err
	}

	summary := ForApprover(timesheets, len(projects), employees)
	return &summary, nil
}
