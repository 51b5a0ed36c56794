package dashboard

import (
	"github.com/frahmantamala/timesheet-tracker/internal/timesheet"
)

// EmployeeSummary is the dashboard of a single employee over their own timesheets.
type EmployeeSummary struct {
	TotalHours      float64 `json:"total_hours"`
	ApprovedHours   float64 `json:"approved_hours"`
	PendingHours    float64 `json:"pending_hours"`
	TotalProjects   int     `json:"total_projects"`
	TotalTimesheets int     `json:"total_timesheets"`
}

// ApproverSummary is the organisation-wide dashboard shown to admins and managers.
type ApproverSummary struct {
	TotalHours       float64 `json:"total_hours"`
	ApprovedHours    float64 `json:"approved_hours"`
	PendingApprovals int     `json:"pending_approvals"`
	TotalProjects    int     `json:"total_projects"`
	TotalEmployees   int     `json:"total_employees"`
	TotalTimesheets  int     `json:"total_timesheets"`
}

// ForEmployee folds the employee's timesheets. Pending means submitted, drafts only count toward the total.
func ForEmployee(timesheets []*timesheet.Timesheet, assignedProjects int) EmployeeSummary {
	s := EmployeeSummary{
		TotalProjects:   assignedProjects,
		TotalTimesheets: len(timesheets),
	}
	for _, t := range timesheets {
		s.TotalHours += t.Hours
		switch t.Status {
		case timesheet.StatusApproved:
			s.ApprovedHours += t.Hours
		case timesheet.StatusSubmitted:
			s.PendingHours += t.Hours
		}
	}
	return s
}

// ForApprover folds every timesheet. PendingApprovals counts timesheets, not hours.
func ForApprover(timesheets []*timesheet.Timesheet, projects, employees int) ApproverSummary {
	s := ApproverSummary{
		TotalProjects:   projects,
		TotalEmployees:  employees,
		TotalTimesheets: len(timesheets),
	}
	for _, t := range timesheets {
		s.TotalHours += t.Hours
		switch t.Status {
		case timesheet.StatusApproved:
			s.ApprovedHours += t.Hours
		case timesheet.StatusSubmitted:
			s.PendingApprovals++
		}
	}
	return s
}
