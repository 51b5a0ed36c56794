// Package policy decides whether an actor may perform an action on a resource.
// It is pure: callers load the resource attributes and pass them in.
package policy

import (
	"github.com/frahmantamala/timesheet-tracker/internal"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
)

type Action string

const (
	ActionCreateProject    Action = "create_project"
	ActionReadProject      Action = "read_project"
	ActionUpdateProject    Action = "update_project"
	ActionDeleteProject    Action = "delete_project"
	ActionListProjects     Action = "list_projects"
	ActionCreateTimesheet  Action = "create_timesheet"
	ActionReadTimesheet    Action = "read_timesheet"
	ActionUpdateTimesheet  Action = "update_timesheet"
	ActionDeleteTimesheet  Action = "delete_timesheet"
	ActionListTimesheets   Action = "list_timesheets"
	ActionApproveTimesheet Action = "approve_timesheet"
	ActionListAllUsers     Action = "list_all_users"
	ActionReadDashboard    Action = "read_dashboard"
)

// Resource carries the attributes a decision depends on.
// OwnerID is the timesheet's employee; AssignedEmployees is the project's member list.
type Resource struct {
	OwnerID           string
	AssignedEmployees []string
}

// Allow reports whether actor may perform action on res.
func Allow(actor *coreUser.Actor, action Action, res Resource) bool {
	return Authorize(actor, action, res) == nil
}

// Authorize returns nil when allowed, ErrUserInactive for inactive actors and
// ErrForbidden or ErrNotAssigned otherwise.
func Authorize(actor *coreUser.Actor, action Action, res Resource) error {
	if actor == nil {
		return internal.ErrInvalidToken
	}
	if !actor.IsActive {
		return internal.ErrUserInactive
	}

	switch action {
	case ActionCreateProject, ActionUpdateProject, ActionDeleteProject, ActionApproveTimesheet, ActionListAllUsers:
		if actor.Role.IsApprover() {
			return nil
		}
		return internal.ErrForbidden

	case ActionReadProject:
		if actor.Role.IsApprover() || contains(res.AssignedEmployees, actor.ID) {
			return nil
		}
		return internal.ErrForbidden

	case ActionCreateTimesheet:
		if actor.Role.IsApprover() || contains(res.AssignedEmployees, actor.ID) {
			return nil
		}
		return internal.ErrNotAssigned

	case ActionReadTimesheet, ActionUpdateTimesheet, ActionDeleteTimesheet:
		if actor.Role.IsApprover() || res.OwnerID == actor.ID {
			return nil
		}
		return internal.ErrForbidden

	case ActionListProjects, ActionListTimesheets, ActionReadDashboard:
		return nil
	}

	return internal.ErrForbidden
}

// ScopeEmployeeID returns the employee filter a listing must use.
// Employees are always pinned to themselves whatever they asked for.
func ScopeEmployeeID(actor *coreUser.Actor, requested string) string {
	if actor.IsEmployee() {
		return actor.ID
	}
	return requested
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
