package timesheet

import (
	"time"

	"github.com/frahmantamala/timesheet-tracker/internal"
	timesheetDatamodel "github.com/frahmantamala/timesheet-tracker/internal/core/datamodel/timesheet"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/policy"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

var Statuses = []string{string(StatusDraft), string(StatusSubmitted), string(StatusApproved), string(StatusRejected)}

// IsTerminal reports whether the status is a manager decision.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Timesheet struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	ProjectID       string     `json:"project_id"`
	Date            time.Time  `json:"date"`
	Hours           float64    `json:"hours"`
	Description     string     `json:"description"`
	Status          Status     `json:"status"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	ApprovedAt      *time.Time `json:"approved_at"`
	ApprovedBy      *string    `json:"approved_by"`
	RejectedAt      *time.Time `json:"rejected_at"`
	RejectedBy      *string    `json:"rejected_by"`
	RejectionReason *string    `json:"rejection_reason"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func NewTimesheet(id, employeeID string, dto CreateTimesheetDTO, now time.Time) *Timesheet {
	return &Timesheet{
		ID:          id,
		EmployeeID:  employeeID,
		ProjectID:   dto.ProjectID,
		Date:        dto.Date,
		Hours:       dto.Hours,
		Description: dto.Description,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (t *Timesheet) Resource() policy.Resource {
	return policy.Resource{OwnerID: t.EmployeeID}
}

// ApplyUpdate merges the provided fields. Employees cannot touch decided
// timesheets and can only move between draft and submitted. Approvers may
// reopen a decided timesheet but not re-decide it.
func (t *Timesheet) ApplyUpdate(actor *coreUser.Actor, dto UpdateTimesheetDTO, now time.Time) error {
	if actor.IsEmployee() && t.Status.IsTerminal() {
		return internal.ErrCannotModifyTimesheet
	}

	var next Status
	if dto.Status != nil {
		next = Status(*dto.Status)
		if actor.IsEmployee() && next.IsTerminal() {
			return internal.ErrInvalidTransition
		}
		if next.IsTerminal() && t.Status.IsTerminal() {
			return internal.ErrAlreadyDecided
		}
	}

	if dto.Hours != nil {
		t.Hours = *dto.Hours
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}

	if dto.Status != nil {
		t.transition(next, actor.ID, nil, now)
		return nil
	}
	t.UpdatedAt = now
	return nil
}

// Decide records a manager's approval or rejection. Reason is kept only on rejection.
func (t *Timesheet) Decide(actor *coreUser.Actor, status Status, reason *string, now time.Time) error {
	if !status.IsTerminal() {
		return internal.ErrInvalidApprovalStatus
	}
	if t.Status.IsTerminal() {
		return internal.ErrAlreadyDecided
	}
	if status != StatusRejected {
		reason = nil
	}
	t.transition(status, actor.ID, reason, now)
	return nil
}

func (t *Timesheet) CheckDelete(actor *coreUser.Actor) error {
	if actor.IsEmployee() && t.Status.IsTerminal() {
		return internal.ErrCannotDeleteTimesheet
	}
	return nil
}

// transition is the only place that changes Status. It stamps the fields
// belonging to the target state and clears the ones of any other decision.
func (t *Timesheet) transition(to Status, actorID string, reason *string, now time.Time) {
	switch to {
	case StatusDraft:
		t.clearDecision()
	case StatusSubmitted:
		t.SubmittedAt = &now
		t.clearDecision()
	case StatusApproved:
		t.ApprovedAt = &now
		t.ApprovedBy = &actorID
		t.RejectedAt = nil
		t.RejectedBy = nil
		t.RejectionReason = nil
	case StatusRejected:
		t.RejectedAt = &now
		t.RejectedBy = &actorID
		t.RejectionReason = reason
		t.ApprovedAt = nil
		t.ApprovedBy = nil
	}
	t.Status = to
	t.UpdatedAt = now
}

func (t *Timesheet) clearDecision() {
	t.ApprovedAt = nil
	t.ApprovedBy = nil
	t.RejectedAt = nil
	t.RejectedBy = nil
	t.RejectionReason = nil
}

func ToDataModel(t *Timesheet) *timesheetDatamodel.Timesheet {
	return &timesheetDatamodel.Timesheet{
		ID:              t.ID,
		EmployeeID:      t.EmployeeID,
		ProjectID:       t.ProjectID,
		Date:            t.Date,
		Hours:           t.Hours,
		Description:     t.Description,
		Status:          string(t.Status),
		SubmittedAt:     t.SubmittedAt,
		ApprovedAt:      t.ApprovedAt,
		ApprovedBy:      t.ApprovedBy,
		RejectedAt:      t.RejectedAt,
		RejectedBy:      t.RejectedBy,
		RejectionReason: t.RejectionReason,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func FromDataModel(t *timesheetDatamodel.Timesheet) *Timesheet {
	return &Timesheet{
		ID:              t.ID,
		EmployeeID:      t.EmployeeID,
		ProjectID:       t.ProjectID,
		Date:            t.Date,
		Hours:           t.Hours,
		Description:     t.Description,
		Status:          Status(t.Status),
		SubmittedAt:     t.SubmittedAt,
		ApprovedAt:      t.ApprovedAt,
		ApprovedBy:      t.ApprovedBy,
		RejectedAt:      t.RejectedAt,
		RejectedBy:      t.RejectedBy,
		RejectionReason: t.RejectionReason,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func FromDataModelSlice(timesheets []*timesheetDatamodel.Timesheet) []*Timesheet {
	result := make([]*Timesheet, len(timesheets))
	for i, t := range timesheets {
		result[i] = FromDataModel(t)
	}
	return result
}
