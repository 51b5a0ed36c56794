package timesheet

import (
	"time"

	"github.com/frahmantamala/timesheet-tracker/internal"
	"github.com/frahmantamala/timesheet-tracker/internal/core/common/validation"
)

// CreateTimesheetDTO represents the request payload for logging hours
type CreateTimesheetDTO struct {
	ProjectID   string    `json:"project_id"`
	Date        time.Time `json:"date"`
	Hours       float64   `json:"hours"`
	Description string    `json:"description"`
}

func (dto CreateTimesheetDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("project_id", dto.ProjectID).Required()
	v.Field("date", dto.Date).Required()
	v.Field("hours", dto.Hours).Custom(func(interface{}) *internal.AppError {
		return validation.ValidateHours(&dto.Hours)
	})
	v.Field("description", dto.Description).MaxLength(2000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateTimesheetDTO is a partial update: nil fields are left unchanged.
type UpdateTimesheetDTO struct {
	Hours       *float64 `json:"hours,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty"`
}

func (dto UpdateTimesheetDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("hours", dto.Hours).Custom(func(interface{}) *internal.AppError {
		return validation.ValidateHours(dto.Hours)
	})
	if dto.Status != nil {
		v.Field("status", *dto.Status).Required().OneOf(Statuses, internal.ErrCodeInvalidStatus)
	}
	if dto.Description != nil {
		v.Field("description", *dto.Description).MaxLength(2000)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ApprovalDTO is the body of POST /timesheets/{id}/approve
type ApprovalDTO struct {
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func (dto ApprovalDTO) Validate() error {
	if s := Status(dto.Status); !s.IsTerminal() {
		return internal.ErrInvalidApprovalStatus
	}
	return nil
}

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	ProjectID  string
	EmployeeID string
	Status     Status
}
