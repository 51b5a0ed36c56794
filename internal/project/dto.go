package project

import (
	"time"

	"github.com/frahmantamala/timesheet-tracker/internal"
	"github.com/frahmantamala/timesheet-tracker/internal/core/common/validation"
)

// ProjectDTO is the body of both POST /projects and PUT /projects/{id}.
type ProjectDTO struct {
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	Status            string     `json:"status,omitempty"`
	AssignedEmployees []string   `json:"assigned_employees"`
}

func (dto ProjectDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(200)
	v.Field("description", dto.Description).MaxLength(2000)
	v.Field("start_date", dto.StartDate).Required()
	v.Field("end_date", dto.EndDate).NotBefore(dto.StartDate, "start_date")
	v.Field("status", dto.Status).OneOf(Statuses, internal.ErrCodeInvalidStatus)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
