package project

import (
	"time"

	projectDatamodel "github.com/frahmantamala/timesheet-tracker/internal/core/datamodel/project"
	"github.com/frahmantamala/timesheet-tracker/internal/policy"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusCompleted Status = "completed"
)

var Statuses = []string{string(StatusActive), string(StatusInactive), string(StatusCompleted)}

type Project struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           *time.Time `json:"end_date,omitempty"`
	Status            Status     `json:"status"`
	AssignedEmployees []string   `json:"assigned_employees"`
	CreatedBy         string     `json:"created_by"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func NewProject(id, createdBy string, dto ProjectDTO, now time.Time) *Project {
	p := &Project{
		ID:        id,
		Status:    StatusActive,
		CreatedBy: createdBy,
		CreatedAt: now,
	}
	p.Replace(dto, now)
	return p
}

// Replace overwrites every mutable field. An empty status keeps the current one.
func (p *Project) Replace(dto ProjectDTO, now time.Time) {
	p.Name = dto.Name
	p.Description = dto.Description
	p.StartDate = dto.StartDate
	p.EndDate = dto.EndDate
	if dto.Status != "" {
		p.Status = Status(dto.Status)
	}
	p.AssignedEmployees = uniqueOrdered(dto.AssignedEmployees)
	p.UpdatedAt = now
}

func (p *Project) IsAssigned(employeeID string) bool {
	for _, id := range p.AssignedEmployees {
		if id == employeeID {
			return true
		}
	}
	return false
}

func (p *Project) Resource() policy.Resource {
	return policy.Resource{AssignedEmployees: p.AssignedEmployees}
}

func uniqueOrdered(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func ToDataModel(p *Project) *projectDatamodel.Project {
	assignments := make([]projectDatamodel.ProjectAssignment, len(p.AssignedEmployees))
	for i, id := range p.AssignedEmployees {
		assignments[i] = projectDatamodel.ProjectAssignment{
			ProjectID:  p.ID,
			EmployeeID: id,
			Position:   i,
		}
	}
	return &projectDatamodel.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      string(p.Status),
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Assignments: assignments,
	}
}

// FromDataModel expects Assignments to be loaded in position order.
func FromDataModel(p *projectDatamodel.Project) *Project {
	assigned := make([]string, len(p.Assignments))
	for i, a := range p.Assignments {
		assigned[i] = a.EmployeeID
	}
	return &Project{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		Status:            Status(p.Status),
		AssignedEmployees: assigned,
		CreatedBy:         p.CreatedBy,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func FromDataModelSlice(projects []*projectDatamodel.Project) []*Project {
	result := make([]*Project, len(projects))
	for i, p := range projects {
		result[i] = FromDataModel(p)
	}
	return result
}
