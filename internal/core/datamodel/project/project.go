package project

import "time"

type Project struct {
	ID          string              `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name        string              `gorm:"column:name;not null"`
	Description string              `gorm:"column:description"`
	StartDate   time.Time           `gorm:"column:start_date;not null"`
	EndDate     *time.Time          `gorm:"column:end_date"`
	Status      string              `gorm:"column:status;not null"`
	CreatedBy   string              `gorm:"column:created_by;type:varchar(36);not null"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime:false"`
	Assignments []ProjectAssignment `gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectAssignment links an employee to a project. Position keeps the member list ordered.
type ProjectAssignment struct {
	ProjectID  string `gorm:"column:project_id;primaryKey;type:varchar(36)"`
	EmployeeID string `gorm:"column:employee_id;primaryKey;type:varchar(36);index"`
	Position   int    `gorm:"column:position;not null"`
}

func (ProjectAssignment) TableName() string {
	return "project_assignments"
}
