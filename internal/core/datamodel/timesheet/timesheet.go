package timesheet

import "time"

type Timesheet struct {
	ID              string     `gorm:"column:id;primaryKey;type:varchar(36)"`
	EmployeeID      string     `gorm:"column:employee_id;type:varchar(36);not null;index"`
	ProjectID       string     `gorm:"column:project_id;type:varchar(36);not null;index"`
	Date            time.Time  `gorm:"column:date;not null"`
	Hours           float64    `gorm:"column:hours;not null"`
	Description     string     `gorm:"column:description"`
	Status          string     `gorm:"column:status;not null;index"`
	SubmittedAt     *time.Time `gorm:"column:submitted_at"`
	ApprovedAt      *time.Time `gorm:"column:approved_at"`
	ApprovedBy      *string    `gorm:"column:approved_by;type:varchar(36)"`
	RejectedAt      *time.Time `gorm:"column:rejected_at"`
	RejectedBy      *string    `gorm:"column:rejected_by;type:varchar(36)"`
	RejectionReason *string    `gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}
