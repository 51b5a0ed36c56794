package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/timesheet-tracker/internal"
	timesheetDatamodel "github.com/frahmantamala/timesheet-tracker/internal/core/datamodel/timesheet"
	"github.com/frahmantamala/timesheet-tracker/internal/timesheet"
)

// TimesheetRepository implements the timesheet.Repository interface using GORM
type TimesheetRepository struct {
	db *gorm.DB
}

func NewTimesheetRepository(db *gorm.DB) *TimesheetRepository {
	return &TimesheetRepository{db: db}
}

var _ timesheet.Repository = (*TimesheetRepository)(nil)

func (r *TimesheetRepository) Create(ctx context.Context, t *timesheet.Timesheet) error {
	row := timesheet.ToDataModel(t)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return mapError(err, "failed to create timesheet")
	}
	return nil
}

func (r *TimesheetRepository) GetByID(ctx context.Context, id string) (*timesheet.Timesheet, error) {
	var row timesheetDatamodel.Timesheet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, mapError(err, "failed to get timesheet")
	}
	return timesheet.FromDataModel(&row), nil
}

// List applies every non-empty filter field as an equality match.
func (r *TimesheetRepository) List(ctx context.Context, filter timesheet.Filter) ([]*timesheet.Timesheet, error) {
	query := r.db.WithContext(ctx).Model(&timesheetDatamodel.Timesheet{})
	if filter.ProjectID != "" {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var rows []*timesheetDatamodel.Timesheet
	if err := query.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, mapError(err, "failed to list timesheets")
	}
	return timesheet.FromDataModelSlice(rows), nil
}

// Update writes the mutable columns. Nil stamps are written as NULL.
func (r *TimesheetRepository) Update(ctx context.Context, t *timesheet.Timesheet) error {
	row := timesheet.ToDataModel(t)
	res := r.db.WithContext(ctx).
		Model(&timesheetDatamodel.Timesheet{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"hours":            row.Hours,
			"description":      row.Description,
			"status":           row.Status,
			"submitted_at":     row.SubmittedAt,
			"approved_at":      row.ApprovedAt,
			"approved_by":      row.ApprovedBy,
			"rejected_at":      row.RejectedAt,
			"rejected_by":      row.RejectedBy,
			"rejection_reason": row.RejectionReason,
			"updated_at":       row.UpdatedAt,
		})
	if res.Error != nil {
		return mapError(res.Error, "failed to update timesheet")
	}
	if res.RowsAffected == 0 {
		return internal.ErrTimesheetNotFound
	}
	return nil
}

func (r *TimesheetRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&timesheetDatamodel.Timesheet{})
	if res.Error != nil {
		return mapError(res.Error, "failed to delete timesheet")
	}
	if res.RowsAffected == 0 {
		return internal.ErrTimesheetNotFound
	}
	return nil
}

func mapError(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return internal.ErrTimesheetNotFound
	}
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr
	}
	return internal.NewUnavailableError(message, err)
}
