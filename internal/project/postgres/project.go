package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/timesheet-tracker/internal"
	projectDatamodel "github.com/frahmantamala/timesheet-tracker/internal/core/datamodel/project"
	"github.com/frahmantamala/timesheet-tracker/internal/project"
)

// ProjectRepository implements the project.Repository interface using GORM
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

var _ project.Repository = (*ProjectRepository)(nil)

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	row := project.ToDataModel(p)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Assignments").Create(row).Error; err != nil {
			return err
		}
		return insertAssignments(tx, row.Assignments)
	})
	return mapError(err, "failed to create project")
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*project.Project, error) {
	var row projectDatamodel.Project
	err := r.db.WithContext(ctx).
		Preload("Assignments", byPosition).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, mapError(err, "failed to get project")
	}
	return project.FromDataModel(&row), nil
}

func (r *ProjectRepository) List(ctx context.Context, employeeID string) ([]*project.Project, error) {
	db := r.db.WithContext(ctx)
	query := db.Preload("Assignments", byPosition).Order("created_at ASC, id ASC")
	if employeeID != "" {
		assigned := db.Model(&projectDatamodel.ProjectAssignment{}).
			Select("project_id").
			Where("employee_id = ?", employeeID)
		query = query.Where("id IN (?)", assigned)
	}

	var rows []*projectDatamodel.Project
	if err := query.Find(&rows).Error; err != nil {
		return nil, mapError(err, "failed to list projects")
	}
	return project.FromDataModelSlice(rows), nil
}

// Update overwrites the row and its member list. Concurrent writers: last write wins.
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	row := project.ToDataModel(p)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&projectDatamodel.Project{}).
			Where("id = ?", row.ID).
			Updates(map[string]interface{}{
				"name":        row.Name,
				"description": row.Description,
				"start_date":  row.StartDate,
				"end_date":    row.EndDate,
				"status":      row.Status,
				"updated_at":  row.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrProjectNotFound
		}

		if err := tx.Where("project_id = ?", row.ID).Delete(&projectDatamodel.ProjectAssignment{}).Error; err != nil {
			return err
		}
		return insertAssignments(tx, row.Assignments)
	})
	return mapError(err, "failed to update project")
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&projectDatamodel.ProjectAssignment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&projectDatamodel.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrProjectNotFound
		}
		return nil
	})
	return mapError(err, "failed to delete project")
}

func insertAssignments(tx *gorm.DB, assignments []projectDatamodel.ProjectAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return tx.Create(&assignments).Error
}

func mapError(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return internal.ErrProjectNotFound
	}
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr
	}
	return internal.NewUnavailableError(message, err)
}
