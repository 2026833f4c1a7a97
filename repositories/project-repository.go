package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskmanager/models"
)

// Sort values accepted by list endpoints. Anything else falls back to the
// default ordering.
const (
	SortCreatedAt = "created_at"
	SortName      = "name"
	SortRecent    = "recent"
)

// orderClause maps a sort parameter to an ORDER BY expression. nameColumn is
// the column "name" sorts on (projects sort by name, tasks by title).
func orderClause(sort, nameColumn string) string {
	switch sort {
	case SortName:
		return nameColumn
	case SortRecent:
		return "created_at DESC"
	default:
		return "created_at"
	}
}

// ProjectRepository handles persistence for projects. Every query takes the
// owner ID so scoping can never be forgotten at a call site.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return r.db.WithContext(ctx).Preload("Owner").First(project, project.ID).Error
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID uint, sort string) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order(orderClause(sort, "name")).
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, ownerID, projectID uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ? AND id = ?", ownerID, projectID).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Save(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// DeleteCascade removes a project and all of its tasks in one transaction.
// The tasks are deleted explicitly rather than relying on the FK constraint
// so the cascade behaves the same on every backend.
func (r *ProjectRepository) DeleteCascade(ctx context.Context, ownerID, projectID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("owner_id = ? AND id = ?", ownerID, projectID).First(&project).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("delete project tasks: %w", err)
		}
		if err := tx.Delete(&project).Error; err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
}
