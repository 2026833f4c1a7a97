package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"taskmanager/models"
)

// Status filter values accepted by the task list endpoint.
const (
	StatusFilterAll       = "all"
	StatusFilterCompleted = "completed"
	StatusFilterPending   = "pending"
)

// TaskFilter narrows a task listing within the owner's rows.
type TaskFilter struct {
	ProjectID *uint
	Status    string
	Sort      string
}

// TaskRepository handles persistence for tasks, always scoped to an owner.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return r.db.WithContext(ctx).Preload("Owner").Preload("AssignedTo").First(task, task.ID).Error
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uint, filter TaskFilter) ([]models.Task, error) {
	q := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("AssignedTo").
		Where("owner_id = ?", ownerID)

	if filter.ProjectID != nil {
		q = q.Where("project_id = ?", *filter.ProjectID)
	}
	switch filter.Status {
	case StatusFilterCompleted:
		q = q.Where("completed = ?", true)
	case StatusFilterPending:
		q = q.Where("completed = ?", false)
	}

	var tasks []models.Task
	if err := q.Order(orderClause(filter.Sort, "title")).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, ownerID, taskID uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("AssignedTo").
		Where("owner_id = ? AND id = ?", ownerID, taskID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID uint) error {
	res := r.db.WithContext(ctx).Where("owner_id = ? AND id = ?", ownerID, taskID).Delete(&models.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
