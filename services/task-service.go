package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskmanager/apperrors"
	"taskmanager/models"
	"taskmanager/repositories"
)

// TaskInput carries the writable task fields on create. An empty status
// defaults to "todo".
type TaskInput struct {
	ProjectID    uint
	Title        string
	Description  string
	Status       string
	AssignedToID *uint
	DueDate      *time.Time
	Completed    bool
}

// TaskUpdate carries partial updates; nil fields are left unchanged. The
// owner is not updatable.
type TaskUpdate struct {
	ProjectID    *uint
	Title        *string
	Description  *string
	Status       *string
	AssignedToID *uint
	DueDate      *time.Time
	Completed    *bool
}

// TaskService implements owner-scoped CRUD for tasks. It checks that the
// parent project is in the caller's scope and that an assignee, if given,
// exists.
type TaskService struct {
	tasks    *repositories.TaskRepository
	projects *repositories.ProjectRepository
	users    *repositories.UserRepository
}

func NewTaskService(tasks *repositories.TaskRepository, projects *repositories.ProjectRepository, users *repositories.UserRepository) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users}
}

func (s *TaskService) List(ctx context.Context, ownerID uint, filter repositories.TaskFilter) ([]models.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID, filter)
}

func (s *TaskService) Create(ctx context.Context, ownerID uint, in TaskInput) (*models.Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperrors.NewValidation("title", "This field is required.")
	}

	status := models.StatusTodo
	if in.Status != "" {
		status = models.TaskStatus(in.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidation("status", fmt.Sprintf("%q is not a valid choice.", in.Status))
		}
	}

	if err := s.checkProject(ctx, ownerID, in.ProjectID); err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, in.AssignedToID); err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:    in.ProjectID,
		Title:        in.Title,
		Description:  in.Description,
		Status:       status,
		OwnerID:      ownerID,
		AssignedToID: in.AssignedToID,
		DueDate:      in.DueDate,
		Completed:    in.Completed,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, ownerID, taskID uint) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("task")
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID uint, upd TaskUpdate) (*models.Task, error) {
	task, err := s.Get(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeWrite(ownerID, task); err != nil {
		return nil, err
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, apperrors.NewValidation("title", "This field may not be blank.")
		}
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Status != nil {
		status := models.TaskStatus(*upd.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidation("status", fmt.Sprintf("%q is not a valid choice.", *upd.Status))
		}
		task.Status = status
	}
	if upd.ProjectID != nil {
		if err := s.checkProject(ctx, ownerID, *upd.ProjectID); err != nil {
			return nil, err
		}
		task.ProjectID = *upd.ProjectID
	}
	if upd.AssignedToID != nil {
		if err := s.checkAssignee(ctx, upd.AssignedToID); err != nil {
			return nil, err
		}
		task.AssignedToID = upd.AssignedToID
		task.AssignedTo = nil
	}
	if upd.DueDate != nil {
		task.DueDate = upd.DueDate
	}
	if upd.Completed != nil {
		task.Completed = *upd.Completed
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID, taskID)
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uint) error {
	if err := s.tasks.Delete(ctx, ownerID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("task")
		}
		return err
	}
	return nil
}

// AuthorizeWrite rejects mutation of a task the identity does not own.
func (s *TaskService) AuthorizeWrite(ownerID uint, task *models.Task) error {
	if task.OwnerID != ownerID {
		return apperrors.NewForbidden("You do not have permission to modify this task")
	}
	return nil
}

// checkProject requires the parent project to exist within the caller's own
// rows. Pointing a task at another user's project fails validation instead of
// revealing whether that project exists.
func (s *TaskService) checkProject(ctx context.Context, ownerID, projectID uint) error {
	if projectID == 0 {
		return apperrors.NewValidation("project", "This field is required.")
	}
	if _, err := s.projects.FindByID(ctx, ownerID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewValidation("project", "Invalid project.")
		}
		return err
	}
	return nil
}

func (s *TaskService) checkAssignee(ctx context.Context, assigneeID *uint) error {
	if assigneeID == nil {
		return nil
	}
	if _, err := s.users.FindByID(ctx, *assigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewValidation("assigned_to", "Invalid user.")
		}
		return err
	}
	return nil
}
