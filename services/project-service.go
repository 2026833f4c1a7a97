package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"taskmanager/apperrors"
	"taskmanager/models"
	"taskmanager/repositories"
)

// ProjectInput carries the writable project fields.
type ProjectInput struct {
	Name        string
	Description string
}

// ProjectUpdate carries partial updates; nil fields are left unchanged.
// The owner is not updatable.
type ProjectUpdate struct {
	Name        *string
	Description *string
}

// ProjectService implements owner-scoped CRUD for projects.
type ProjectService struct {
	projects *repositories.ProjectRepository
}

func NewProjectService(projects *repositories.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

func (s *ProjectService) List(ctx context.Context, ownerID uint, sort string) ([]models.Project, error) {
	return s.projects.ListByOwner(ctx, ownerID, sort)
}

// Create stamps the owner from the authenticated identity; any client-supplied
// owner has already been discarded at the handler boundary.
func (s *ProjectService) Create(ctx context.Context, ownerID uint, in ProjectInput) (*models.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.NewValidation("name", "This field is required.")
	}
	project := &models.Project{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     &ownerID,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, ownerID, projectID uint) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, ownerID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("project")
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, ownerID, projectID uint, upd ProjectUpdate) (*models.Project, error) {
	project, err := s.Get(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeWrite(ownerID, project); err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, apperrors.NewValidation("name", "This field may not be blank.")
		}
		project.Name = *upd.Name
	}
	if upd.Description != nil {
		project.Description = *upd.Description
	}

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project and its tasks in one transaction.
func (s *ProjectService) Delete(ctx context.Context, ownerID, projectID uint) error {
	if err := s.projects.DeleteCascade(ctx, ownerID, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("project")
		}
		return err
	}
	return nil
}

// AuthorizeWrite rejects mutation of a project the identity does not own.
// Request flow reaches resources through owner-scoped queries, so this guards
// direct service callers.
func (s *ProjectService) AuthorizeWrite(ownerID uint, project *models.Project) error {
	if project.OwnerID == nil || *project.OwnerID != ownerID {
		return apperrors.NewForbidden("You do not have permission to modify this project")
	}
	return nil
}
