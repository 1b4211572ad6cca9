package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/beginnergain/server/internal/logger"
	"github.com/beginnergain/server/internal/model"
)

type Project struct {
	projectStore model.ProjectStore
	userStore    model.UserStore
	storage      model.Storage
	logger       *logger.Logger
}

func NewProject(
	projectStore model.ProjectStore,
	userStore model.UserStore,
	storage model.Storage,
	logger *logger.Logger,
) *Project {
	return &Project{
		projectStore: projectStore,
		userStore:    userStore,
		storage:      storage,
		logger:       logger,
	}
}

func (s *Project) Create(ctx context.Context, params model.CreateProjectParams) (model.Project, error) {
	_, err := s.userStore.GetByID(ctx, params.OwnerID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Project{}, fmt.Errorf("owner %s: %w", params.OwnerID, model.ErrNotFound)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to get owner by id: %w", err)
	}

	project := model.Project{
		ID:          uuid.New(),
		OwnerID:     params.OwnerID,
		Name:        params.Name,
		Description: params.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	savedProject, err := s.projectStore.Create(ctx, project)
	if err != nil {
		s.logger.Error("Project service: failed to create project",
			"owner_id", params.OwnerID,
			"error", err.Error())
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Project service: project created",
		"project_id", savedProject.ID,
		"owner_id", savedProject.OwnerID)

	return savedProject, nil
}

func (s *Project) FindAll(ctx context.Context) ([]model.Project, error) {
	projects, err := s.projectStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}

	return projects, nil
}

func (s *Project) FindOne(ctx context.Context, id uuid.UUID) (model.Project, error) {
	project, err := s.projectStore.GetByID(ctx, id)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to get project by id: %w", err)
	}

	return project, nil
}

// GetByUserID returns the user's projects in creation order. An owner with no
// projects yields an empty list, not an error.
func (s *Project) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	projects, err := s.projectStore.GetByOwnerID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects by owner id: %w", err)
	}

	return projects, nil
}

// Remove soft-deletes the project. Deletion is not idempotent: removing an
// already-deleted id surfaces model.ErrNotFound again.
func (s *Project) Remove(ctx context.Context, id uuid.UUID) error {
	project, err := s.projectStore.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get project by id: %w", err)
	}

	if err := s.projectStore.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if project.DocumentKey != "" {
		if err := s.storage.Delete(ctx, project.DocumentKey); err != nil {
			// The row is already gone; losing the orphan object is acceptable.
			s.logger.Error("Project service: failed to delete project document",
				"project_id", id,
				"key", project.DocumentKey,
				"error", err.Error())
		}
	}

	s.logger.Info("Project service: project removed",
		"project_id", id)

	return nil
}

// UploadDocument stores the project document for its owner.
func (s *Project) UploadDocument(ctx context.Context, userID, projectID uuid.UUID, reader io.Reader) error {
	project, err := s.projectStore.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to get project by id: %w", err)
	}

	if project.OwnerID != userID {
		return fmt.Errorf("project %s: %w", projectID, model.ErrNotFound)
	}

	key := documentKey(projectID)
	if err := s.storage.Upload(ctx, key, reader); err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}

	if err := s.projectStore.SetDocumentKey(ctx, projectID, key); err != nil {
		return fmt.Errorf("failed to set document key: %w", err)
	}

	s.logger.Info("Project service: document uploaded",
		"project_id", projectID,
		"key", key)

	return nil
}

// DownloadDocument streams the project document to its owner.
func (s *Project) DownloadDocument(ctx context.Context, userID, projectID uuid.UUID) (io.ReadCloser, error) {
	project, err := s.projectStore.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project by id: %w", err)
	}

	if project.OwnerID != userID {
		return nil, fmt.Errorf("project %s: %w", projectID, model.ErrNotFound)
	}

	if project.DocumentKey == "" {
		return nil, fmt.Errorf("project %s has no document: %w", projectID, model.ErrNotFound)
	}

	reader, err := s.storage.Download(ctx, project.DocumentKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download document: %w", err)
	}

	return reader, nil
}

func documentKey(projectID uuid.UUID) string {
	return fmt.Sprintf("projects/%s/document.md", projectID)
}
