package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/beginnergain/server/internal/logger"
	"github.com/beginnergain/server/internal/model"
)

// ProjectService defines business operations for projects.
type ProjectService interface {
	Create(ctx context.Context, params model.CreateProjectParams) (model.Project, error)
	FindAll(ctx context.Context) ([]model.Project, error)
	FindOne(ctx context.Context, id uuid.UUID) (model.Project, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	Remove(ctx context.Context, id uuid.UUID) error
	UploadDocument(ctx context.Context, userID, projectID uuid.UUID, reader io.Reader) error
	DownloadDocument(ctx context.Context, userID, projectID uuid.UUID) (io.ReadCloser, error)
}

// Project handles HTTP endpoints for projects.
type Project struct {
	projectService ProjectService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProject creates a new Project handler.
func NewProject(projectService ProjectService, contextManager model.ContextManager, logger *logger.Logger) *Project {
	return &Project{
		projectService: projectService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createProjectRequest struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type projectResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HasDocument bool      `json:"hasDocument"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProjectResponse(p model.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		UserID:      p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		HasDocument: p.DocumentKey != "",
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectResponses(projects []model.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}

// Create creates a new project for the given owner.
func (h *Project) Create(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	ownerID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "userId must be a valid user id")
		return
	}

	project, err := h.projectService.Create(r.Context(), model.CreateProjectParams{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		// An unknown owner is a malformed request here, not a missing resource.
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "userId must reference an existing user")
			return
		}
		h.logger.Error("Project handler: create failed",
			"owner_id", ownerID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(project))
}

// List returns all projects in creation order.
func (h *Project) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.FindAll(r.Context())
	if err != nil {
		h.logger.Error("Project handler: list failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponses(projects))
}

// ListByUser returns the projects owned by a user, empty list included.
func (h *Project) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		writeJSON(w, http.StatusOK, []projectResponse{})
		return
	}

	projects, err := h.projectService.GetByUserID(r.Context(), userID)
	if err != nil {
		h.logger.Error("Project handler: list by user failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponses(projects))
}

// GetByID returns a single project.
func (h *Project) GetByID(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	project, err := h.projectService.FindOne(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

// Delete removes a project.
func (h *Project) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.projectService.Remove(r.Context(), projectID); err != nil {
		h.logger.Info("Project handler: delete failed",
			"project_id", projectID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadDocument stores the project document for the authenticated owner.
func (h *Project) UploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := h.projectService.UploadDocument(r.Context(), userID, projectID, r.Body); err != nil {
		h.logger.Error("Project handler: document upload failed",
			"project_id", projectID,
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "uploaded"})
}

// DownloadDocument streams the project document to the authenticated owner.
func (h *Project) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	reader, err := h.projectService.DownloadDocument(r.Context(), userID, projectID)
	if err != nil {
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("Project handler: document stream failed",
			"project_id", projectID,
			"error", err.Error())
	}
}
