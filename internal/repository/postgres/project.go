package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/beginnergain/server/internal/model"
)

var _ model.ProjectStore = (*ProjectRepository)(nil)

type ProjectRepository struct {
	db *Connection
}

func NewProjectRepository(db *Connection) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project model.Project) (model.Project, error) {
	query := `INSERT INTO projects (id, owner_user_id, name, description, document_key, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, owner_user_id, name, description, document_key, created_at, updated_at, deleted_at`

	var savedProject model.Project
	err := r.db.QueryRow(ctx, query,
		project.ID, project.OwnerID, project.Name, project.Description, project.DocumentKey,
		project.CreatedAt, project.UpdatedAt,
	).Scan(
		&savedProject.ID, &savedProject.OwnerID, &savedProject.Name, &savedProject.Description,
		&savedProject.DocumentKey, &savedProject.CreatedAt, &savedProject.UpdatedAt, &savedProject.DeletedAt,
	)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	return savedProject, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Project, error) {
	var project model.Project
	query := `SELECT id, owner_user_id, name, description, document_key, created_at, updated_at, deleted_at
			  FROM projects WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&project.ID, &project.OwnerID, &project.Name, &project.Description,
		&project.DocumentKey, &project.CreatedAt, &project.UpdatedAt, &project.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Project{}, model.ErrNotFound
		}
		return model.Project{}, fmt.Errorf("failed to get project by id: %w", err)
	}

	return project, nil
}

// GetAll returns all live projects in creation order.
func (r *ProjectRepository) GetAll(ctx context.Context) ([]model.Project, error) {
	query := `SELECT id, owner_user_id, name, description, document_key, created_at, updated_at, deleted_at
			  FROM projects WHERE deleted_at IS NULL
			  ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// GetByOwnerID returns the owner's live projects in creation order.
func (r *ProjectRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Project, error) {
	query := `SELECT id, owner_user_id, name, description, document_key, created_at, updated_at, deleted_at
			  FROM projects WHERE owner_user_id = $1 AND deleted_at IS NULL
			  ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects by owner id: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func (r *ProjectRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE projects SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) SetDocumentKey(ctx context.Context, id uuid.UUID, key string) error {
	const query = `UPDATE projects SET document_key = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, id, key)
	if err != nil {
		return fmt.Errorf("failed to set project document key: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func scanProjects(rows pgx.Rows) ([]model.Project, error) {
	var projects []model.Project
	for rows.Next() {
		var project model.Project
		err := rows.Scan(
			&project.ID, &project.OwnerID, &project.Name, &project.Description,
			&project.DocumentKey, &project.CreatedAt, &project.UpdatedAt, &project.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}
