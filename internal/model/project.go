package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProjectStore defines persistence operations for projects.
type ProjectStore interface {
	Create(ctx context.Context, project Project) (Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (Project, error)
	GetAll(ctx context.Context) ([]Project, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Project, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	SetDocumentKey(ctx context.Context, id uuid.UUID, key string) error
}

// Project represents a stored project entity.
type Project struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	DocumentKey string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// CreateProjectParams contains parameters to create a project.
type CreateProjectParams struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
}
