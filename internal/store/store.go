package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"neuroforge-backend/internal/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Store persists users and generation projects.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateProject(ctx context.Context, ownerID uuid.UUID, contentType models.ContentType, prompt string) (*models.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListProjectsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, update models.ProjectUpdate) (*models.Project, error)
	// ListProjectsByStatus returns projects in status created at or before olderThan.
	ListProjectsByStatus(ctx context.Context, status models.ProjectStatus, olderThan time.Time) ([]models.Project, error)
}
