package supabase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"neuroforge-backend/internal/database"
	"neuroforge-backend/internal/models"
	"neuroforge-backend/internal/store"
)

const uniqueViolation = "23505"

// DatabaseClient is the Postgres-backed store.Store.
type DatabaseClient struct {
	db *sql.DB
}

var _ store.Store = (*DatabaseClient)(nil)

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		p                      models.Project
		projectType, status    string
		linkVideo, linkRoteiro sql.NullString
		linkAudio              sql.NullString
		metadata               []byte
	)
	err := row.Scan(
		&p.ID, &p.UserID, &projectType, &p.Prompt, &status,
		&linkVideo, &linkRoteiro, &linkAudio, &metadata,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Type = models.ContentType(projectType)
	p.Status = models.ProjectStatus(status)
	p.LinkVideo = nullToPtr(linkVideo)
	p.LinkRoteiro = nullToPtr(linkRoteiro)
	p.LinkAudio = nullToPtr(linkAudio)
	p.Metadata = map[string]interface{}{}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode project metadata: %w", err)
		}
	}
	return &p, nil
}

func nullToPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func ptrToNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

func (d *DatabaseClient) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := scanUser(d.db.QueryRowContext(ctx, database.InsertUser, uuid.New(), email, passwordHash))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, store.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (d *DatabaseClient) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(d.db.QueryRowContext(ctx, database.SelectUserByID, id))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (d *DatabaseClient) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := scanUser(d.db.QueryRowContext(ctx, database.SelectUserByEmail, email))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (d *DatabaseClient) CreateProject(ctx context.Context, ownerID uuid.UUID, contentType models.ContentType, prompt string) (*models.Project, error) {
	project, err := scanProject(d.db.QueryRowContext(ctx, database.InsertProject,
		uuid.New(), ownerID, string(contentType), prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (d *DatabaseClient) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := scanProject(d.db.QueryRowContext(ctx, database.SelectProjectByID, id))
	if err != nil {
		return nil, notFound(err, "project")
	}
	return project, nil
}

func (d *DatabaseClient) ListProjectsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	return d.listProjects(ctx, database.SelectProjectsByOwner, ownerID)
}

func (d *DatabaseClient) ListProjectsByStatus(ctx context.Context, status models.ProjectStatus, olderThan time.Time) ([]models.Project, error) {
	return d.listProjects(ctx, database.SelectProjectsByStatus, string(status), olderThan)
}

func (d *DatabaseClient) listProjects(ctx context.Context, query string, args ...interface{}) ([]models.Project, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

func (d *DatabaseClient) UpdateProject(ctx context.Context, id uuid.UUID, update models.ProjectUpdate) (*models.Project, error) {
	metadata := update.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode project metadata: %w", err)
	}

	var status sql.NullString
	if update.Status != nil {
		status = sql.NullString{String: string(*update.Status), Valid: true}
	}

	project, err := scanProject(d.db.QueryRowContext(ctx, database.UpdateProject,
		id, status,
		ptrToNull(update.LinkVideo), ptrToNull(update.LinkRoteiro), ptrToNull(update.LinkAudio),
		string(metadataJSON),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
