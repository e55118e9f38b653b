package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"neuroforge-backend/internal/models"
)

// MemoryStore keeps everything in process memory. Listing preserves
// insertion order.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]models.User
	emails   map[string]uuid.UUID
	projects map[uuid.UUID]models.Project
	order    []uuid.UUID
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    map[uuid.UUID]models.User{},
		emails:   map[string]uuid.UUID{},
		projects: map[uuid.UUID]models.Project{},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *MemoryStore) CreateUser(_ context.Context, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(email)
	if _, ok := s.emails[key]; ok {
		return nil, ErrEmailTaken
	}
	u := models.User{
		ID:           uuid.New(),
		Email:        key,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}
	s.users[u.ID] = u
	s.emails[key] = u.ID
	return &u, nil
}

func (s *MemoryStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.emails[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.users[id]
	return &u, nil
}

func (s *MemoryStore) CreateProject(_ context.Context, ownerID uuid.UUID, contentType models.ContentType, prompt string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := models.Project{
		ID:        uuid.New(),
		UserID:    ownerID,
		Type:      contentType,
		Prompt:    prompt,
		Status:    models.StatusProcessing,
		Metadata:  map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.projects[p.ID] = p
	s.order = append(s.order, p.ID)
	return cloneProject(p), nil
}

func (s *MemoryStore) GetProject(_ context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneProject(p), nil
}

func (s *MemoryStore) ListProjectsByOwner(_ context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Project, 0)
	for _, id := range s.order {
		if p := s.projects[id]; p.UserID == ownerID {
			out = append(out, *cloneProject(p))
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateProject(_ context.Context, id uuid.UUID, update models.ProjectUpdate) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	p = *cloneProject(p)
	update.Apply(&p)
	p.UpdatedAt = s.now()
	s.projects[id] = p
	return cloneProject(p), nil
}

func (s *MemoryStore) ListProjectsByStatus(_ context.Context, status models.ProjectStatus, olderThan time.Time) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Project, 0)
	for _, id := range s.order {
		p := s.projects[id]
		if p.Status == status && !p.CreatedAt.After(olderThan) {
			out = append(out, *cloneProject(p))
		}
	}
	return out, nil
}

// cloneProject copies the metadata map so callers never share it with the store.
func cloneProject(p models.Project) *models.Project {
	if p.Metadata != nil {
		md := make(map[string]interface{}, len(p.Metadata))
		for k, v := range p.Metadata {
			md[k] = v
		}
		p.Metadata = md
	}
	return &p
}
