package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neuroforge-backend/internal/models"
	"neuroforge-backend/internal/store"
)

func TestMemoryStore_CreateUser(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	user, err := s.CreateUser(ctx, " Ana@Example.com ", "hash")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)

	found, err := s.GetUserByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	byID, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", byID.PasswordHash)
}

func TestMemoryStore_CreateUser_DuplicateEmail(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, "ana@example.com", "hash")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "Ana@Example.com", "other")
	assert.ErrorIs(t, err, store.ErrEmailTaken)
}

func TestMemoryStore_UnknownIDs(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	_, err := s.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetProject(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)

	status := models.StatusCompleted
	_, err = s.UpdateProject(ctx, uuid.New(), models.ProjectUpdate{Status: &status})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_CreateProject(t *testing.T) {
	s := store.NewMemoryStore()
	owner := uuid.New()

	project, err := s.CreateProject(context.Background(), owner, models.ContentTikTok, "receitas")
	require.NoError(t, err)

	assert.Equal(t, owner, project.UserID)
	assert.Equal(t, models.StatusProcessing, project.Status)
	assert.Equal(t, models.ContentTikTok, project.Type)
	assert.Nil(t, project.LinkVideo)
	assert.Nil(t, project.LinkRoteiro)
	assert.Nil(t, project.LinkAudio)
	assert.NotNil(t, project.Metadata)
	assert.Empty(t, project.Metadata)
	assert.False(t, project.CreatedAt.IsZero())
}

func TestMemoryStore_UpdateProject_PartialMerge(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	project, err := s.CreateProject(ctx, uuid.New(), models.ContentVSL, "curso")
	require.NoError(t, err)

	video := "https://cdn.example.com/v.mp4"
	_, err = s.UpdateProject(ctx, project.ID, models.ProjectUpdate{
		LinkVideo: &video,
		Metadata:  map[string]interface{}{"analysis": "ok"},
	})
	require.NoError(t, err)

	status := models.StatusCompleted
	updated, err := s.UpdateProject(ctx, project.ID, models.ProjectUpdate{
		Status:   &status,
		Metadata: map[string]interface{}{"processedAt": "now"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, updated.Status)
	require.NotNil(t, updated.LinkVideo)
	assert.Equal(t, video, *updated.LinkVideo)
	assert.Nil(t, updated.LinkAudio)
	assert.Equal(t, "curso", updated.Prompt)
	assert.Equal(t, "ok", updated.Metadata["analysis"])
	assert.Equal(t, "now", updated.Metadata["processedAt"])
}

func TestMemoryStore_ReturnedMetadataIsACopy(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	project, err := s.CreateProject(ctx, uuid.New(), models.ContentAds, "promo")
	require.NoError(t, err)

	project.Metadata["leak"] = true

	stored, err := s.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.Metadata, "leak")
}

func TestMemoryStore_ListProjectsByOwner(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	owner := uuid.New()

	empty, err := s.ListProjectsByOwner(ctx, owner)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)

	first, _ := s.CreateProject(ctx, owner, models.ContentTikTok, "one")
	_, _ = s.CreateProject(ctx, uuid.New(), models.ContentTikTok, "someone else")
	second, _ := s.CreateProject(ctx, owner, models.ContentReels, "two")

	projects, err := s.ListProjectsByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, first.ID, projects[0].ID)
	assert.Equal(t, second.ID, projects[1].ID)
}

func TestMemoryStore_ListProjectsByStatus(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	stuck, _ := s.CreateProject(ctx, uuid.New(), models.ContentTikTok, "stuck")
	done, _ := s.CreateProject(ctx, uuid.New(), models.ContentTikTok, "done")
	status := models.StatusCompleted
	_, err := s.UpdateProject(ctx, done.ID, models.ProjectUpdate{Status: &status})
	require.NoError(t, err)

	projects, err := s.ListProjectsByStatus(ctx, models.StatusProcessing, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, stuck.ID, projects[0].ID)

	projects, err = s.ListProjectsByStatus(ctx, models.StatusProcessing, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, projects)
}
