package supabase_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neuroforge-backend/internal/database"
	"neuroforge-backend/internal/models"
	"neuroforge-backend/internal/store"
	"neuroforge-backend/internal/supabase"
)

func newTestDatabase(t *testing.T) *supabase.DatabaseClient {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	migrator, err := database.NewMigrator(dbURL)
	require.NoError(t, err)
	require.NoError(t, migrator.Run(context.Background()))
	migrator.Close()

	db, err := supabase.NewDatabaseClient(dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDatabaseClient_Users(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	email := uuid.NewString() + "@example.com"

	user, err := db.CreateUser(ctx, email, "hash")
	require.NoError(t, err)

	_, err = db.CreateUser(ctx, email, "other")
	assert.ErrorIs(t, err, store.ErrEmailTaken)

	found, err := db.GetUserByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = db.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDatabaseClient_Projects(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	user, err := db.CreateUser(ctx, uuid.NewString()+"@example.com", "hash")
	require.NoError(t, err)

	project, err := db.CreateProject(ctx, user.ID, models.ContentTikTok, "receitas")
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, project.Status)

	video := "https://cdn/v.mp4"
	_, err = db.UpdateProject(ctx, project.ID, models.ProjectUpdate{
		LinkVideo: &video,
		Metadata:  map[string]interface{}{"analysis": "ok"},
	})
	require.NoError(t, err)

	status := models.StatusCompleted
	updated, err := db.UpdateProject(ctx, project.ID, models.ProjectUpdate{
		Status:   &status,
		Metadata: map[string]interface{}{"processedAt": "now"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	require.NotNil(t, updated.LinkVideo)
	assert.Equal(t, video, *updated.LinkVideo)
	assert.Nil(t, updated.LinkAudio)
	assert.Equal(t, "ok", updated.Metadata["analysis"])
	assert.Equal(t, "now", updated.Metadata["processedAt"])

	projects, err := db.ListProjectsByOwner(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, project.ID, projects[0].ID)

	_, err = db.UpdateProject(ctx, uuid.New(), models.ProjectUpdate{Status: &status})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
