package models_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neuroforge-backend/internal/models"
)

func TestParseContentType(t *testing.T) {
	for _, ct := range models.ContentTypes() {
		parsed, err := models.ParseContentType(string(ct))
		require.NoError(t, err)
		assert.Equal(t, ct, parsed)
	}

	parsed, err := models.ParseContentType("  TikTok ")
	require.NoError(t, err)
	assert.Equal(t, models.ContentTikTok, parsed)

	for _, raw := range []string{"planejamento", "produto", "analise"} {
		parsed, err := models.ParseContentType(raw)
		require.NoError(t, err)
		assert.True(t, parsed.Known(), raw)
	}

	parsed, err = models.ParseContentType(" Podcast")
	require.NoError(t, err)
	assert.Equal(t, models.ContentType("podcast"), parsed)
	assert.False(t, parsed.Known())

	_, err = models.ParseContentType("   ")
	assert.ErrorIs(t, err, models.ErrEmptyContentType)
}

func TestContentType_IsVertical(t *testing.T) {
	assert.True(t, models.ContentTikTok.IsVertical())
	assert.True(t, models.ContentReels.IsVertical())
	assert.True(t, models.ContentShorts.IsVertical())
	assert.False(t, models.ContentVSL.IsVertical())
	assert.False(t, models.ContentAds.IsVertical())
	assert.False(t, models.ContentRoteiro.IsVertical())
}

func TestProjectStatus_IsTerminal(t *testing.T) {
	assert.False(t, models.StatusProcessing.IsTerminal())
	assert.True(t, models.StatusCompleted.IsTerminal())
	assert.True(t, models.StatusFailed.IsTerminal())
}

func TestProjectUpdate_Apply(t *testing.T) {
	video := "old.mp4"
	p := models.Project{
		Status:    models.StatusProcessing,
		LinkVideo: &video,
		Metadata:  map[string]interface{}{"a": 1},
	}

	status := models.StatusFailed
	models.ProjectUpdate{
		Status:   &status,
		Metadata: map[string]interface{}{"b": 2},
	}.Apply(&p)

	assert.Equal(t, models.StatusFailed, p.Status)
	require.NotNil(t, p.LinkVideo)
	assert.Equal(t, "old.mp4", *p.LinkVideo)
	assert.Equal(t, map[string]interface{}{"a": 1, "b": 2}, p.Metadata)
}

func TestProject_JSONFieldNames(t *testing.T) {
	p := models.Project{ID: uuid.New(), UserID: uuid.New(), Type: models.ContentTikTok, Status: models.StatusProcessing}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"id", "userId", "type", "prompt", "status", "linkVideo", "linkRoteiro", "linkAudio", "metadata", "createdAt", "updatedAt"} {
		assert.Contains(t, fields, key)
	}
	assert.Nil(t, fields["linkVideo"])
}
