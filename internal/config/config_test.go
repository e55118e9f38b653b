package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"neuroforge-backend/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("MEDIA_HOST", "")
	t.Setenv("RENDER_POLL_INTERVAL", "")
	t.Setenv("RENDER_MAX_ATTEMPTS", "")
	t.Setenv("PIPELINE_TIMEOUT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.MediaHostSupabase, cfg.MediaHost)
	assert.Equal(t, 2*time.Second, cfg.RenderPollInterval)
	assert.Equal(t, 30, cfg.RenderMaxAttempts)
	assert.Equal(t, 10*time.Minute, cfg.PipelineTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("MEDIA_HOST", "GCS")
	t.Setenv("GCS_BUCKET", "bucket")
	t.Setenv("RENDER_POLL_INTERVAL", "500ms")
	t.Setenv("RENDER_MAX_ATTEMPTS", "5")
	t.Setenv("CREATOMATE_TEMPLATE_IDS", "vsl=abc, TikTok = def")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.MediaHostGCS, cfg.MediaHost)
	assert.Equal(t, 500*time.Millisecond, cfg.RenderPollInterval)
	assert.Equal(t, 5, cfg.RenderMaxAttempts)
	assert.Equal(t, map[string]string{"vsl": "abc", "tiktok": "def"}, cfg.CreatomateTemplateIDs)
}

func TestLoad_InvalidNumbers(t *testing.T) {
	t.Setenv("RENDER_MAX_ATTEMPTS", "many")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("RENDER_MAX_ATTEMPTS", "")
	t.Setenv("PIPELINE_TIMEOUT", "ten minutes")
	_, err = config.Load()
	assert.Error(t, err)
}

func validProduction() *config.Config {
	return &config.Config{
		Environment:            "production",
		SessionSecret:          "secret",
		DatabaseURL:            "postgres://localhost/neuroforge",
		SupabaseURL:            "https://proj.supabase.co",
		SupabasePublishableKey: "key",
		MediaHost:              config.MediaHostSupabase,
		GCPProjectID:           "project",
		EdenAIAPIKey:           "eden",
		OpenAIAPIKey:           "openai",
		CreatomateAPIKey:       "creatomate",
		RenderPollInterval:     2 * time.Second,
		RenderMaxAttempts:      30,
	}
}

func TestValidate_Production(t *testing.T) {
	assert.NoError(t, validProduction().Validate())

	cfg := validProduction()
	cfg.OpenAIAPIKey = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	cfg = validProduction()
	cfg.SessionSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "SESSION_SECRET")
}

func TestValidate_DevelopmentAllowsMissingKeys(t *testing.T) {
	cfg := &config.Config{
		Environment:        "development",
		MediaHost:          config.MediaHostSupabase,
		RenderPollInterval: time.Second,
		RenderMaxAttempts:  1,
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MediaHost(t *testing.T) {
	cfg := validProduction()
	cfg.MediaHost = "s3"
	assert.Error(t, cfg.Validate())

	cfg = validProduction()
	cfg.MediaHost = config.MediaHostGCS
	assert.ErrorContains(t, cfg.Validate(), "GCS_BUCKET")
}

func TestParseTemplateIDs(t *testing.T) {
	assert.Empty(t, config.ParseTemplateIDs(""))
	assert.Equal(t, map[string]string{"ads": "x"}, config.ParseTemplateIDs("ads=x,broken,=y,reels="))
}
