package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	MediaHostSupabase = "supabase"
	MediaHostGCS      = "gcs"
)

type Config struct {
	// Server
	Port          string
	Environment   string
	BaseURL       string
	SessionSecret string

	// Database
	DatabaseURL string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseStorageBucket  string

	// Media hosting
	MediaHost string
	GCSBucket string

	// Google Cloud (Vertex AI Gemini)
	GCPProjectID          string
	VertexAIRegion        string
	GeminiModel           string
	GoogleCredentialsFile string

	// Vendor APIs
	EdenAIAPIKey          string
	OpenAIAPIKey          string
	CreatomateAPIKey      string
	CreatomateTemplateIDs map[string]string

	// Pipeline
	RenderPollInterval time.Duration
	RenderMaxAttempts  int
	PipelineTimeout    time.Duration
	StaleProjectAge    time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		SessionSecret: getEnv("SESSION_SECRET", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "neuroforge-media"),

		MediaHost: strings.ToLower(getEnv("MEDIA_HOST", MediaHostSupabase)),
		GCSBucket: getEnv("GCS_BUCKET", ""),

		GCPProjectID:          getEnv("GCP_PROJECT_ID", ""),
		VertexAIRegion:        getEnv("VERTEX_AI_REGION", "us-central1"),
		GeminiModel:           getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),

		EdenAIAPIKey:          getEnv("EDENAI_API_KEY", ""),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		CreatomateAPIKey:      getEnv("CREATOMATE_API_KEY", ""),
		CreatomateTemplateIDs: ParseTemplateIDs(getEnv("CREATOMATE_TEMPLATE_IDS", "")),
	}

	var err error
	if cfg.RenderPollInterval, err = getEnvDuration("RENDER_POLL_INTERVAL", 2*time.Second); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.RenderMaxAttempts, err = getEnvInt("RENDER_MAX_ATTEMPTS", 30); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.PipelineTimeout, err = getEnvDuration("PIPELINE_TIMEOUT", 10*time.Minute); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.StaleProjectAge, err = getEnvDuration("STALE_PROJECT_AGE", 0); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks settings that are always required, then, in production,
// every credential. Outside production a missing vendor key leaves that
// client unconfigured and the pipeline falls back for its step.
func (c *Config) Validate() error {
	if c.MediaHost != MediaHostSupabase && c.MediaHost != MediaHostGCS {
		return fmt.Errorf("MEDIA_HOST must be %q or %q, got %q", MediaHostSupabase, MediaHostGCS, c.MediaHost)
	}
	if c.MediaHost == MediaHostGCS && c.GCSBucket == "" {
		return fmt.Errorf("GCS_BUCKET is required when MEDIA_HOST is gcs")
	}
	if c.RenderPollInterval <= 0 {
		return fmt.Errorf("RENDER_POLL_INTERVAL must be positive")
	}
	if c.RenderMaxAttempts <= 0 {
		return fmt.Errorf("RENDER_MAX_ATTEMPTS must be positive")
	}

	if !c.IsProduction() {
		return nil
	}

	required := []struct {
		key   string
		value string
	}{
		{"SESSION_SECRET", c.SessionSecret},
		{"DATABASE_URL", c.DatabaseURL},
		{"GCP_PROJECT_ID", c.GCPProjectID},
		{"EDENAI_API_KEY", c.EdenAIAPIKey},
		{"OPENAI_API_KEY", c.OpenAIAPIKey},
		{"CREATOMATE_API_KEY", c.CreatomateAPIKey},
	}
	if c.MediaHost == MediaHostSupabase {
		required = append(required,
			struct{ key, value string }{"SUPABASE_URL", c.SupabaseURL},
			struct{ key, value string }{"SUPABASE_PUBLISHABLE_KEY", c.SupabasePublishableKey},
		)
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.key)
		}
	}
	return nil
}

// ParseTemplateIDs parses "tiktok=abc,vsl=def" into a map. Malformed pairs
// are skipped.
func ParseTemplateIDs(raw string) map[string]string {
	ids := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		name, id, ok := strings.Cut(pair, "=")
		name, id = strings.TrimSpace(name), strings.TrimSpace(id)
		if !ok || name == "" || id == "" {
			continue
		}
		ids[strings.ToLower(name)] = id
	}
	return ids
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 2s or 10m: %w", key, err)
	}
	return d, nil
}
