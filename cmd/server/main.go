// @title           NeuroForge Backend API
// @version         1.0.0
// @description     Backend API that turns a prompt into short-form marketing content: validation, script, image, narration and video, tracked as projects.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"neuroforge-backend/docs"
	"neuroforge-backend/internal/config"
	"neuroforge-backend/internal/creatomate"
	"neuroforge-backend/internal/database"
	"neuroforge-backend/internal/edenai"
	"neuroforge-backend/internal/gcs"
	"neuroforge-backend/internal/gemini"
	"neuroforge-backend/internal/generation"
	"neuroforge-backend/internal/handlers"
	"neuroforge-backend/internal/middleware"
	"neuroforge-backend/internal/openai"
	"neuroforge-backend/internal/pipeline"
	"neuroforge-backend/internal/services"
	"neuroforge-backend/internal/store"
	"neuroforge-backend/internal/supabase"
)

func main() {
	// Local .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to read .env: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Record store: Postgres when DATABASE_URL is set, in-memory otherwise
	var recordStore store.Store
	if cfg.DatabaseURL != "" {
		migrator, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(ctx); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		migrator.Close()
		log.Println("Migrations completed successfully")

		dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize database client: %v", err)
		}
		defer dbClient.Close()
		recordStore = dbClient
	} else {
		log.Println("Warning: DATABASE_URL not set. Using in-memory store; data is lost on restart.")
		recordStore = store.NewMemoryStore()
	}

	// Initialize Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}
	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)
	if !realtimeClient.Enabled() {
		log.Println("Warning: Supabase not configured. Project events will not be published.")
	}

	// Media host for narration and final deliverables
	var mediaHost generation.MediaHost
	switch cfg.MediaHost {
	case config.MediaHostGCS:
		gcsHost, err := gcs.NewHost(ctx, cfg.GCSBucket, cfg.GoogleCredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize GCS host: %v", err)
		}
		defer gcsHost.Close()
		mediaHost = gcsHost
	default:
		storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
		if err != nil {
			log.Fatalf("Failed to initialize storage client: %v", err)
		}
		mediaHost = storageClient
	}

	// Vendor clients
	geminiClient, err := gemini.NewClient(ctx, gemini.Config{
		ProjectID:       cfg.GCPProjectID,
		Region:          cfg.VertexAIRegion,
		Model:           cfg.GeminiModel,
		CredentialsFile: cfg.GoogleCredentialsFile,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	edenaiClient := edenai.NewClient(edenai.DefaultBaseURL, cfg.EdenAIAPIKey)
	openaiClient := openai.NewClient(openai.DefaultBaseURL, cfg.OpenAIAPIKey)
	creatomateClient := creatomate.NewClient(creatomate.DefaultBaseURL, cfg.CreatomateAPIKey, creatomate.NewTemplates(cfg.CreatomateTemplateIDs))

	logUnconfigured(map[string]bool{
		"gemini (GCP_PROJECT_ID)":          cfg.GCPProjectID != "",
		"edenai (EDENAI_API_KEY)":          cfg.EdenAIAPIKey != "",
		"openai (OPENAI_API_KEY)":          cfg.OpenAIAPIKey != "",
		"creatomate (CREATOMATE_API_KEY)": cfg.CreatomateAPIKey != "",
	})

	orchestrator := pipeline.New(pipeline.Dependencies{
		Validator: geminiClient,
		Scripts:   geminiClient,
		Images:    edenaiClient,
		Speech:    openai.NewSynthesizer(openaiClient, mediaHost),
		Video:     creatomateClient,
		Host:      mediaHost,
	}, pipeline.Options{
		PollInterval:    cfg.RenderPollInterval,
		MaxPollAttempts: cfg.RenderMaxAttempts,
	})

	projectService := services.NewProjectService(recordStore, orchestrator, realtimeClient, cfg.PipelineTimeout)

	// Runs lost with a previous process are failed, never resumed
	if n, err := projectService.FailInterrupted(ctx, cfg.StaleProjectAge); err != nil {
		log.Printf("Warning: failed to sweep interrupted projects: %v", err)
	} else if n > 0 {
		log.Printf("Marked %d interrupted project(s) as failed", n)
	}

	sessionSecret := cfg.SessionSecret
	if sessionSecret == "" {
		sessionSecret = randomSecret()
		log.Println("Warning: SESSION_SECRET not set. Using a random secret; sessions end on restart.")
	}
	sessions, err := middleware.NewSessionManager(sessionSecret, middleware.DefaultSessionTTL, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize sessions: %v", err)
	}

	router := handlers.NewRouter(handlers.Handlers{
		Auth:     handlers.NewAuthHandler(recordStore, sessions),
		Process:  handlers.NewProcessHandler(projectService),
		Status:   handlers.NewStatusHandler(recordStore),
		Projects: handlers.NewProjectsHandler(recordStore),
	}, sessions)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Stopping in-flight pipeline runs...")
	if err := projectService.Shutdown(shutdownCtx); err != nil {
		log.Printf("Pipeline shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

func logUnconfigured(clients map[string]bool) {
	for name, configured := range clients {
		if !configured {
			log.Printf("Warning: %s not configured. Its pipeline step will use fallback content.", name)
		}
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate session secret: %v", err)
	}
	return hex.EncodeToString(b)
}
