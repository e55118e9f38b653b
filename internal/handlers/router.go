package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"neuroforge-backend/internal/middleware"
)

type Handlers struct {
	Auth     *AuthHandler
	Process  *ProcessHandler
	Status   *StatusHandler
	Projects *ProjectsHandler
}

// NewRouter wires every route. Endpoints other than register, login, logout
// and health require a session.
func NewRouter(h Handlers, sessions *middleware.SessionManager) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", HealthHandler)

	api := router.Group("/api")

	// Auth routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/logout", h.Auth.Logout)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(sessions))

	authed.GET("/auth/me", h.Auth.Me)
	authed.POST("/processar", h.Process.Process)
	authed.GET("/status/:id", h.Status.GetStatus)
	authed.GET("/projetos/:userId", h.Projects.ListProjects)

	return router
}
