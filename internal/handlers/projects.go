package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"neuroforge-backend/internal/models"
	"neuroforge-backend/internal/store"
)

type ProjectsHandler struct {
	store store.Store
}

func NewProjectsHandler(s store.Store) *ProjectsHandler {
	return &ProjectsHandler{
		store: s,
	}
}

// ListProjects godoc
// @Summary     List a user's projects
// @Description Returns every project of the session user in creation order. The path user must match the session.
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       userId path string true "User ID (UUID)"
// @Success     200 {array}  models.Project
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /projetos/{userId} [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found", Message: "Não autenticado"})
		return
	}

	pathUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil || pathUserID != userID {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "forbidden user",
			Message: "Não autorizado",
		})
		return
	}

	projects, err := h.store.ListProjectsByOwner(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[projects] failed to list projects for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list projects",
			Message: "Erro interno do servidor",
		})
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	c.JSON(http.StatusOK, projects)
}
