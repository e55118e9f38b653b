package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"neuroforge-backend/internal/models"
	"neuroforge-backend/internal/store"
)

type StatusHandler struct {
	store store.Store
}

func NewStatusHandler(s store.Store) *StatusHandler {
	return &StatusHandler{
		store: s,
	}
}

// GetStatus godoc
// @Summary     Get project status
// @Description Returns the project record. Projects owned by other users are reported as not found.
// @Tags        status
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Project ID (UUID)"
// @Success     200 {object} models.Project
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /status/{id} [get]
func (h *StatusHandler) GetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found", Message: "Não autenticado"})
		return
	}

	notFound := models.ErrorResponse{Error: "project not found", Message: "Projeto não encontrado"}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, notFound)
		return
	}

	project, err := h.store.GetProject(c.Request.Context(), projectID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[status] failed to load project %s: %v", projectID, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to load project",
				Message: "Erro interno do servidor",
			})
			return
		}
		c.JSON(http.StatusNotFound, notFound)
		return
	}
	if project.UserID != userID {
		c.JSON(http.StatusNotFound, notFound)
		return
	}

	c.JSON(http.StatusOK, project)
}
