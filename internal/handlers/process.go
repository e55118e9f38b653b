package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"neuroforge-backend/internal/models"
	"neuroforge-backend/internal/services"
)

type ProcessHandler struct {
	projectService *services.ProjectService
}

func NewProcessHandler(projectService *services.ProjectService) *ProcessHandler {
	return &ProcessHandler{
		projectService: projectService,
	}
}

// Process godoc
// @Summary     Start content generation
// @Description Creates a project in "processing" and runs the generation pipeline in the background. Poll /status/{id} for the result.
// @Tags        process
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ProcessRequest true "Prompt and content type"
// @Success     200 {object} models.ProcessResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /processar [post]
func (h *ProcessHandler) Process(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found", Message: "Não autenticado"})
		return
	}

	var req models.ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: "Prompt e tipo são obrigatórios",
		})
		return
	}

	contentType, err := models.ParseContentType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   err.Error(),
			Message: "Prompt e tipo são obrigatórios",
		})
		return
	}

	project, err := h.projectService.Submit(c.Request.Context(), userID, contentType, req.Prompt)
	if err != nil {
		log.Printf("[process] failed to submit project for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to start processing",
			Message: "Erro interno do servidor",
		})
		return
	}

	c.JSON(http.StatusOK, models.ProcessResponse{
		ProjectID: project.ID.String(),
		Status:    project.Status,
		Message:   "Processamento iniciado",
	})
}
