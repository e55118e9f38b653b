package services

import (
	"github.com/google/uuid"
	"neuroforge-backend/internal/models"
	"neuroforge-backend/internal/pipeline"
)

// Event payloads
func ProcessingStartedPayload(project *models.Project) map[string]interface{} {
	return map[string]interface{}{
		"project_id": project.ID.String(),
		"user_id":    project.UserID.String(),
		"status":     string(models.StatusProcessing),
		"type":       string(project.Type),
	}
}

func ProcessingCompletedPayload(projectID uuid.UUID, result *pipeline.Result) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     string(models.StatusCompleted),
		"video_url":  result.VideoURL,
		"audio_url":  result.AudioURL,
		"degraded":   result.Degraded(),
	}
}

func ProcessingFailedPayload(projectID uuid.UUID, errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"project_id": projectID.String(),
		"status":     string(models.StatusFailed),
		"error":      errorMsg,
	}
}
