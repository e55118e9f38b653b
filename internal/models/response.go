package models

type UserResponse struct {
	User UserView `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProcessResponse struct {
	ProjectID string        `json:"projectId"`
	Status    ProjectStatus `json:"status"`
	Message   string        `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"neuroforge-backend"`
}
