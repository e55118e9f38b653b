package models

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
}

type ProcessRequest struct {
	// Prompt describes the desired content.
	Prompt string `json:"prompt" binding:"required" example:"receitas saudáveis"`
	// Type is a content category such as tiktok, reels, shorts, vsl, ads, roteiro, planejamento, produto or analise.
	Type string `json:"type" binding:"required" example:"tiktok"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
