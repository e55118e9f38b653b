package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"neuroforge-backend/internal/middleware"
	"neuroforge-backend/internal/models"
	"neuroforge-backend/internal/store"
)

const passwordHashCost = 10

type AuthHandler struct {
	store    store.Store
	sessions *middleware.SessionManager
}

func NewAuthHandler(s store.Store, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{
		store:    s,
		sessions: sessions,
	}
}

// Register godoc
// @Summary     Register a user
// @Description Creates an account and starts a session (HttpOnly cookie).
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.CredentialsRequest true "Credentials"
// @Success     200 {object} models.UserResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: "Dados inválidos",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid password",
			Message: "Dados inválidos",
		})
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), req.Email, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "email already registered",
				Message: "Email já cadastrado",
			})
			return
		}
		log.Printf("[auth] failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create user",
			Message: "Erro interno do servidor",
		})
		return
	}

	if !h.startSession(c, user) {
		return
	}
	c.JSON(http.StatusOK, models.UserResponse{User: user.View()})
}

// Login godoc
// @Summary     Log in
// @Description Verifies credentials and starts a session (HttpOnly cookie).
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.CredentialsRequest true "Credentials"
// @Success     200 {object} models.UserResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: "Dados inválidos",
		})
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("[auth] failed to look up user: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to look up user",
			Message: "Erro interno do servidor",
		})
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "invalid credentials",
			Message: "Credenciais inválidas",
		})
		return
	}

	if !h.startSession(c, user) {
		return
	}
	c.JSON(http.StatusOK, models.UserResponse{User: user.View()})
}

// Logout godoc
// @Summary     Log out
// @Description Ends the session and clears the session cookie.
// @Tags        auth
// @Produce     json
// @Success     200 {object} models.MessageResponse
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.sessions.Revoke(token); err != nil {
			log.Printf("[auth] logout with unusable session: %v", err)
		}
	}
	h.sessions.ClearCookie(c)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Logout realizado com sucesso"})
}

// Me godoc
// @Summary     Current user
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.UserResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found", Message: "Não autenticado"})
		return
	}

	user, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("[auth] failed to load user %s: %v", userID, err)
		}
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "user not found",
			Message: "Usuário não encontrado",
		})
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{User: user.View()})
}

func (h *AuthHandler) startSession(c *gin.Context, user *models.User) bool {
	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		log.Printf("[auth] failed to issue session for %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to start session",
			Message: "Erro interno do servidor",
		})
		return false
	}
	h.sessions.SetCookie(c, token)
	return true
}
