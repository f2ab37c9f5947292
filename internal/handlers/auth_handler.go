package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connectly/internal/responses"
	"connectly/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	userID, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Error creating user")
		return
	}

	responses.Success(c, http.StatusCreated, gin.H{"user_id": userID}, "User created successfully")
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err, "Error logging in")
		return
	}

	responses.Success(c, http.StatusOK, result, "Login successful")
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), session); err != nil {
		respondError(c, h.log, err, "Error logging out")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Logged out successfully")
}
