package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connectly/internal/responses"
	"connectly/internal/services"
)

type UserHandler struct {
	userService *services.UserService
	log         *zap.Logger
}

func NewUserHandler(userService *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// GetMe handles GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Error fetching user details")
		return
	}

	responses.Success(c, http.StatusOK, profile, "User details retrieved successfully")
}

// UpdateMe handles PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	details, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.log, err, "Error updating profile")
		return
	}

	responses.Success(c, http.StatusOK, details, "Profile updated successfully")
}

// ChangePassword handles PUT /api/v1/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, h.log, err, "Error changing password")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Password updated successfully")
}

// DeleteMe handles DELETE /api/v1/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), session); err != nil {
		respondError(c, h.log, err, "Error deleting account")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Account deleted successfully")
}

// GetUser handles GET /api/v1/users/:user_id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id", "user")
	if !ok {
		return
	}

	details, err := h.userService.GetUserDetails(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Error fetching user details")
		return
	}

	responses.Success(c, http.StatusOK, details, "User retrieved successfully")
}

// GetProfile handles GET /api/v1/users/:user_id/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id", "user")
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Error fetching user details")
		return
	}

	responses.Success(c, http.StatusOK, profile, "User details retrieved successfully")
}
