package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connectly/internal/responses"
	"connectly/internal/services"
)

type ExperienceHandler struct {
	experienceService *services.ExperienceService
	log              *zap.Logger
}

func NewExperienceHandler(experienceService *services.ExperienceService, log *zap.Logger) *ExperienceHandler {
	return &ExperienceHandler{experienceService: experienceService, log: log}
}

// Create handles POST /api/v1/experience
func (h *ExperienceHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateExperienceRequest
	if !bindJSON(c, &req) {
		return
	}

	exp, err := h.experienceService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.log, err, "Error creating experience details")
		return
	}

	responses.Success(c, http.StatusCreated, exp, "Experience details added successfully")
}

// Update handles PUT /api/v1/experience/:experience_id
func (h *ExperienceHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	experienceID, ok := uuidParam(c, "experience_id", "experience")
	if !ok {
		return
	}

	var req services.UpdateExperienceRequest
	if !bindJSON(c, &req) {
		return
	}

	exp, err := h.experienceService.Update(c.Request.Context(), userID, experienceID, req)
	if err != nil {
		respondError(c, h.log, err, "Error updating experience details")
		return
	}

	responses.Success(c, http.StatusOK, exp, "Experience details updated successfully")
}

// Delete handles DELETE /api/v1/experience/:experience_id
func (h *ExperienceHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	experienceID, ok := uuidParam(c, "experience_id", "experience")
	if !ok {
		return
	}

	if err := h.experienceService.Delete(c.Request.Context(), userID, experienceID); err != nil {
		respondError(c, h.log, err, "Error deleting experience details")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Experience details deleted successfully")
}

// ListByUser handles GET /api/v1/experience/user/:user_id
func (h *ExperienceHandler) ListByUser(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id", "user")
	if !ok {
		return
	}

	list, err := h.experienceService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Error fetching experience details")
		return
	}

	responses.Success(c, http.StatusOK, list, "")
}
