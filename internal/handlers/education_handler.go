package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connectly/internal/responses"
	"connectly/internal/services"
)

type EducationHandler struct {
	educationService *services.EducationService
	log              *zap.Logger
}

func NewEducationHandler(educationService *services.EducationService, log *zap.Logger) *EducationHandler {
	return &EducationHandler{educationService: educationService, log: log}
}

// Create handles POST /api/v1/education
func (h *EducationHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateEducationRequest
	if !bindJSON(c, &req) {
		return
	}

	edu, err := h.educationService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.log, err, "Error creating education details")
		return
	}

	responses.Success(c, http.StatusCreated, edu, "Education details added successfully")
}

// Update handles PUT /api/v1/education/:education_id
func (h *EducationHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	educationID, ok := uuidParam(c, "education_id", "education")
	if !ok {
		return
	}

	var req services.UpdateEducationRequest
	if !bindJSON(c, &req) {
		return
	}

	edu, err := h.educationService.Update(c.Request.Context(), userID, educationID, req)
	if err != nil {
		respondError(c, h.log, err, "Error updating education details")
		return
	}

	responses.Success(c, http.StatusOK, edu, "Education details updated successfully")
}

// Delete handles DELETE /api/v1/education/:education_id
func (h *EducationHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	educationID, ok := uuidParam(c, "education_id", "education")
	if !ok {
		return
	}

	if err := h.educationService.Delete(c.Request.Context(), userID, educationID); err != nil {
		respondError(c, h.log, err, "Error deleting education details")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Education details deleted successfully")
}

// ListByUser handles GET /api/v1/education/user/:user_id
func (h *EducationHandler) ListByUser(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id", "user")
	if !ok {
		return
	}

	list, err := h.educationService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Error fetching education details")
		return
	}

	responses.Success(c, http.StatusOK, list, "")
}
