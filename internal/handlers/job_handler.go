package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connectly/internal/responses"
	"connectly/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
	log        *zap.Logger
}

func NewJobHandler(jobService *services.JobService, log *zap.Logger) *JobHandler {
	return &JobHandler{jobService: jobService, log: log}
}

// List handles GET /api/v1/jobs
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Error fetching jobs")
		return
	}

	responses.Success(c, http.StatusOK, jobs, "")
}

// Apply handles POST /api/v1/jobs/apply
func (h *JobHandler) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.ApplyJobRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.jobService.Apply(c.Request.Context(), userID, req); err != nil {
		respondError(c, h.log, err, "Error sending resume")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Resume sent successfully")
}
