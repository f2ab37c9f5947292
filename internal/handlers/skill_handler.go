package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"connectly/internal/responses"
	"connectly/internal/services"
)

type SkillHandler struct {
	skillService *services.SkillService
	log          *zap.Logger
}

func NewSkillHandler(skillService *services.SkillService, log *zap.Logger) *SkillHandler {
	return &SkillHandler{skillService: skillService, log: log}
}

// ForEntries handles GET /api/v1/skills?education_id=&experience_id=
func (h *SkillHandler) ForEntries(c *gin.Context) {
	educationID, ok := optionalUUIDQuery(c, "education_id")
	if !ok {
		return
	}
	experienceID, ok := optionalUUIDQuery(c, "experience_id")
	if !ok {
		return
	}

	skills, err := h.skillService.ForEntries(c.Request.Context(), educationID, experienceID)
	if err != nil {
		respondError(c, h.log, err, "Error fetching skills")
		return
	}

	responses.Success(c, http.StatusOK, skills, "")
}

func optionalUUIDQuery(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, "Invalid "+key)
		return nil, false
	}
	return &id, true
}
