package routes

import (
	"github.com/gin-gonic/gin"

	"connectly/internal/handlers"
)

type SkillRoutes struct {
	handler *handlers.SkillHandler
	auth    []gin.HandlerFunc
}

func NewSkillRoutes(handler *handlers.SkillHandler, auth []gin.HandlerFunc) *SkillRoutes {
	return &SkillRoutes{handler: handler, auth: auth}
}

func (r *SkillRoutes) RegisterRoutes(router *gin.RouterGroup) {
	skills := router.Group("/skills")
	skills.Use(r.auth...)
	skills.GET("", r.handler.ForEntries)
}
