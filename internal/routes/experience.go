package routes

import (
	"github.com/gin-gonic/gin"

	"connectly/internal/handlers"
)

type ExperienceRoutes struct {
	handler *handlers.ExperienceHandler
	auth    []gin.HandlerFunc
}

func NewExperienceRoutes(handler *handlers.ExperienceHandler, auth []gin.HandlerFunc) *ExperienceRoutes {
	return &ExperienceRoutes{handler: handler, auth: auth}
}

func (r *ExperienceRoutes) RegisterRoutes(router *gin.RouterGroup) {
	experience := router.Group("/experience")
	experience.Use(r.auth...)
	{
		experience.POST("", r.handler.Create)
		experience.PUT("/:experience_id", r.handler.Update)
		experience.DELETE("/:experience_id", r.handler.Delete)
		experience.GET("/user/:user_id", r.handler.ListByUser)
	}
}
