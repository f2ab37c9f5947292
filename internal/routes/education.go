package routes

import (
	"github.com/gin-gonic/gin"

	"connectly/internal/handlers"
)

type EducationRoutes struct {
	handler *handlers.EducationHandler
	auth    []gin.HandlerFunc
}

func NewEducationRoutes(handler *handlers.EducationHandler, auth []gin.HandlerFunc) *EducationRoutes {
	return &EducationRoutes{handler: handler, auth: auth}
}

func (r *EducationRoutes) RegisterRoutes(router *gin.RouterGroup) {
	education := router.Group("/education")
	education.Use(r.auth...)
	{
		education.POST("", r.handler.Create)
		education.PUT("/:education_id", r.handler.Update)
		education.DELETE("/:education_id", r.handler.Delete)
		education.GET("/user/:user_id", r.handler.ListByUser)
	}
}
