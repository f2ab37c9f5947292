package routes

import (
	"github.com/gin-gonic/gin"

	"connectly/internal/handlers"
)

type JobRoutes struct {
	handler *handlers.JobHandler
	auth    []gin.HandlerFunc
}

func NewJobRoutes(handler *handlers.JobHandler, auth []gin.HandlerFunc) *JobRoutes {
	return &JobRoutes{handler: handler, auth: auth}
}

func (r *JobRoutes) RegisterRoutes(router *gin.RouterGroup) {
	jobs := router.Group("/jobs")
	{
		jobs.GET("", r.handler.List)

		protected := jobs.Group("")
		protected.Use(r.auth...)
		protected.POST("/apply", r.handler.Apply)
	}
}
