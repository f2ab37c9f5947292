package routes

import (
	"github.com/gin-gonic/gin"

	"connectly/internal/handlers"
)

type PostRoutes struct {
	handler *handlers.PostHandler
	auth    []gin.HandlerFunc
}

func NewPostRoutes(handler *handlers.PostHandler, auth []gin.HandlerFunc) *PostRoutes {
	return &PostRoutes{handler: handler, auth: auth}
}

func (r *PostRoutes) RegisterRoutes(router *gin.RouterGroup) {
	posts := router.Group("/posts")
	posts.Use(r.auth...)
	{
		posts.POST("", r.handler.Create)
		posts.GET("/feed", r.handler.Feed)
		posts.GET("/user/:user_id", r.handler.ListByUser)
		posts.GET("/:post_id/author", r.handler.Author)
		posts.DELETE("/:post_id", r.handler.Delete)
	}
}
