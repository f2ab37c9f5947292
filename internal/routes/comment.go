package routes

import (
	"github.com/gin-gonic/gin"

	"connectly/internal/handlers"
)

type CommentRoutes struct {
	handler *handlers.CommentHandler
	auth    []gin.HandlerFunc
}

func NewCommentRoutes(handler *handlers.CommentHandler, auth []gin.HandlerFunc) *CommentRoutes {
	return &CommentRoutes{handler: handler, auth: auth}
}

func (r *CommentRoutes) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/comments")
	comments.Use(r.auth...)
	{
		comments.POST("", r.handler.Add)
		comments.GET("/post/:post_id", r.handler.ListByPost)
		comments.GET("/me", r.handler.ListMine)
	}
}
