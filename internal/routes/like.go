package routes

import (
	"github.com/gin-gonic/gin"

	"connectly/internal/handlers"
)

type LikeRoutes struct {
	handler *handlers.LikeHandler
	auth    []gin.HandlerFunc
}

func NewLikeRoutes(handler *handlers.LikeHandler, auth []gin.HandlerFunc) *LikeRoutes {
	return &LikeRoutes{handler: handler, auth: auth}
}

func (r *LikeRoutes) RegisterRoutes(router *gin.RouterGroup) {
	likes := router.Group("/likes")
	likes.Use(r.auth...)
	{
		likes.POST("/:post_id", r.handler.Like)
		likes.DELETE("/:post_id", r.handler.Unlike)
		likes.GET("/:post_id", r.handler.ListByPost)
	}
}
