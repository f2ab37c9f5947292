package routes

import (
	"github.com/gin-gonic/gin"

	"connectly/internal/handlers"
)

type AuthRoutes struct {
	handler *handlers.AuthHandler
	auth    []gin.HandlerFunc
}

func NewAuthRoutes(handler *handlers.AuthHandler, auth []gin.HandlerFunc) *AuthRoutes {
	return &AuthRoutes{handler: handler, auth: auth}
}

func (r *AuthRoutes) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		// Public routes
		auth.POST("/signup", r.handler.Signup)
		auth.POST("/login", r.handler.Login)

		// Protected routes
		protected := auth.Group("")
		protected.Use(r.auth...)
		protected.POST("/logout", r.handler.Logout)
	}
}
