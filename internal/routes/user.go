package routes

import (
	"github.com/gin-gonic/gin"

	"connectly/internal/handlers"
)

type UserRoutes struct {
	userHandler *handlers.UserHandler
	auth        []gin.HandlerFunc
}

func NewUserRoutes(userHandler *handlers.UserHandler, auth []gin.HandlerFunc) *UserRoutes {
	return &UserRoutes{userHandler: userHandler, auth: auth}
}

func (r *UserRoutes) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(r.auth...) // All user routes require authentication
	{
		users.GET("/me", r.userHandler.GetMe)
		users.PATCH("/me", r.userHandler.UpdateMe)
		users.PUT("/me/password", r.userHandler.ChangePassword)
		users.DELETE("/me", r.userHandler.DeleteMe)

		users.GET("/:user_id", r.userHandler.GetUser)
		users.GET("/:user_id/profile", r.userHandler.GetProfile)
	}
}
