package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"connectly/internal/handlers"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Education  *handlers.EducationHandler
	Experience *handlers.ExperienceHandler
	Skill      *handlers.SkillHandler
	Post       *handlers.PostHandler
	Comment    *handlers.CommentHandler
	Like       *handlers.LikeHandler
	Job        *handlers.JobHandler
}

// RegisterRoutes mounts every resource under /api/v1. auth is the middleware
// chain guarding the protected routes.
func RegisterRoutes(router *gin.Engine, h Handlers, auth ...gin.HandlerFunc) {
	api := router.Group("/api/v1")

	NewAuthRoutes(h.Auth, auth).RegisterRoutes(api)
	NewUserRoutes(h.User, auth).RegisterRoutes(api)
	NewEducationRoutes(h.Education, auth).RegisterRoutes(api)
	NewExperienceRoutes(h.Experience, auth).RegisterRoutes(api)
	NewSkillRoutes(h.Skill, auth).RegisterRoutes(api)
	NewPostRoutes(h.Post, auth).RegisterRoutes(api)
	NewCommentRoutes(h.Comment, auth).RegisterRoutes(api)
	NewLikeRoutes(h.Like, auth).RegisterRoutes(api)
	NewJobRoutes(h.Job, auth).RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
