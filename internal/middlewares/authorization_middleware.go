package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"connectly/internal/database"
	"connectly/internal/repositories"
	"connectly/internal/responses"
)

// RequireExistingUser rejects tokens whose account no longer exists. It must
// run after Authenticate. Without a token denylist this is what stops a
// deleted account's token from being used until it expires.
func RequireExistingUser(userRepo *repositories.UserRepository, db database.DBTX, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get(UserIDKey)
		if !ok {
			responses.Abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		id, ok := userID.(uuid.UUID)
		if !ok {
			responses.Abort(c, http.StatusUnauthorized, "Invalid user ID format")
			return
		}

		user, err := userRepo.FindUserByID(c.Request.Context(), db, id)
		if err != nil {
			log.Error("failed to load authenticated user", zap.String("user_id", id.String()), zap.Error(err))
			responses.Abort(c, http.StatusInternalServerError, "Could not verify user")
			return
		}
		if user == nil {
			responses.Abort(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.Next()
	}
}
