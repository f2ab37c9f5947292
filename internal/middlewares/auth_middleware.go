package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connectly/internal/responses"
	"connectly/internal/utils"
)

// Context keys set by Authenticate.
const (
	UserIDKey  = "userId"
	SessionKey = "session"
)

type Denylist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Authenticate verifies the Bearer access token and stores the caller's user
// id (uuid.UUID) and session (models.Session) in the context.
func Authenticate(tokens *utils.TokenManager, denylist Denylist, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Abort(c, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			responses.Abort(c, http.StatusUnauthorized, "Invalid Authorization format")
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			responses.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		session, err := claims.Session()
		if err != nil {
			responses.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		revoked, err := denylist.IsBlacklisted(ctx, session.TokenID)
		cancel()
		if err != nil {
			log.Error("token denylist lookup failed", zap.Error(err))
			responses.Abort(c, http.StatusInternalServerError, "Could not verify token")
			return
		}
		if revoked {
			responses.Abort(c, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		c.Set(UserIDKey, session.UserID)
		c.Set(SessionKey, session)
		c.Next()
	}
}
