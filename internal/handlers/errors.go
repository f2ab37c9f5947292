package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"connectly/internal/middlewares"
	"connectly/internal/models"
	"connectly/internal/responses"
	"connectly/internal/services"
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err to the client. Storage failures are logged and
// answered with fallback only.
func respondError(c *gin.Context, log *zap.Logger, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		responses.Fail(c, status, fallback)
		return
	}

	msg := services.PublicMessage(err)
	if msg == "" {
		msg = fallback
	}
	responses.Fail(c, status, msg)
}

// currentUserID returns the caller set by middlewares.Authenticate.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middlewares.UserIDKey)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

func currentSession(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(middlewares.SessionKey)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return models.Session{}, false
	}
	s, ok := v.(models.Session)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, "Unauthorized")
		return models.Session{}, false
	}
	return s, true
}

func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		responses.Fail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
