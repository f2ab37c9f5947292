package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"connectly/internal/responses"
	"connectly/internal/services"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&services.Error{Kind: services.ErrValidation, Message: "bad"}, http.StatusBadRequest},
		{&services.Error{Kind: services.ErrConflict, Message: "dup"}, http.StatusConflict},
		{&services.Error{Kind: services.ErrUnauthorized, Message: "who"}, http.StatusUnauthorized},
		{&services.Error{Kind: services.ErrForbidden, Message: "no"}, http.StatusForbidden},
		{fmt.Errorf("wrapped: %w", &services.Error{Kind: services.ErrNotFound, Message: "gone"}), http.StatusNotFound},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func serve(h gin.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, "/items/:item_id", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) responses.APIResponse {
	t.Helper()
	var body responses.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	log := zap.New(core)

	w := serve(func(c *gin.Context) {
		respondError(c, log, errors.New("pq: relation does not exist"), "Error fetching posts")
	}, http.MethodGet, "/items/1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Error fetching posts", body.Error)
	assert.NotContains(t, w.Body.String(), "relation")
	assert.Equal(t, 1, logs.Len())
}

func TestRespondErrorUsesPublicMessage(t *testing.T) {
	w := serve(func(c *gin.Context) {
		respondError(c, zap.NewNop(), &services.Error{Kind: services.ErrForbidden, Message: "Not your post"}, "Error deleting post")
	}, http.MethodDelete, "/items/1")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Not your post", decode(t, w).Error)
}

func TestUUIDParam(t *testing.T) {
	h := func(c *gin.Context) {
		id, ok := uuidParam(c, "item_id", "item")
		if !ok {
			return
		}
		c.String(http.StatusOK, id.String())
	}

	w := serve(h, http.MethodGet, "/items/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid item ID format", decode(t, w).Error)

	w = serve(h, http.MethodGet, "/items/6f1c1d3c-8a4e-4f55-9b7e-2d6f1f1a2b3c")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCurrentUserIDRequiresAuthentication(t *testing.T) {
	w := serve(func(c *gin.Context) {
		if _, ok := currentUserID(c); ok {
			c.Status(http.StatusOK)
		}
	}, http.MethodGet, "/items/1")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
