package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connectly/internal/responses"
	"connectly/internal/services"
)

type LikeHandler struct {
	likeService *services.LikeService
	log         *zap.Logger
}

func NewLikeHandler(likeService *services.LikeService, log *zap.Logger) *LikeHandler {
	return &LikeHandler{likeService: likeService, log: log}
}

// Like handles POST /api/v1/likes/:post_id
func (h *LikeHandler) Like(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := uuidParam(c, "post_id", "post")
	if !ok {
		return
	}

	like, err := h.likeService.Like(c.Request.Context(), userID, postID)
	if err != nil {
		respondError(c, h.log, err, "Error liking post")
		return
	}

	responses.Success(c, http.StatusCreated, like, "Post liked successfully")
}

// Unlike handles DELETE /api/v1/likes/:post_id
func (h *LikeHandler) Unlike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := uuidParam(c, "post_id", "post")
	if !ok {
		return
	}

	if err := h.likeService.Unlike(c.Request.Context(), userID, postID); err != nil {
		respondError(c, h.log, err, "Error unliking post")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Post unliked successfully")
}

// ListByPost handles GET /api/v1/likes/:post_id
func (h *LikeHandler) ListByPost(c *gin.Context) {
	postID, ok := uuidParam(c, "post_id", "post")
	if !ok {
		return
	}

	likes, err := h.likeService.ListByPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, h.log, err, "Error fetching likes")
		return
	}

	responses.Success(c, http.StatusOK, likes, "")
}
