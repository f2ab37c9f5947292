package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connectly/internal/responses"
	"connectly/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
	log            *zap.Logger
}

func NewCommentHandler(commentService *services.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, log: log}
}

// Add handles POST /api/v1/comments
func (h *CommentHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Add(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.log, err, "Error adding comment")
		return
	}

	responses.Success(c, http.StatusCreated, comment, "Comment added successfully")
}

// ListByPost handles GET /api/v1/comments/post/:post_id
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := uuidParam(c, "post_id", "post")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, h.log, err, "Error fetching comments")
		return
	}

	responses.Success(c, http.StatusOK, comments, "")
}

// ListMine handles GET /api/v1/comments/me
func (h *CommentHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Error fetching comments")
		return
	}

	responses.Success(c, http.StatusOK, comments, "")
}
