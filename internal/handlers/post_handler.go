package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connectly/internal/responses"
	"connectly/internal/services"
)

type PostHandler struct {
	postService *services.PostService
	log         *zap.Logger
}

func NewPostHandler(postService *services.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{postService: postService, log: log}
}

// Create handles POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, h.log, err, "Error creating post")
		return
	}

	responses.Success(c, http.StatusCreated, post, "Post created successfully")
}

// Feed handles GET /api/v1/posts/feed
func (h *PostHandler) Feed(c *gin.Context) {
	posts, err := h.postService.Feed(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Error fetching posts")
		return
	}

	responses.Success(c, http.StatusOK, posts, "")
}

// ListByUser handles GET /api/v1/posts/user/:user_id
func (h *PostHandler) ListByUser(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id", "user")
	if !ok {
		return
	}

	posts, err := h.postService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Error fetching posts")
		return
	}

	responses.Success(c, http.StatusOK, posts, "")
}

// Author handles GET /api/v1/posts/:post_id/author
func (h *PostHandler) Author(c *gin.Context) {
	postID, ok := uuidParam(c, "post_id", "post")
	if !ok {
		return
	}

	author, err := h.postService.Author(c.Request.Context(), postID)
	if err != nil {
		respondError(c, h.log, err, "Error fetching post author")
		return
	}

	responses.Success(c, http.StatusOK, author, "")
}

// Delete handles DELETE /api/v1/posts/:post_id
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := uuidParam(c, "post_id", "post")
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), userID, postID); err != nil {
		respondError(c, h.log, err, "Error deleting post")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Post deleted successfully")
}
