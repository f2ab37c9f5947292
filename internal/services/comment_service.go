package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectly/internal/database"
	"connectly/internal/models"
	"connectly/internal/repositories"
)

type CommentService struct {
	pool        *pgxpool.Pool
	commentRepo *repositories.CommentRepository
	postRepo    *repositories.PostRepository
}

func NewCommentService(pool *pgxpool.Pool, commentRepo *repositories.CommentRepository, postRepo *repositories.PostRepository) *CommentService {
	return &CommentService{pool: pool, commentRepo: commentRepo, postRepo: postRepo}
}

type AddCommentRequest struct {
	PostID      string `json:"post_id" binding:"required"`
	Description string `json:"description"`
}

func (s *CommentService) Add(ctx context.Context, userID uuid.UUID, req AddCommentRequest) (*models.Comment, error) {
	description := strings.TrimSpace(req.Description)
	if req.PostID == "" || description == "" {
		return nil, validationError("Post id and description are required")
	}
	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return nil, validationError("Invalid post id")
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Description: description}
	err = database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		post, err := s.postRepo.GetByID(ctx, tx, postID)
		if err != nil {
			return fmt.Errorf("failed to load post: %w", err)
		}
		if post == nil {
			return notFoundError("Post not found")
		}

		if err := s.commentRepo.Create(ctx, tx, comment); err != nil {
			// The post was deleted after the check.
			if database.IsForeignKeyViolation(err) {
				return notFoundError("Post not found")
			}
			return fmt.Errorf("failed to add comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.CommentWithAuthor, error) {
	post, err := s.postRepo.GetByID(ctx, s.pool, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, notFoundError("Post not found")
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// ListMine returns the comments written by userID.
func (s *CommentService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return nonNil(comments), nil
}
