package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectly/internal/database"
	"connectly/internal/models"
	"connectly/internal/repositories"
)

type LikeService struct {
	pool     *pgxpool.Pool
	likeRepo *repositories.LikeRepository
	postRepo *repositories.PostRepository
}

func NewLikeService(pool *pgxpool.Pool, likeRepo *repositories.LikeRepository, postRepo *repositories.PostRepository) *LikeService {
	return &LikeService{pool: pool, likeRepo: likeRepo, postRepo: postRepo}
}

// Like records one like of userID on postID. A second like of the same user
// is a conflict.
func (s *LikeService) Like(ctx context.Context, userID, postID uuid.UUID) (*models.Like, error) {
	like := &models.Like{PostID: postID, UserID: userID}

	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		post, err := s.postRepo.GetByID(ctx, tx, postID)
		if err != nil {
			return fmt.Errorf("failed to load post: %w", err)
		}
		if post == nil {
			return notFoundError("Post not found")
		}

		exists, err := s.likeRepo.Exists(ctx, tx, postID, userID)
		if err != nil {
			return fmt.Errorf("failed to check like: %w", err)
		}
		if exists {
			return conflictError("You have already liked this post")
		}

		if err := s.likeRepo.Create(ctx, tx, like); err != nil {
			switch {
			case database.IsUniqueViolation(err, repositories.LikeUniqueConstraint):
				return conflictError("You have already liked this post")
			case database.IsForeignKeyViolation(err):
				return notFoundError("Post not found")
			}
			return fmt.Errorf("failed to like post: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return like, nil
}

func (s *LikeService) Unlike(ctx context.Context, userID, postID uuid.UUID) error {
	ok, err := s.likeRepo.Delete(ctx, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to unlike post: %w", err)
	}
	if !ok {
		return notFoundError("Like not found")
	}
	return nil
}

func (s *LikeService) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Like, error) {
	post, err := s.postRepo.GetByID(ctx, s.pool, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, notFoundError("Post not found")
	}

	likes, err := s.likeRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	return likes, nil
}
