package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"connectly/internal/database"
	"connectly/internal/models"
	"connectly/internal/repositories"
)

type PostService struct {
	pool        *pgxpool.Pool
	postRepo    *repositories.PostRepository
	commentRepo *repositories.CommentRepository
	likeRepo    *repositories.LikeRepository
	userRepo    *repositories.UserRepository
	log         *zap.Logger
}

func NewPostService(
	pool *pgxpool.Pool,
	postRepo *repositories.PostRepository,
	commentRepo *repositories.CommentRepository,
	likeRepo *repositories.LikeRepository,
	userRepo *repositories.UserRepository,
	log *zap.Logger,
) *PostService {
	return &PostService{
		pool:        pool,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

type CreatePostRequest struct {
	Description string `json:"description"`
}

func (s *PostService) Create(ctx context.Context, userID uuid.UUID, req CreatePostRequest) (*models.Post, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, validationError("Description is required")
	}

	post := &models.Post{UserID: userID, Description: description}
	if err := s.postRepo.Create(ctx, post); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, notFoundError("User not found")
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.log.Info("post created", zap.String("post_id", post.ID.String()), zap.String("user_id", userID.String()))
	return post, nil
}

// ListByUser returns the posts of a user, oldest first.
func (s *PostService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Post, error) {
	posts, err := s.postRepo.ListByUser(ctx, s.pool, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return nonNil(posts), nil
}

// Feed returns every post, newest first.
func (s *PostService) Feed(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepo.Feed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return nonNil(posts), nil
}

// Author returns the identity of the user who wrote postID.
func (s *PostService) Author(ctx context.Context, postID uuid.UUID) (*models.UserDetails, error) {
	post, err := s.postRepo.GetByID(ctx, s.pool, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, notFoundError("Post not found")
	}

	details, err := s.userRepo.GetDetails(ctx, s.pool, post.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author: %w", err)
	}
	if details == nil {
		return nil, notFoundError("User not found")
	}
	return details, nil
}

// Delete removes the post with its likes and comments in one transaction.
// Only the author may delete a post.
func (s *PostService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		ownerID, found, err := s.postRepo.LockOwner(ctx, tx, postID)
		if err != nil {
			return fmt.Errorf("failed to load post: %w", err)
		}
		if !found {
			return notFoundError("Post not found")
		}
		if ownerID != userID {
			return forbiddenError("You are not allowed to delete this post")
		}

		if err := s.likeRepo.DeleteByPost(ctx, tx, postID); err != nil {
			return err
		}
		if err := s.commentRepo.DeleteByPost(ctx, tx, postID); err != nil {
			return err
		}
		return s.postRepo.Delete(ctx, tx, postID)
	})
	if err != nil {
		return err
	}

	s.log.Info("post deleted", zap.String("post_id", postID.String()), zap.String("user_id", userID.String()))
	return nil
}
