package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectly/internal/database"
	"connectly/internal/models"
)

// LikeUniqueConstraint enforces one like per user per post.
const LikeUniqueConstraint = "likes_post_id_user_id_key"

type LikeRepository struct {
	pool *pgxpool.Pool
}

func NewLikeRepository(pool *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{pool: pool}
}

func (r *LikeRepository) Exists(ctx context.Context, db database.DBTX, postID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM likes WHERE post_id = $1 AND user_id = $2)`

	var exists bool
	if err := db.QueryRow(ctx, query, postID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a like. A duplicate surfaces as a unique violation on
// LikeUniqueConstraint.
func (r *LikeRepository) Create(ctx context.Context, db database.DBTX, like *models.Like) error {
	query := `
		INSERT INTO likes (post_id, user_id)
		VALUES ($1, $2)
		RETURNING like_id, created_at
	`

	return db.QueryRow(ctx, query, like.PostID, like.UserID).Scan(&like.ID, &like.CreatedAt)
}

// Delete removes the like of userID on postID and reports whether one existed.
func (r *LikeRepository) Delete(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *LikeRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Like, error) {
	query := `
		SELECT like_id, post_id, user_id, created_at
		FROM likes WHERE post_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []models.Like{}
	for rows.Next() {
		var l models.Like
		if err := rows.Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, err
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}

func (r *LikeRepository) DeleteByPost(ctx context.Context, db database.DBTX, postID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM likes WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete likes of post: %w", err)
	}
	return nil
}

func (r *LikeRepository) DeleteByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM likes WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete likes of user: %w", err)
	}
	return nil
}

func (r *LikeRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
