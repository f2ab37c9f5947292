package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectly/internal/database"
	"connectly/internal/models"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, db database.DBTX, c *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, user_id, description)
		VALUES ($1, $2, $3)
		RETURNING comment_id, created_at
	`

	return db.QueryRow(ctx, query, c.PostID, c.UserID, c.Description).Scan(&c.ID, &c.CreatedAt)
}

// ListByPost returns the comments of a post with the commenter's name,
// oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.CommentWithAuthor, error) {
	query := `
		SELECT c.comment_id, c.post_id, c.user_id, c.description, c.created_at, u.first_name, u.last_name
		FROM comments c
		JOIN users u ON c.user_id = u.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.CommentWithAuthor{}
	for rows.Next() {
		var c models.CommentWithAuthor
		err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Description, &c.CreatedAt, &c.FirstName, &c.LastName)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Comment, error) {
	query := `
		SELECT comment_id, post_id, user_id, description, created_at
		FROM comments WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, db database.DBTX, postID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete comments of post: %w", err)
	}
	return nil
}

func (r *CommentRepository) DeleteByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM comments WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete comments of user: %w", err)
	}
	return nil
}

func (r *CommentRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
