package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectly/internal/database"
	"connectly/internal/models"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (user_id, description)
		VALUES ($1, $2)
		RETURNING post_id, created_at
	`

	return r.pool.QueryRow(ctx, query, post.UserID, post.Description).Scan(&post.ID, &post.CreatedAt)
}

func (r *PostRepository) GetByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*models.Post, error) {
	query := `SELECT post_id, user_id, description, created_at FROM posts WHERE post_id = $1`

	var p models.Post
	if err := db.QueryRow(ctx, query, id).Scan(&p.ID, &p.UserID, &p.Description, &p.CreatedAt); err != nil {
		return nil, noRowsAsNil(err)
	}
	return &p, nil
}

// LockOwner locks the post row and returns its author, or uuid.Nil and
// false when the post does not exist.
func (r *PostRepository) LockOwner(ctx context.Context, db database.DBTX, id uuid.UUID) (uuid.UUID, bool, error) {
	var userID uuid.UUID
	err := db.QueryRow(ctx, `SELECT user_id FROM posts WHERE post_id = $1 FOR UPDATE`, id).Scan(&userID)
	if err != nil {
		if err = noRowsAsNil(err); err != nil {
			return uuid.Nil, false, err
		}
		return uuid.Nil, false, nil
	}
	return userID, true, nil
}

// ListByUser returns the posts of userID, oldest first.
func (r *PostRepository) ListByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) ([]models.Post, error) {
	query := `
		SELECT post_id, user_id, description, created_at
		FROM posts WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

// Feed returns every post, newest first.
func (r *PostRepository) Feed(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT post_id, user_id, description, created_at
		FROM posts
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (r *PostRepository) Delete(ctx context.Context, db database.DBTX, id uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM posts WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (r *PostRepository) DeleteByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM posts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete posts of user: %w", err)
	}
	return nil
}

// LockIDsByUser returns the ids of the posts written by userID and locks
// them until db commits. Comments and likes on those posts wait for the lock.
func (r *PostRepository) LockIDsByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, `SELECT post_id FROM posts WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanPosts(rows pgx.Rows) ([]models.Post, error) {
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
