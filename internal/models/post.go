package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID          uuid.UUID `json:"post_id"`
	UserID      uuid.UUID `json:"user_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Comment struct {
	ID          uuid.UUID `json:"comment_id"`
	PostID      uuid.UUID `json:"post_id"`
	UserID      uuid.UUID `json:"user_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommentWithAuthor carries the commenter's name for post threads.
type CommentWithAuthor struct {
	Comment
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Like is unique per (post, user).
type Like struct {
	ID        uuid.UUID `json:"like_id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
