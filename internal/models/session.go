package models

import (
	"time"

	"github.com/google/uuid"
)

// Session describes one issued access token.
type Session struct {
	TokenID   string    `json:"-"`
	UserID    uuid.UUID `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TTL is the time left before the token expires, never negative.
func (s *Session) TTL(now time.Time) time.Duration {
	if d := s.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
