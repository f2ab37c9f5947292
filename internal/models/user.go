package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactInfo matches the contact_information table. Each row belongs to
// exactly one user.
type ContactInfo struct {
	ID      uuid.UUID `json:"contact_id"`
	Email   string    `json:"email"`
	Website *string   `json:"website,omitempty"`
}

func (c *ContactInfo) Prepare() {
	c.Email = strings.TrimSpace(c.Email)
	if c.Website != nil {
		w := strings.TrimSpace(*c.Website)
		c.Website = &w
	}
}

// User matches the users table.
type User struct {
	ID           uuid.UUID `json:"user_id"`
	FirstName    string    `json:"first_name"`
	MiddleName   *string   `json:"middle_name,omitempty"`
	LastName     string    `json:"last_name"`
	About        *string   `json:"about,omitempty"`
	PasswordHash string    `json:"-"`
	ContactID    uuid.UUID `json:"contact_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) Prepare() {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
}

// UserDetails is the public identity of a user joined with its contact row.
type UserDetails struct {
	UserID     uuid.UUID `json:"user_id"`
	FirstName  string    `json:"first_name"`
	MiddleName *string   `json:"middle_name,omitempty"`
	LastName   string    `json:"last_name"`
	About      *string   `json:"about,omitempty"`
	Email      string    `json:"email"`
	Website    *string   `json:"website,omitempty"`
}
