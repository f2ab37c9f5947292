package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"connectly/internal/database"
	"connectly/internal/models"
	"connectly/internal/repositories"
	"connectly/internal/utils"
)

// TokenDenylist revokes access tokens before they expire.
type TokenDenylist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	Blacklist(ctx context.Context, jti string, ttl time.Duration) error
}

type AuthService struct {
	pool     *pgxpool.Pool
	userRepo *repositories.UserRepository
	hasher   utils.PasswordHasher
	tokens   *utils.TokenManager
	denylist TokenDenylist
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(
	pool *pgxpool.Pool,
	userRepo *repositories.UserRepository,
	hasher utils.PasswordHasher,
	tokens *utils.TokenManager,
	denylist TokenDenylist,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		pool:     pool,
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		denylist: denylist,
		log:      log,
		now:      time.Now,
	}
}

type SignupRequest struct {
	Email      string  `json:"email"`
	Website    *string `json:"website"`
	FirstName  string  `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   string  `json:"last_name"`
	About      *string `json:"about"`
	Password   string  `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      *models.UserDetails `json:"user"`
}

// Signup validates the payload, then inserts the contact and the user in one
// transaction. The password is hashed before the transaction starts.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (uuid.UUID, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" || blank(req.FirstName) || blank(req.LastName) {
		return uuid.Nil, validationError("Please provide all required fields")
	}
	if err := ValidateEmail(email); err != nil {
		return uuid.Nil, err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return uuid.Nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, s.pool, email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return uuid.Nil, conflictError("Account already exists with this email")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		MiddleName:   trimmed(req.MiddleName),
		LastName:     strings.TrimSpace(req.LastName),
		About:        trimmed(req.About),
		PasswordHash: hash,
	}
	err = database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		contact := &models.ContactInfo{Email: email, Website: req.Website}
		if err := s.userRepo.CreateContact(ctx, tx, contact); err != nil {
			// Lost a race with a concurrent signup for the same email.
			if database.IsUniqueViolation(err, "contact_information_email_key") {
				return conflictError("Account already exists with this email")
			}
			return fmt.Errorf("failed to insert contact information: %w", err)
		}

		user.ContactID = contact.ID
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.Info("user signed up", zap.String("user_id", user.ID.String()))
	return user.ID, nil
}

// Login returns the same error for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, validationError("Please provide email and password")
	}

	user, contact, err := s.userRepo.FindCredentialsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	if user == nil {
		return nil, unauthorizedError("Invalid email or password")
	}

	if err := s.hasher.Verify(user.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, utils.ErrPasswordMismatch) {
			s.log.Warn("stored password hash is unreadable", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
		return nil, unauthorizedError("Invalid email or password")
	}

	token, session, err := s.tokens.Generate(user.ID, contact.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User: &models.UserDetails{
			UserID:     user.ID,
			FirstName:  user.FirstName,
			MiddleName: user.MiddleName,
			LastName:   user.LastName,
			About:      user.About,
			Email:      contact.Email,
			Website:    contact.Website,
		},
	}, nil
}

// Logout revokes the token of session for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, session models.Session) error {
	if err := s.denylist.Blacklist(ctx, session.TokenID, session.TTL(s.now())); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
