package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"connectly/internal/database"
	"connectly/internal/models"
	"connectly/internal/repositories"
	"connectly/internal/utils"
)

type UserService struct {
	pool        *pgxpool.Pool
	userRepo    *repositories.UserRepository
	eduRepo     *repositories.EducationRepository
	expRepo     *repositories.ExperienceRepository
	refRepo     *repositories.ReferenceRepository
	linkRepo    *repositories.SkillLinkRepository
	postRepo    *repositories.PostRepository
	commentRepo *repositories.CommentRepository
	likeRepo    *repositories.LikeRepository
	hasher      utils.PasswordHasher
	auth        *AuthService
	log         *zap.Logger
}

// UserRepositories groups the repositories the account operations touch.
type UserRepositories struct {
	Users      *repositories.UserRepository
	Education  *repositories.EducationRepository
	Experience *repositories.ExperienceRepository
	References *repositories.ReferenceRepository
	SkillLinks *repositories.SkillLinkRepository
	Posts      *repositories.PostRepository
	Comments   *repositories.CommentRepository
	Likes      *repositories.LikeRepository
}

func NewUserService(pool *pgxpool.Pool, repos UserRepositories, hasher utils.PasswordHasher, auth *AuthService, log *zap.Logger) *UserService {
	return &UserService{
		pool:        pool,
		userRepo:    repos.Users,
		eduRepo:     repos.Education,
		expRepo:     repos.Experience,
		refRepo:     repos.References,
		linkRepo:    repos.SkillLinks,
		postRepo:    repos.Posts,
		commentRepo: repos.Comments,
		likeRepo:    repos.Likes,
		hasher:      hasher,
		auth:        auth,
		log:         log,
	}
}

type UpdateProfileRequest struct {
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
	About      *string `json:"about"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// GetProfile assembles identity, education, experience, skills and posts of
// a user from one snapshot.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile *models.Profile
	err := database.WithReadOnlyTx(ctx, s.pool, func(tx pgx.Tx) error {
		details, err := s.userRepo.GetDetails(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		if details == nil {
			return notFoundError("User not found")
		}

		education, err := s.eduRepo.ListByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("failed to load education: %w", err)
		}
		experience, err := s.expRepo.ListByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("failed to load experience: %w", err)
		}
		skills, err := s.refRepo.SkillsForUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("failed to load skills: %w", err)
		}
		posts, err := s.postRepo.ListByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("failed to load posts: %w", err)
		}

		profile = &models.Profile{
			User:       *details,
			Education:  nonNil(education),
			Skills:     nonNil(skills),
			Experience: nonNil(experience),
			Posts:      nonNil(posts),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *UserService) GetUserDetails(ctx context.Context, userID uuid.UUID) (*models.UserDetails, error) {
	details, err := s.userRepo.GetDetails(ctx, s.pool, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if details == nil {
		return nil, notFoundError("User not found")
	}
	return details, nil
}

// UpdateProfile changes only the supplied fields; at least one is required.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*models.UserDetails, error) {
	if req.FirstName == nil && req.MiddleName == nil && req.LastName == nil && req.About == nil {
		return nil, validationError("Please provide at least one field to update")
	}
	if blankPtr(req.FirstName) || blankPtr(req.LastName) {
		return nil, validationError("First and last name cannot be empty")
	}

	var details *models.UserDetails
	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		ok, err := s.userRepo.UpdateProfile(ctx, tx, userID,
			trimmed(req.FirstName), trimmed(req.MiddleName), trimmed(req.LastName), trimmed(req.About))
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		if !ok {
			return notFoundError("User not found")
		}
		details, err = s.userRepo.GetDetails(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}

// ChangePassword verifies the old password before any write.
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return validationError("Please provide old and new passwords")
	}
	if req.OldPassword == req.NewPassword {
		return validationError("Old and new passwords cannot be the same")
	}
	if err := ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindUserByID(ctx, s.pool, userID)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return notFoundError("User not found")
	}
	if err := s.hasher.Verify(user.PasswordHash, req.OldPassword); err != nil {
		return unauthorizedError("Invalid old password")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := s.userRepo.UpdatePassword(ctx, tx, userID, hash); err != nil {
			if errors.Is(err, repositories.ErrNoRows) {
				return notFoundError("User not found")
			}
			return fmt.Errorf("failed to update password: %w", err)
		}
		return nil
	})
}

// DeleteAccount removes the user and everything the user owns in one
// transaction, children before parents. The caller's token is revoked after
// the commit.
func (s *UserService) DeleteAccount(ctx context.Context, session models.Session) error {
	userID := session.UserID

	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		contactID, err := s.userRepo.LockContactID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, repositories.ErrNoRows) {
				return notFoundError("User not found")
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}

		if err := s.likeRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.commentRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}

		postIDs, err := s.postRepo.LockIDsByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("failed to lock posts: %w", err)
		}
		for _, postID := range postIDs {
			if err := s.likeRepo.DeleteByPost(ctx, tx, postID); err != nil {
				return err
			}
			if err := s.commentRepo.DeleteByPost(ctx, tx, postID); err != nil {
				return err
			}
		}
		if err := s.postRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}

		if err := s.linkRepo.DeleteAllForUser(ctx, tx, repositories.ExperienceSkills, userID); err != nil {
			return err
		}
		if err := s.expRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.linkRepo.DeleteAllForUser(ctx, tx, repositories.EducationSkills, userID); err != nil {
			return err
		}
		if err := s.eduRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.userRepo.DeleteInstitutionLinks(ctx, tx, userID); err != nil {
			return err
		}

		// users.contact_id is checked at commit, so the contact can go first.
		if err := s.userRepo.DeleteContact(ctx, tx, contactID); err != nil {
			return err
		}
		return s.userRepo.Delete(ctx, tx, userID)
	})
	if err != nil {
		return err
	}

	s.log.Info("account deleted", zap.String("user_id", userID.String()))

	if err := s.auth.Logout(ctx, session); err != nil {
		s.log.Warn("failed to revoke token of deleted account", zap.String("user_id", userID.String()), zap.Error(err))
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
