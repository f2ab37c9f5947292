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

type EducationService struct {
	pool       *pgxpool.Pool
	eduRepo    *repositories.EducationRepository
	refRepo    *repositories.ReferenceRepository
	userRepo   *repositories.UserRepository
	reconciler *SkillReconciler
	log        *zap.Logger
}

func NewEducationService(
	pool *pgxpool.Pool,
	eduRepo *repositories.EducationRepository,
	refRepo *repositories.ReferenceRepository,
	userRepo *repositories.UserRepository,
	reconciler *SkillReconciler,
	log *zap.Logger,
) *EducationService {
	return &EducationService{
		pool:       pool,
		eduRepo:    eduRepo,
		refRepo:    refRepo,
		userRepo:   userRepo,
		reconciler: reconciler,
		log:        log,
	}
}

type CreateEducationRequest struct {
	Name        string           `json:"name"`
	Branch      string           `json:"branch"`
	Degree      string           `json:"degree"`
	School      *string          `json:"school"`
	StartDate   *models.Date     `json:"start_date"`
	EndDate     *models.Date     `json:"end_date"`
	Grade       *string          `json:"grade"`
	Description *string          `json:"description"`
	Skills      models.SkillList `json:"skills"`
}

func (r *CreateEducationRequest) validate() error {
	if blank(r.Name) || blank(r.Branch) || blank(r.Degree) {
		return validationError("Institution name, branch and degree are required")
	}
	return validateDateRange(r.StartDate, r.EndDate)
}

// UpdateEducationRequest only changes the fields it carries. Skills always
// replace the current set.
type UpdateEducationRequest struct {
	Name        *string          `json:"name"`
	Branch      *string          `json:"branch"`
	Degree      *string          `json:"degree"`
	School      *string          `json:"school"`
	StartDate   *models.Date     `json:"start_date"`
	EndDate     *models.Date     `json:"end_date"`
	Grade       *string          `json:"grade"`
	Description *string          `json:"description"`
	Skills      models.SkillList `json:"skills"`
}

func (r *UpdateEducationRequest) validate() error {
	if blankPtr(r.Name) || blankPtr(r.Branch) || blankPtr(r.Degree) {
		return validationError("Institution name, branch and degree cannot be empty")
	}
	return validateDateRange(r.StartDate, r.EndDate)
}

// Create resolves the institution, inserts the entry and links its skills in
// one transaction.
func (s *EducationService) Create(ctx context.Context, userID uuid.UUID, req CreateEducationRequest) (*models.Education, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var created *models.Education
	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		institutionID, err := s.refRepo.FindOrCreateInstitution(ctx, tx, strings.TrimSpace(req.Name), strings.TrimSpace(req.Branch))
		if err != nil {
			return err
		}

		edu := &models.Education{
			UserID:        userID,
			InstitutionID: institutionID,
			Degree:        strings.TrimSpace(req.Degree),
			School:        trimmed(req.School),
			StartDate:     req.StartDate,
			EndDate:       req.EndDate,
			Grade:         trimmed(req.Grade),
			Description:   trimmed(req.Description),
		}
		if err := s.eduRepo.Create(ctx, tx, edu); err != nil {
			if database.IsForeignKeyViolation(err) {
				return notFoundError("User not found")
			}
			return fmt.Errorf("failed to insert education details: %w", err)
		}

		if err := s.userRepo.LinkInstitution(ctx, tx, userID, institutionID); err != nil {
			return err
		}

		if err := s.reconciler.Reconcile(ctx, tx, repositories.EducationSkills, edu.ID, req.Skills); err != nil {
			return err
		}

		created, err = s.eduRepo.GetByID(ctx, tx, edu.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("education created", zap.String("education_id", created.ID.String()), zap.String("user_id", userID.String()))
	return created, nil
}

// Update checks existence and ownership explicitly, then applies the changes
// and replaces the skills in one transaction.
func (s *EducationService) Update(ctx context.Context, userID, educationID uuid.UUID, req UpdateEducationRequest) (*models.Education, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var updated *models.Education
	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		owner, err := s.eduRepo.LockOwner(ctx, tx, educationID)
		if err != nil {
			return err
		}
		if owner == nil {
			return notFoundError("Education details not found")
		}
		if owner.UserID != userID {
			return forbiddenError("You are not allowed to update this education entry")
		}

		institutionID := owner.ReferenceID
		if req.Name != nil || req.Branch != nil {
			current, err := s.refRepo.GetInstitution(ctx, tx, owner.ReferenceID)
			if err != nil {
				return err
			}
			if current == nil {
				return fmt.Errorf("institution %s of education %s is missing", owner.ReferenceID, educationID)
			}
			name, branch := current.Name, current.Branch
			if req.Name != nil {
				name = strings.TrimSpace(*req.Name)
			}
			if req.Branch != nil {
				branch = strings.TrimSpace(*req.Branch)
			}
			if institutionID, err = s.refRepo.FindOrCreateInstitution(ctx, tx, name, branch); err != nil {
				return err
			}
		}

		changes := models.EducationChanges{
			Degree:      trimmed(req.Degree),
			School:      trimmed(req.School),
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Grade:       trimmed(req.Grade),
			Description: trimmed(req.Description),
		}
		ok, err := s.eduRepo.Update(ctx, tx, educationID, userID, institutionID, changes)
		if err != nil {
			return err
		}
		if !ok {
			return notFoundError("Education details not found")
		}

		if institutionID != owner.ReferenceID {
			if err := s.userRepo.LinkInstitution(ctx, tx, userID, institutionID); err != nil {
				return err
			}
			if err := s.userRepo.PruneInstitutionLink(ctx, tx, userID, owner.ReferenceID); err != nil {
				return err
			}
		}

		if err := s.reconciler.Reconcile(ctx, tx, repositories.EducationSkills, educationID, req.Skills); err != nil {
			return err
		}

		updated, err = s.eduRepo.GetByID(ctx, tx, educationID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the entry and its skill links after the ownership check.
func (s *EducationService) Delete(ctx context.Context, userID, educationID uuid.UUID) error {
	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		owner, err := s.eduRepo.LockOwner(ctx, tx, educationID)
		if err != nil {
			return err
		}
		if owner == nil {
			return notFoundError("Education details not found")
		}
		if owner.UserID != userID {
			return forbiddenError("You are not allowed to delete this education entry")
		}

		if err := s.reconciler.links.DeleteAll(ctx, tx, repositories.EducationSkills, educationID); err != nil {
			return err
		}
		if err := s.eduRepo.Delete(ctx, tx, educationID); err != nil {
			return err
		}
		return s.userRepo.PruneInstitutionLink(ctx, tx, userID, owner.ReferenceID)
	})
	if err != nil {
		return err
	}

	s.log.Info("education deleted", zap.String("education_id", educationID.String()), zap.String("user_id", userID.String()))
	return nil
}

func (s *EducationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Education, error) {
	return s.eduRepo.ListByUser(ctx, s.pool, userID)
}
