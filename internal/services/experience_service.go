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

type ExperienceService struct {
	pool       *pgxpool.Pool
	expRepo    *repositories.ExperienceRepository
	refRepo    *repositories.ReferenceRepository
	reconciler *SkillReconciler
	log        *zap.Logger
}

func NewExperienceService(
	pool *pgxpool.Pool,
	expRepo *repositories.ExperienceRepository,
	refRepo *repositories.ReferenceRepository,
	reconciler *SkillReconciler,
	log *zap.Logger,
) *ExperienceService {
	return &ExperienceService{
		pool:       pool,
		expRepo:    expRepo,
		refRepo:    refRepo,
		reconciler: reconciler,
		log:        log,
	}
}

// CreateExperienceRequest accepts skills either as a JSON array or as one
// comma separated string.
type CreateExperienceRequest struct {
	Company     string           `json:"company"`
	Branch      string           `json:"branch"`
	JobRole     string           `json:"job_role"`
	JobType     *string          `json:"job_type"`
	StartDate   *models.Date     `json:"start_date"`
	EndDate     *models.Date     `json:"end_date"`
	Description *string          `json:"description"`
	Skills      models.SkillList `json:"skills"`
}

func (r *CreateExperienceRequest) validate() error {
	if blank(r.Company) || blank(r.Branch) || blank(r.JobRole) || r.StartDate == nil {
		return validationError("Company, branch, job role and start date are required")
	}
	return validateDateRange(r.StartDate, r.EndDate)
}

type UpdateExperienceRequest struct {
	Company     *string          `json:"company"`
	Branch      *string          `json:"branch"`
	JobRole     *string          `json:"job_role"`
	JobType     *string          `json:"job_type"`
	StartDate   *models.Date     `json:"start_date"`
	EndDate     *models.Date     `json:"end_date"`
	Description *string          `json:"description"`
	Skills      models.SkillList `json:"skills"`
}

func (r *UpdateExperienceRequest) validate() error {
	if blankPtr(r.Company) || blankPtr(r.Branch) || blankPtr(r.JobRole) {
		return validationError("Company, branch and job role cannot be empty")
	}
	return validateDateRange(r.StartDate, r.EndDate)
}

func (s *ExperienceService) Create(ctx context.Context, userID uuid.UUID, req CreateExperienceRequest) (*models.Experience, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var created *models.Experience
	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		companyID, err := s.refRepo.FindOrCreateCompany(ctx, tx, strings.TrimSpace(req.Company), strings.TrimSpace(req.Branch))
		if err != nil {
			return err
		}

		exp := &models.Experience{
			UserID:      userID,
			CompanyID:   companyID,
			JobRole:     strings.TrimSpace(req.JobRole),
			JobType:     trimmed(req.JobType),
			StartDate:   *req.StartDate,
			EndDate:     req.EndDate,
			Description: trimmed(req.Description),
		}
		if err := s.expRepo.Create(ctx, tx, exp); err != nil {
			if database.IsForeignKeyViolation(err) {
				return notFoundError("User not found")
			}
			return fmt.Errorf("failed to insert experience details: %w", err)
		}

		if err := s.reconciler.Reconcile(ctx, tx, repositories.ExperienceSkills, exp.ID, req.Skills); err != nil {
			return err
		}

		created, err = s.expRepo.GetByID(ctx, tx, exp.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("experience created", zap.String("experience_id", created.ID.String()), zap.String("user_id", userID.String()))
	return created, nil
}

func (s *ExperienceService) Update(ctx context.Context, userID, experienceID uuid.UUID, req UpdateExperienceRequest) (*models.Experience, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var updated *models.Experience
	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		owner, err := s.expRepo.LockOwner(ctx, tx, experienceID)
		if err != nil {
			return err
		}
		if owner == nil {
			return notFoundError("Experience details not found")
		}
		if owner.UserID != userID {
			return forbiddenError("You are not allowed to update this experience entry")
		}

		companyID := owner.ReferenceID
		if req.Company != nil || req.Branch != nil {
			current, err := s.refRepo.GetCompany(ctx, tx, owner.ReferenceID)
			if err != nil {
				return err
			}
			if current == nil {
				return fmt.Errorf("company %s of experience %s is missing", owner.ReferenceID, experienceID)
			}
			name, branch := current.Name, current.Branch
			if req.Company != nil {
				name = strings.TrimSpace(*req.Company)
			}
			if req.Branch != nil {
				branch = strings.TrimSpace(*req.Branch)
			}
			if companyID, err = s.refRepo.FindOrCreateCompany(ctx, tx, name, branch); err != nil {
				return err
			}
		}

		changes := models.ExperienceChanges{
			JobRole:     trimmed(req.JobRole),
			JobType:     trimmed(req.JobType),
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Description: trimmed(req.Description),
		}
		ok, err := s.expRepo.Update(ctx, tx, experienceID, userID, companyID, changes)
		if err != nil {
			return err
		}
		if !ok {
			return notFoundError("Experience details not found")
		}

		if err := s.reconciler.Reconcile(ctx, tx, repositories.ExperienceSkills, experienceID, req.Skills); err != nil {
			return err
		}

		updated, err = s.expRepo.GetByID(ctx, tx, experienceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *ExperienceService) Delete(ctx context.Context, userID, experienceID uuid.UUID) error {
	err := database.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		owner, err := s.expRepo.LockOwner(ctx, tx, experienceID)
		if err != nil {
			return err
		}
		if owner == nil {
			return notFoundError("Experience details not found")
		}
		if owner.UserID != userID {
			return forbiddenError("You are not allowed to delete this experience entry")
		}

		if err := s.reconciler.links.DeleteAll(ctx, tx, repositories.ExperienceSkills, experienceID); err != nil {
			return err
		}
		return s.expRepo.Delete(ctx, tx, experienceID)
	})
	if err != nil {
		return err
	}

	s.log.Info("experience deleted", zap.String("experience_id", experienceID.String()), zap.String("user_id", userID.String()))
	return nil
}

func (s *ExperienceService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Experience, error) {
	return s.expRepo.ListByUser(ctx, s.pool, userID)
}
