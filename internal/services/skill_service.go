package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"connectly/internal/models"
	"connectly/internal/repositories"
)

type SkillService struct {
	refRepo *repositories.ReferenceRepository
}

func NewSkillService(refRepo *repositories.ReferenceRepository) *SkillService {
	return &SkillService{refRepo: refRepo}
}

// ForEntries returns the skills linked to an education entry, an experience
// entry, or both, each skill once.
func (s *SkillService) ForEntries(ctx context.Context, educationID, experienceID *uuid.UUID) ([]models.Skill, error) {
	if educationID == nil && experienceID == nil {
		return nil, validationError("Provide an education_id or an experience_id")
	}

	skills, err := s.refRepo.SkillsForEntries(ctx, educationID, experienceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	return nonNil(skills), nil
}
