package services

import (
	"context"

	"github.com/google/uuid"

	"connectly/internal/database"
	"connectly/internal/models"
	"connectly/internal/repositories"
)

// SkillReconciler replaces the full skill set of an education or experience
// entry.
type SkillReconciler struct {
	refs  *repositories.ReferenceRepository
	links *repositories.SkillLinkRepository
}

func NewSkillReconciler(refs *repositories.ReferenceRepository, links *repositories.SkillLinkRepository) *SkillReconciler {
	return &SkillReconciler{refs: refs, links: links}
}

// Reconcile must run inside the caller's transaction. Afterwards the links of
// ownerID are exactly the skills named in names (trimmed, empty names
// dropped, duplicates collapsed); nil or empty names leave no links.
// Statements are issued one after another since a pgx.Tx is not safe for
// concurrent use.
func (s *SkillReconciler) Reconcile(ctx context.Context, tx database.DBTX, owner repositories.SkillOwner, ownerID uuid.UUID, names models.SkillList) error {
	if err := s.links.DeleteAll(ctx, tx, owner, ownerID); err != nil {
		return err
	}

	for _, name := range names.Normalize() {
		skillID, err := s.refs.FindOrCreateSkill(ctx, tx, name)
		if err != nil {
			return err
		}
		if err := s.links.Link(ctx, tx, owner, ownerID, skillID); err != nil {
			return err
		}
	}

	return nil
}
