package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectly/internal/database"
)

// SkillOwner names a junction table that links skills to an owning record.
type SkillOwner struct {
	Name   string
	Table  string
	Column string
}

var (
	EducationSkills  = SkillOwner{Name: "education", Table: "education_skills", Column: "education_id"}
	ExperienceSkills = SkillOwner{Name: "experience", Table: "experience_skills", Column: "experience_id"}
)

type SkillLinkRepository struct {
	pool *pgxpool.Pool
}

func NewSkillLinkRepository(pool *pgxpool.Pool) *SkillLinkRepository {
	return &SkillLinkRepository{pool: pool}
}

// DeleteAll removes every junction row of ownerID.
func (r *SkillLinkRepository) DeleteAll(ctx context.Context, db database.DBTX, owner SkillOwner, ownerID uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, owner.Table, owner.Column)
	if _, err := db.Exec(ctx, query, ownerID); err != nil {
		return fmt.Errorf("failed to delete %s skills: %w", owner.Name, err)
	}
	return nil
}

// DeleteAllForUser removes the junction rows of every record owned by userID.
func (r *SkillLinkRepository) DeleteAllForUser(ctx context.Context, db database.DBTX, owner SkillOwner, userID uuid.UUID) error {
	parent := owner.Name + "_details"
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE %s IN (SELECT %s FROM %s WHERE user_id = $1)`,
		owner.Table, owner.Column, owner.Column, parent,
	)
	if _, err := db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete %s skills of user: %w", owner.Name, err)
	}
	return nil
}

// Link inserts one junction row; an existing identical row is left alone.
func (r *SkillLinkRepository) Link(ctx context.Context, db database.DBTX, owner SkillOwner, ownerID, skillID uuid.UUID) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		owner.Table, owner.Column,
	)
	if _, err := db.Exec(ctx, query, ownerID, skillID); err != nil {
		return fmt.Errorf("failed to link %s skill: %w", owner.Name, err)
	}
	return nil
}

// SkillIDs returns the skill ids currently linked to ownerID.
func (r *SkillLinkRepository) SkillIDs(ctx context.Context, db database.DBTX, owner SkillOwner, ownerID uuid.UUID) ([]uuid.UUID, error) {
	query := fmt.Sprintf(`SELECT skill_id FROM %s WHERE %s = $1 ORDER BY skill_id`, owner.Table, owner.Column)

	rows, err := db.Query(ctx, query, ownerID)
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
