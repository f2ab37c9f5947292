package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectly/internal/database"
	"connectly/internal/models"
)

// ReferenceRepository resolves institutions, companies and skills by their
// natural key, creating them on first use.
//
// Each lookup is one INSERT ... ON CONFLICT DO UPDATE ... RETURNING statement:
// the no-op update makes Postgres return the id of the existing row, so
// concurrent callers with the same key always converge on one row.
type ReferenceRepository struct {
	pool *pgxpool.Pool
}

func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

func (r *ReferenceRepository) FindOrCreateInstitution(ctx context.Context, db database.DBTX, name, branch string) (uuid.UUID, error) {
	query := `
		INSERT INTO institutions (name, branch)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT institutions_name_branch_key
		DO UPDATE SET name = EXCLUDED.name
		RETURNING institution_id
	`

	var id uuid.UUID
	if err := db.QueryRow(ctx, query, name, branch).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve institution: %w", err)
	}
	return id, nil
}

func (r *ReferenceRepository) FindOrCreateCompany(ctx context.Context, db database.DBTX, name, branch string) (uuid.UUID, error) {
	query := `
		INSERT INTO companies (name, branch)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT companies_name_branch_key
		DO UPDATE SET name = EXCLUDED.name
		RETURNING company_id
	`

	var id uuid.UUID
	if err := db.QueryRow(ctx, query, name, branch).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve company: %w", err)
	}
	return id, nil
}

func (r *ReferenceRepository) FindOrCreateSkill(ctx context.Context, db database.DBTX, name string) (uuid.UUID, error) {
	query := `
		INSERT INTO skills (skill_name)
		VALUES ($1)
		ON CONFLICT ON CONSTRAINT skills_skill_name_key
		DO UPDATE SET skill_name = EXCLUDED.skill_name
		RETURNING skill_id
	`

	var id uuid.UUID
	if err := db.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve skill %q: %w", name, err)
	}
	return id, nil
}

func (r *ReferenceRepository) GetInstitution(ctx context.Context, db database.DBTX, id uuid.UUID) (*models.Institution, error) {
	query := `SELECT institution_id, name, branch FROM institutions WHERE institution_id = $1`

	var inst models.Institution
	if err := db.QueryRow(ctx, query, id).Scan(&inst.ID, &inst.Name, &inst.Branch); err != nil {
		return nil, noRowsAsNil(err)
	}
	return &inst, nil
}

func (r *ReferenceRepository) GetCompany(ctx context.Context, db database.DBTX, id uuid.UUID) (*models.Company, error) {
	query := `SELECT company_id, name, branch FROM companies WHERE company_id = $1`

	var comp models.Company
	if err := db.QueryRow(ctx, query, id).Scan(&comp.ID, &comp.Name, &comp.Branch); err != nil {
		return nil, noRowsAsNil(err)
	}
	return &comp, nil
}

// SkillsForEntries returns the distinct skills linked to an education entry,
// an experience entry, or both. A nil id is ignored.
func (r *ReferenceRepository) SkillsForEntries(ctx context.Context, educationID, experienceID *uuid.UUID) ([]models.Skill, error) {
	query := `
		SELECT s.skill_id, s.skill_name
		FROM education_skills es
		JOIN skills s ON es.skill_id = s.skill_id
		WHERE es.education_id = $1
		UNION
		SELECT s.skill_id, s.skill_name
		FROM experience_skills xs
		JOIN skills s ON xs.skill_id = s.skill_id
		WHERE xs.experience_id = $2
		ORDER BY skill_name
	`

	rows, err := r.pool.Query(ctx, query, educationID, experienceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// SkillsForUser returns the distinct skills linked to any education or
// experience entry of userID.
func (r *ReferenceRepository) SkillsForUser(ctx context.Context, db database.DBTX, userID uuid.UUID) ([]models.Skill, error) {
	query := `
		SELECT s.skill_id, s.skill_name
		FROM skills s
		JOIN education_skills es ON s.skill_id = es.skill_id
		JOIN education_details ed ON es.education_id = ed.education_id
		WHERE ed.user_id = $1
		UNION
		SELECT s.skill_id, s.skill_name
		FROM skills s
		JOIN experience_skills xs ON s.skill_id = xs.skill_id
		JOIN experience_details ex ON xs.experience_id = ex.experience_id
		WHERE ex.user_id = $1
		ORDER BY skill_name
	`

	rows, err := db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}
