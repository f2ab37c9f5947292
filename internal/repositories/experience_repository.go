package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"connectly/internal/database"
	"connectly/internal/models"
)

type ExperienceRepository struct {
	pool *pgxpool.Pool
}

func NewExperienceRepository(pool *pgxpool.Pool) *ExperienceRepository {
	return &ExperienceRepository{pool: pool}
}

const experienceSelect = `
	SELECT
		ex.experience_id,
		ex.user_id,
		ex.company_id,
		comp.name,
		comp.branch,
		ex.job_role,
		ex.job_type,
		ex.start_date,
		ex.end_date,
		ex.description,
		COALESCE(ARRAY_AGG(s.skill_name ORDER BY s.skill_name) FILTER (WHERE s.skill_id IS NOT NULL), '{}') AS skills
	FROM experience_details ex
	JOIN companies comp ON ex.company_id = comp.company_id
	LEFT JOIN experience_skills xs ON ex.experience_id = xs.experience_id
	LEFT JOIN skills s ON xs.skill_id = s.skill_id
`

func (r *ExperienceRepository) Create(ctx context.Context, db database.DBTX, e *models.Experience) error {
	query := `
		INSERT INTO experience_details
			(user_id, company_id, job_role, job_type, start_date, end_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING experience_id
	`

	return db.QueryRow(ctx, query,
		e.UserID,
		e.CompanyID,
		e.JobRole,
		e.JobType,
		e.StartDate.Time,
		e.EndDate.TimePtr(),
		e.Description,
	).Scan(&e.ID)
}

func (r *ExperienceRepository) LockOwner(ctx context.Context, db database.DBTX, id uuid.UUID) (*EntryOwner, error) {
	query := `SELECT user_id, company_id FROM experience_details WHERE experience_id = $1 FOR UPDATE`

	var o EntryOwner
	if err := db.QueryRow(ctx, query, id).Scan(&o.UserID, &o.ReferenceID); err != nil {
		return nil, noRowsAsNil(err)
	}
	return &o, nil
}

func (r *ExperienceRepository) Update(ctx context.Context, db database.DBTX, id, userID, companyID uuid.UUID, c models.ExperienceChanges) (bool, error) {
	query := `
		UPDATE experience_details
		SET company_id = $3,
		    job_role = COALESCE($4, job_role),
		    job_type = COALESCE($5, job_type),
		    start_date = COALESCE($6, start_date),
		    end_date = COALESCE($7, end_date),
		    description = COALESCE($8, description)
		WHERE experience_id = $1 AND user_id = $2
	`

	tag, err := db.Exec(ctx, query,
		id,
		userID,
		companyID,
		c.JobRole,
		c.JobType,
		c.StartDate.TimePtr(),
		c.EndDate.TimePtr(),
		c.Description,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update experience details: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ExperienceRepository) Delete(ctx context.Context, db database.DBTX, id uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM experience_details WHERE experience_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete experience details: %w", err)
	}
	return nil
}

func (r *ExperienceRepository) DeleteByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM experience_details WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete experience details of user: %w", err)
	}
	return nil
}

func (r *ExperienceRepository) GetByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*models.Experience, error) {
	query := experienceSelect + `
		WHERE ex.experience_id = $1
		GROUP BY ex.experience_id, comp.name, comp.branch
	`

	rows, err := db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	list, err := scanExperience(rows)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

func (r *ExperienceRepository) ListByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) ([]models.Experience, error) {
	query := experienceSelect + `
		WHERE ex.user_id = $1
		GROUP BY ex.experience_id, comp.name, comp.branch
		ORDER BY ex.start_date DESC NULLS LAST
	`

	rows, err := db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanExperience(rows)
}

func scanExperience(rows pgx.Rows) ([]models.Experience, error) {
	defer rows.Close()

	list := []models.Experience{}
	for rows.Next() {
		var e models.Experience
		var start time.Time
		var end *time.Time
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.CompanyID,
			&e.CompanyName,
			&e.CompanyBranch,
			&e.JobRole,
			&e.JobType,
			&start,
			&end,
			&e.Description,
			&e.Skills,
		)
		if err != nil {
			return nil, err
		}
		e.StartDate = models.NewDate(start)
		e.EndDate = models.DatePtr(end)
		list = append(list, e)
	}
	return list, rows.Err()
}
