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

type EducationRepository struct {
	pool *pgxpool.Pool
}

func NewEducationRepository(pool *pgxpool.Pool) *EducationRepository {
	return &EducationRepository{pool: pool}
}

// EntryOwner is the owning user and reference row of an education or
// experience entry.
type EntryOwner struct {
	UserID      uuid.UUID
	ReferenceID uuid.UUID
}

const educationSelect = `
	SELECT
		ed.education_id,
		ed.user_id,
		ed.institution_id,
		ins.name,
		ins.branch,
		ed.degree,
		ed.school,
		ed.start_date,
		ed.end_date,
		ed.grade,
		ed.description,
		COALESCE(ARRAY_AGG(s.skill_name ORDER BY s.skill_name) FILTER (WHERE s.skill_id IS NOT NULL), '{}') AS skills
	FROM education_details ed
	JOIN institutions ins ON ed.institution_id = ins.institution_id
	LEFT JOIN education_skills es ON ed.education_id = es.education_id
	LEFT JOIN skills s ON es.skill_id = s.skill_id
`

func (r *EducationRepository) Create(ctx context.Context, db database.DBTX, e *models.Education) error {
	query := `
		INSERT INTO education_details
			(user_id, institution_id, degree, school, start_date, end_date, grade, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING education_id
	`

	return db.QueryRow(ctx, query,
		e.UserID,
		e.InstitutionID,
		e.Degree,
		e.School,
		e.StartDate.TimePtr(),
		e.EndDate.TimePtr(),
		e.Grade,
		e.Description,
	).Scan(&e.ID)
}

// LockOwner locks the entry row for the rest of the transaction and returns
// its owner, or nil when the entry does not exist.
func (r *EducationRepository) LockOwner(ctx context.Context, db database.DBTX, id uuid.UUID) (*EntryOwner, error) {
	query := `SELECT user_id, institution_id FROM education_details WHERE education_id = $1 FOR UPDATE`

	var o EntryOwner
	if err := db.QueryRow(ctx, query, id).Scan(&o.UserID, &o.ReferenceID); err != nil {
		return nil, noRowsAsNil(err)
	}
	return &o, nil
}

// Update sets the institution and every non-nil field. The user id is part
// of the predicate, so it only touches rows the caller owns.
func (r *EducationRepository) Update(ctx context.Context, db database.DBTX, id, userID, institutionID uuid.UUID, c models.EducationChanges) (bool, error) {
	query := `
		UPDATE education_details
		SET institution_id = $3,
		    degree = COALESCE($4, degree),
		    school = COALESCE($5, school),
		    start_date = COALESCE($6, start_date),
		    end_date = COALESCE($7, end_date),
		    grade = COALESCE($8, grade),
		    description = COALESCE($9, description)
		WHERE education_id = $1 AND user_id = $2
	`

	tag, err := db.Exec(ctx, query,
		id,
		userID,
		institutionID,
		c.Degree,
		c.School,
		c.StartDate.TimePtr(),
		c.EndDate.TimePtr(),
		c.Grade,
		c.Description,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update education details: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *EducationRepository) Delete(ctx context.Context, db database.DBTX, id uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM education_details WHERE education_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete education details: %w", err)
	}
	return nil
}

func (r *EducationRepository) DeleteByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) error {
	if _, err := db.Exec(ctx, `DELETE FROM education_details WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete education details of user: %w", err)
	}
	return nil
}

func (r *EducationRepository) GetByID(ctx context.Context, db database.DBTX, id uuid.UUID) (*models.Education, error) {
	query := educationSelect + `
		WHERE ed.education_id = $1
		GROUP BY ed.education_id, ins.name, ins.branch
	`

	rows, err := db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	list, err := scanEducation(rows)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

// ListByUser returns the entries of userID, most recent first.
func (r *EducationRepository) ListByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) ([]models.Education, error) {
	query := educationSelect + `
		WHERE ed.user_id = $1
		GROUP BY ed.education_id, ins.name, ins.branch
		ORDER BY ed.start_date DESC NULLS LAST
	`

	rows, err := db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanEducation(rows)
}

func scanEducation(rows pgx.Rows) ([]models.Education, error) {
	defer rows.Close()

	list := []models.Education{}
	for rows.Next() {
		var e models.Education
		var start, end *time.Time
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.InstitutionID,
			&e.InstitutionName,
			&e.InstitutionBranch,
			&e.Degree,
			&e.School,
			&start,
			&end,
			&e.Grade,
			&e.Description,
			&e.Skills,
		)
		if err != nil {
			return nil, err
		}
		e.StartDate = models.DatePtr(start)
		e.EndDate = models.DatePtr(end)
		list = append(list, e)
	}
	return list, rows.Err()
}
