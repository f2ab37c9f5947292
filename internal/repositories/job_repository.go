package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"connectly/internal/models"
)

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (title, company, location, description, link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING job_id, created_at
	`

	return r.pool.QueryRow(ctx, query,
		job.Title,
		job.Company,
		job.Location,
		job.Description,
		job.Link,
	).Scan(&job.ID, &job.CreatedAt)
}

func (r *JobRepository) FindAll(ctx context.Context) ([]models.Job, error) {
	query := `
		SELECT job_id, title, company, location, description, link, created_at
		FROM jobs
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		var j models.Job
		err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description, &j.Link, &j.CreatedAt)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
