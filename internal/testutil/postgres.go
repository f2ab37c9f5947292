// Package testutil starts a disposable Postgres for integration tests.
package testutil

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"

	"connectly/internal/database"
)

const postgresImage = "postgres:16-alpine"

// Postgres is a migrated database running in a container.
type Postgres struct {
	Pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

func StartPostgres(ctx context.Context) (*Postgres, error) {
	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("connectly_test"),
		postgres.WithUsername("connectly"),
		postgres.WithPassword("connectly"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, err
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, err
	}
	pool, err := database.Open(ctx, poolCfg)
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, err
	}

	if err := database.RunMigrations(ctx, pool, zap.NewNop()); err != nil {
		pool.Close()
		_ = testcontainers.TerminateContainer(ctr)
		return nil, err
	}

	return &Postgres{Pool: pool, container: ctr}, nil
}

// Reset empties every table so tests do not see each other's rows.
func (p *Postgres) Reset(ctx context.Context) error {
	_, err := p.Pool.Exec(ctx, `
		TRUNCATE likes, comments, posts, education_skills, experience_skills,
		         education_details, experience_details, user_institutions,
		         users, contact_information, institutions, companies, skills, jobs
		CASCADE
	`)
	return err
}

func (p *Postgres) Close() {
	p.Pool.Close()
	_ = testcontainers.TerminateContainer(p.container)
}
