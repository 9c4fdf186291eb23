package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// TruncateAll empties every table and resets the identity sequences. The
// seeder calls it before repopulating so reseeding is repeatable.
func (r *Repository) TruncateAll() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		TRUNCATE execution_events, plan_version_resources, operational_plan_versions,
			operational_plans, planning_request_items, planning_requests,
			resources, routes, users
		RESTART IDENTITY CASCADE
	`
	_, err := r.dbpool.ExecContext(ctx, query)
	return err
}
