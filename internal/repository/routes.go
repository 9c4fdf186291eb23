package repository

import (
	"context"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

func (r *Repository) CreateRoute(route *domain.Route) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO routes (name, identifier, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	args := []any{route.Name, route.Identifier, route.Description}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllRoutes() ([]*domain.Route, error) {
	query := `
		SELECT id, name, identifier, description, created_at, updated_at
		FROM routes
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]*domain.Route, 0)
	for rows.Next() {
		route := &domain.Route{}
		dst := []any{&route.ID, &route.Name, &route.Identifier, &route.Description, &route.CreatedAt, &route.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}

func (r *Repository) GetRouteByID(id int64) (*domain.Route, error) {
	query := `
		SELECT name, identifier, description, created_at, updated_at
		FROM routes WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	route := &domain.Route{
		ID: id,
	}

	dst := []any{&route.Name, &route.Identifier, &route.Description, &route.CreatedAt, &route.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return route, nil
}

func (r *Repository) UpdateRoute(route *domain.Route) error {
	query := `
		UPDATE routes
		SET
			name = $1,
			identifier = $2,
			description = $3,
			updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	params := []any{route.Name, route.Identifier, route.Description, route.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&route.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteRoute(id int64) error {
	query := `
		DELETE FROM routes WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// RouteIdentifierExists reports whether another route already uses the
// identifier. excludeID lets updates skip the route's own row.
func (r *Repository) RouteIdentifierExists(identifier string, excludeID int64) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM routes WHERE identifier = $1 AND id <> $2)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, identifier, excludeID).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}

func (r *Repository) CountPlanningRequestItemsByRoute(routeID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT COUNT(*) FROM planning_request_items WHERE route_id = $1
	`

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, routeID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
