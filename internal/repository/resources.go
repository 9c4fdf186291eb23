package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

func marshalDetails(details map[string]any) (any, error) {
	if len(details) == 0 {
		return nil, nil
	}
	return json.Marshal(details)
}

func unmarshalDetails(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	details := map[string]any{}
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (r *Repository) CreateResource(resource *domain.Resource) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	details, err := marshalDetails(resource.Details)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO resources (type, name, details, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	args := []any{resource.Type, resource.Name, details, resource.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllResources(filter domain.ResourceFilter) ([]*domain.Resource, error) {
	// both filter conditions are conjunctive; the zero value disables them
	query := `
		SELECT id, type, name, details, is_active, created_at, updated_at
		FROM resources
		WHERE ($1 = '' OR type::text = $1)
		  AND (NOT $2 OR is_active)
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, string(filter.Type), filter.ActiveOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		resource := &domain.Resource{}
		var details []byte
		dst := []any{&resource.ID, &resource.Type, &resource.Name, &details, &resource.IsActive, &resource.CreatedAt, &resource.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if resource.Details, err = unmarshalDetails(details); err != nil {
			return nil, err
		}
		resources = append(resources, resource)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return resources, nil
}

func (r *Repository) GetResourceByID(id int64) (*domain.Resource, error) {
	query := `
		SELECT type, name, details, is_active, created_at, updated_at
		FROM resources WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	resource := &domain.Resource{
		ID: id,
	}

	var details []byte
	dst := []any{&resource.Type, &resource.Name, &details, &resource.IsActive, &resource.CreatedAt, &resource.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	var err error
	if resource.Details, err = unmarshalDetails(details); err != nil {
		return nil, err
	}

	return resource, nil
}

func (r *Repository) UpdateResource(resource *domain.Resource) error {
	query := `
		UPDATE resources
		SET
			type = $1,
			name = $2,
			details = $3,
			is_active = $4,
			updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	details, err := marshalDetails(resource.Details)
	if err != nil {
		return err
	}

	params := []any{resource.Type, resource.Name, details, resource.IsActive, resource.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&resource.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteResource(id int64) error {
	query := `
		DELETE FROM resources WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CountPlanVersionResourcesByResource(resourceID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT COUNT(*) FROM plan_version_resources WHERE resource_id = $1
	`

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, resourceID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
