package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

func insertPlanVersionTx(ctx context.Context, tx *sql.Tx, planID int64, version *domain.OperationalPlanVersion) error {
	version.OperationalPlanID = planID

	query := `
		INSERT INTO operational_plan_versions (operational_plan_id, version, is_active, valid_from, valid_to, notes, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	args := []any{planID, version.Version, version.IsActive, version.ValidFrom, version.ValidTo, version.Notes, version.CreatedBy}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&version.ID, &version.CreatedAt, &version.UpdatedAt); err != nil {
		return err
	}

	query = `
		INSERT INTO plan_version_resources (operational_plan_version_id, resource_id, capacity, is_permanent, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	for i := range version.Resources {
		resource := &version.Resources[i]
		resource.OperationalPlanVersionID = version.ID
		args := []any{version.ID, resource.ResourceID, resource.Capacity, resource.IsPermanent, resource.Notes}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&resource.ID, &resource.CreatedAt, &resource.UpdatedAt); err != nil {
			return err
		}
	}

	return nil
}

// InsertOperationalPlan persists the plan header together with its first
// version and that version's resource rows in one transaction. A failure on
// any row rolls back the whole aggregate.
func (r *Repository) InsertOperationalPlan(plan *domain.OperationalPlan, version *domain.OperationalPlanVersion) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO operational_plans (planning_request_item_id, created_by)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRowContext(ctx, query, plan.PlanningRequestItemID, plan.CreatedBy).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
		return err
	}

	version.Version = 1
	if err := insertPlanVersionTx(ctx, tx, plan.ID, version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	plan.Versions = []domain.OperationalPlanVersion{*version}

	return nil
}

// InsertPlanVersion appends a new version to the plan. The version number is
// assigned as max(existing)+1 and, when the new version is active, every
// sibling is deactivated first. Number assignment, deactivation, the version
// row and its resource rows all commit as one unit so readers never observe
// two active versions or a version missing its declared resources.
func (r *Repository) InsertPlanVersion(planID int64, version *domain.OperationalPlanVersion) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		SELECT COALESCE(MAX(version), 0) FROM operational_plan_versions WHERE operational_plan_id = $1
	`
	var maxVersion int32
	if err := tx.QueryRowContext(ctx, query, planID).Scan(&maxVersion); err != nil {
		return err
	}
	version.Version = maxVersion + 1

	if version.IsActive {
		query = `
			UPDATE operational_plan_versions SET is_active = FALSE, updated_at = now()
			WHERE operational_plan_id = $1 AND is_active
		`
		if _, err := tx.ExecContext(ctx, query, planID); err != nil {
			return err
		}
	}

	if err := insertPlanVersionTx(ctx, tx, planID, version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// ActivatePlanVersion deactivates every sibling of the version and activates
// it, as one transaction. Activating an already-active version is a no-op
// that still succeeds.
func (r *Repository) ActivatePlanVersion(version *domain.OperationalPlanVersion) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE operational_plan_versions SET is_active = FALSE, updated_at = now()
		WHERE operational_plan_id = $1 AND id <> $2 AND is_active
	`
	if _, err := tx.ExecContext(ctx, query, version.OperationalPlanID, version.ID); err != nil {
		return err
	}

	query = `
		UPDATE operational_plan_versions SET is_active = TRUE, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	if err := tx.QueryRowContext(ctx, query, version.ID).Scan(&version.UpdatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	version.IsActive = true

	return nil
}

// queryOperationalPlans loads plan headers with their versions and each
// version's resource rows through one triple join, then reassembles the
// aggregates.
func (r *Repository) queryOperationalPlans(query string, args ...any) ([]*domain.OperationalPlan, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plansMap := make(map[int64]*domain.OperationalPlan)
	versionsMap := make(map[int64]map[int64]*domain.OperationalPlanVersion) // planID -> versionID -> version
	order := make([]int64, 0)
	versionOrder := make(map[int64][]int64)

	for rows.Next() {
		var row struct {
			planID         int64
			itemID         int64
			planCreatedBy  int64
			planCreatedAt  time.Time
			planUpdatedAt  time.Time
			versionID      sql.NullInt64
			versionNumber  sql.NullInt32
			isActive       sql.NullBool
			validFrom      sql.NullTime
			validTo        sql.NullTime
			notes          sql.NullString
			verCreatedBy   sql.NullInt64
			verCreatedAt   sql.NullTime
			verUpdatedAt   sql.NullTime
			resourceRowID  sql.NullInt64
			resourceID     sql.NullInt64
			capacity       sql.NullInt32
			isPermanent    sql.NullBool
			resourceNotes  sql.NullString
			resourceCreate sql.NullTime
			resourceUpdate sql.NullTime
		}

		dst := []any{
			&row.planID,
			&row.itemID,
			&row.planCreatedBy,
			&row.planCreatedAt,
			&row.planUpdatedAt,
			&row.versionID,
			&row.versionNumber,
			&row.isActive,
			&row.validFrom,
			&row.validTo,
			&row.notes,
			&row.verCreatedBy,
			&row.verCreatedAt,
			&row.verUpdatedAt,
			&row.resourceRowID,
			&row.resourceID,
			&row.capacity,
			&row.isPermanent,
			&row.resourceNotes,
			&row.resourceCreate,
			&row.resourceUpdate,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := plansMap[row.planID]; !exists {
			plansMap[row.planID] = &domain.OperationalPlan{
				ID:                    row.planID,
				PlanningRequestItemID: row.itemID,
				CreatedBy:             row.planCreatedBy,
				CreatedAt:             row.planCreatedAt,
				UpdatedAt:             row.planUpdatedAt,
			}
			versionsMap[row.planID] = make(map[int64]*domain.OperationalPlanVersion)
			order = append(order, row.planID)
		}

		if !row.versionID.Valid {
			// plans are created with a first version, but guard anyway
			continue
		}

		if _, exists := versionsMap[row.planID][row.versionID.Int64]; !exists {
			versionsMap[row.planID][row.versionID.Int64] = &domain.OperationalPlanVersion{
				ID:                row.versionID.Int64,
				OperationalPlanID: row.planID,
				Version:           row.versionNumber.Int32,
				IsActive:          row.isActive.Bool,
				ValidFrom:         row.validFrom.Time,
				ValidTo:           row.validTo.Time,
				Notes:             row.notes.String,
				CreatedBy:         row.verCreatedBy.Int64,
				Resources:         make([]domain.PlanVersionResource, 0),
				CreatedAt:         row.verCreatedAt.Time,
				UpdatedAt:         row.verUpdatedAt.Time,
			}
			versionOrder[row.planID] = append(versionOrder[row.planID], row.versionID.Int64)
		}

		if !row.resourceRowID.Valid {
			// versions may carry zero resource rows
			continue
		}

		version := versionsMap[row.planID][row.versionID.Int64]
		version.Resources = append(version.Resources, domain.PlanVersionResource{
			ID:                       row.resourceRowID.Int64,
			OperationalPlanVersionID: row.versionID.Int64,
			ResourceID:               row.resourceID.Int64,
			Capacity:                 row.capacity.Int32,
			IsPermanent:              row.isPermanent.Bool,
			Notes:                    row.resourceNotes.String,
			CreatedAt:                row.resourceCreate.Time,
			UpdatedAt:                row.resourceUpdate.Time,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	plans := make([]*domain.OperationalPlan, 0, len(order))
	for _, planID := range order {
		plan := plansMap[planID]
		plan.Versions = make([]domain.OperationalPlanVersion, 0, len(versionOrder[planID]))
		for _, versionID := range versionOrder[planID] {
			plan.Versions = append(plan.Versions, *versionsMap[planID][versionID])
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

const operationalPlanSelect = `
	SELECT
		op.id,
		op.planning_request_item_id,
		op.created_by,
		op.created_at,
		op.updated_at,
		opv.id,
		opv.version,
		opv.is_active,
		opv.valid_from,
		opv.valid_to,
		opv.notes,
		opv.created_by,
		opv.created_at,
		opv.updated_at,
		pvr.id,
		pvr.resource_id,
		pvr.capacity,
		pvr.is_permanent,
		pvr.notes,
		pvr.created_at,
		pvr.updated_at
	FROM operational_plans op
	LEFT JOIN operational_plan_versions opv ON op.id = opv.operational_plan_id
	LEFT JOIN plan_version_resources pvr ON opv.id = pvr.operational_plan_version_id
`

func (r *Repository) GetAllOperationalPlans() ([]*domain.OperationalPlan, error) {
	return r.queryOperationalPlans(operationalPlanSelect + ` ORDER BY op.created_at DESC, opv.version, pvr.id`)
}

// GetActiveOperationalPlans returns plans that currently have an active
// version, loaded with just that version.
func (r *Repository) GetActiveOperationalPlans() ([]*domain.OperationalPlan, error) {
	return r.queryOperationalPlans(operationalPlanSelect + ` WHERE opv.is_active ORDER BY op.created_at DESC, pvr.id`)
}

func (r *Repository) GetOperationalPlanByID(id int64) (*domain.OperationalPlan, error) {
	plans, err := r.queryOperationalPlans(operationalPlanSelect+` WHERE op.id = $1 ORDER BY opv.version, pvr.id`, id)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, sql.ErrNoRows
	}

	return plans[0], nil
}

func (r *Repository) GetPlanVersionByID(id int64) (*domain.OperationalPlanVersion, error) {
	query := `
		SELECT
			opv.operational_plan_id,
			opv.version,
			opv.is_active,
			opv.valid_from,
			opv.valid_to,
			opv.notes,
			opv.created_by,
			opv.created_at,
			opv.updated_at,
			pvr.id,
			pvr.resource_id,
			pvr.capacity,
			pvr.is_permanent,
			pvr.notes,
			pvr.created_at,
			pvr.updated_at
		FROM operational_plan_versions opv
		LEFT JOIN plan_version_resources pvr ON opv.id = pvr.operational_plan_version_id
		WHERE opv.id = $1
		ORDER BY pvr.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var version *domain.OperationalPlanVersion

	for rows.Next() {
		var row struct {
			planID        int64
			versionNumber int32
			isActive      bool
			validFrom     time.Time
			validTo       time.Time
			notes         sql.NullString
			createdBy     int64
			createdAt     time.Time
			updatedAt     time.Time
			resourceRowID sql.NullInt64
			resourceID    sql.NullInt64
			capacity      sql.NullInt32
			isPermanent   sql.NullBool
			resourceNotes sql.NullString
			resourceAt    sql.NullTime
			resourceUpd   sql.NullTime
		}

		dst := []any{
			&row.planID,
			&row.versionNumber,
			&row.isActive,
			&row.validFrom,
			&row.validTo,
			&row.notes,
			&row.createdBy,
			&row.createdAt,
			&row.updatedAt,
			&row.resourceRowID,
			&row.resourceID,
			&row.capacity,
			&row.isPermanent,
			&row.resourceNotes,
			&row.resourceAt,
			&row.resourceUpd,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if version == nil {
			version = &domain.OperationalPlanVersion{
				ID:                id,
				OperationalPlanID: row.planID,
				Version:           row.versionNumber,
				IsActive:          row.isActive,
				ValidFrom:         row.validFrom,
				ValidTo:           row.validTo,
				Notes:             row.notes.String,
				CreatedBy:         row.createdBy,
				Resources:         make([]domain.PlanVersionResource, 0),
				CreatedAt:         row.createdAt,
				UpdatedAt:         row.updatedAt,
			}
		}

		if !row.resourceRowID.Valid {
			continue
		}

		version.Resources = append(version.Resources, domain.PlanVersionResource{
			ID:                       row.resourceRowID.Int64,
			OperationalPlanVersionID: id,
			ResourceID:               row.resourceID.Int64,
			Capacity:                 row.capacity.Int32,
			IsPermanent:              row.isPermanent.Bool,
			Notes:                    row.resourceNotes.String,
			CreatedAt:                row.resourceAt.Time,
			UpdatedAt:                row.resourceUpd.Time,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if version == nil {
		return nil, sql.ErrNoRows
	}

	return version, nil
}
