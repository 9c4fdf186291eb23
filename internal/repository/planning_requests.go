package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

func (r *Repository) InsertPlanningRequest(request *domain.PlanningRequest) error {
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
		INSERT INTO planning_requests (created_by, status)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRowContext(ctx, query, request.CreatedBy, request.Status).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt); err != nil {
		return err
	}

	query = `
		INSERT INTO planning_request_items (planning_request_id, route_id, capacity, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	for i := range request.Items {
		item := &request.Items[i]
		item.PlanningRequestID = request.ID
		args := []any{request.ID, item.RouteID, item.Capacity, item.StartDate, item.EndDate}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// queryPlanningRequests loads request headers together with their items in
// one joined query and reassembles the aggregates.
func (r *Repository) queryPlanningRequests(query string, args ...any) ([]*domain.PlanningRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requestsMap := make(map[int64]*domain.PlanningRequest)
	order := make([]int64, 0)

	for rows.Next() {
		var row struct {
			requestID   int64
			createdBy   int64
			status      string
			submittedAt sql.NullTime
			createdAt   time.Time
			updatedAt   time.Time
			itemID      sql.NullInt64
			routeID     sql.NullInt64
			capacity    sql.NullInt32
			startDate   sql.NullTime
			endDate     sql.NullTime
			itemCreated sql.NullTime
			itemUpdated sql.NullTime
		}

		dst := []any{
			&row.requestID,
			&row.createdBy,
			&row.status,
			&row.submittedAt,
			&row.createdAt,
			&row.updatedAt,
			&row.itemID,
			&row.routeID,
			&row.capacity,
			&row.startDate,
			&row.endDate,
			&row.itemCreated,
			&row.itemUpdated,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if _, exists := requestsMap[row.requestID]; !exists {
			request := &domain.PlanningRequest{
				ID:        row.requestID,
				CreatedBy: row.createdBy,
				Status:    domain.RequestStatus(row.status),
				CreatedAt: row.createdAt,
				UpdatedAt: row.updatedAt,
				Items:     make([]domain.PlanningRequestItem, 0),
			}
			if row.submittedAt.Valid {
				submittedAt := row.submittedAt.Time
				request.SubmittedAt = &submittedAt
			}
			requestsMap[row.requestID] = request
			order = append(order, row.requestID)
		}

		if !row.itemID.Valid {
			// a draft may exist without items after a wholesale replacement
			continue
		}

		requestsMap[row.requestID].Items = append(requestsMap[row.requestID].Items, domain.PlanningRequestItem{
			ID:                row.itemID.Int64,
			PlanningRequestID: row.requestID,
			RouteID:           row.routeID.Int64,
			Capacity:          row.capacity.Int32,
			StartDate:         row.startDate.Time,
			EndDate:           row.endDate.Time,
			CreatedAt:         row.itemCreated.Time,
			UpdatedAt:         row.itemUpdated.Time,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	requests := make([]*domain.PlanningRequest, 0, len(order))
	for _, id := range order {
		requests = append(requests, requestsMap[id])
	}

	return requests, nil
}

const planningRequestSelect = `
	SELECT
		pr.id,
		pr.created_by,
		pr.status,
		pr.submitted_at,
		pr.created_at,
		pr.updated_at,
		pri.id,
		pri.route_id,
		pri.capacity,
		pri.start_date,
		pri.end_date,
		pri.created_at,
		pri.updated_at
	FROM planning_requests pr
	LEFT JOIN planning_request_items pri ON pr.id = pri.planning_request_id
`

func (r *Repository) GetAllPlanningRequests() ([]*domain.PlanningRequest, error) {
	return r.queryPlanningRequests(planningRequestSelect + ` ORDER BY pr.created_at DESC, pri.id`)
}

func (r *Repository) GetPlanningRequestsByStatus(status domain.RequestStatus) ([]*domain.PlanningRequest, error) {
	return r.queryPlanningRequests(planningRequestSelect+` WHERE pr.status = $1 ORDER BY pr.created_at DESC, pri.id`, status)
}

func (r *Repository) GetPlanningRequestByID(id int64) (*domain.PlanningRequest, error) {
	requests, err := r.queryPlanningRequests(planningRequestSelect+` WHERE pr.id = $1 ORDER BY pri.id`, id)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, sql.ErrNoRows
	}

	return requests[0], nil
}

// ReplacePlanningRequestItems swaps the full item set of a draft request.
// This is a wholesale delete + insert, not a diff.
func (r *Repository) ReplacePlanningRequestItems(requestID int64, items []domain.PlanningRequestItem) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM planning_request_items WHERE planning_request_id = $1`
	if _, err := tx.ExecContext(ctx, query, requestID); err != nil {
		return err
	}

	query = `UPDATE planning_requests SET updated_at = now() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, requestID); err != nil {
		return err
	}

	query = `
		INSERT INTO planning_request_items (planning_request_id, route_id, capacity, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	for i := range items {
		item := &items[i]
		item.PlanningRequestID = requestID
		args := []any{requestID, item.RouteID, item.Capacity, item.StartDate, item.EndDate}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeletePlanningRequest(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// cascade the owned items explicitly before the header
	query := `DELETE FROM planning_request_items WHERE planning_request_id = $1`
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return err
	}

	query = `DELETE FROM planning_requests WHERE id = $1`
	if _, err := tx.ExecContext(ctx, query, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) SubmitPlanningRequest(id int64, submittedAt time.Time) error {
	query := `
		UPDATE planning_requests
		SET
			status = $1,
			submitted_at = $2,
			updated_at = $2
		WHERE id = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, domain.StatusSubmitted, submittedAt, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPlanningRequestItemByID(id int64) (*domain.PlanningRequestItem, error) {
	query := `
		SELECT planning_request_id, route_id, capacity, start_date, end_date, created_at, updated_at
		FROM planning_request_items WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	item := &domain.PlanningRequestItem{
		ID: id,
	}

	dst := []any{&item.PlanningRequestID, &item.RouteID, &item.Capacity, &item.StartDate, &item.EndDate, &item.CreatedAt, &item.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return item, nil
}
