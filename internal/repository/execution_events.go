package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

func (r *Repository) InsertExecutionEvent(event *domain.ExecutionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var eventData any
	if len(event.EventData) > 0 {
		raw, err := json.Marshal(event.EventData)
		if err != nil {
			return err
		}
		eventData = raw
	}

	query := `
		INSERT INTO execution_events (operational_plan_version_id, event_type, event_data, recorded_by, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	args := []any{event.OperationalPlanVersionID, event.EventType, eventData, event.RecordedBy, event.RecordedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetExecutionEvents(filter domain.ExecutionEventFilter) ([]*domain.ExecutionEvent, error) {
	// filters are conjunctive and optional; zero values disable them
	query := `
		SELECT id, operational_plan_version_id, event_type, event_data, recorded_by, recorded_at, created_at, updated_at
		FROM execution_events
		WHERE ($1 = 0 OR operational_plan_version_id = $1)
		  AND ($2 = '' OR event_type = $2)
		ORDER BY recorded_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, filter.OperationalPlanVersionID, filter.EventType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.ExecutionEvent, 0)
	for rows.Next() {
		event := &domain.ExecutionEvent{}
		var eventData []byte
		dst := []any{&event.ID, &event.OperationalPlanVersionID, &event.EventType, &eventData, &event.RecordedBy, &event.RecordedAt, &event.CreatedAt, &event.UpdatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if len(eventData) > 0 {
			if err := json.Unmarshal(eventData, &event.EventData); err != nil {
				return nil, err
			}
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *Repository) GetExecutionEventByID(id int64) (*domain.ExecutionEvent, error) {
	query := `
		SELECT operational_plan_version_id, event_type, event_data, recorded_by, recorded_at, created_at, updated_at
		FROM execution_events WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	event := &domain.ExecutionEvent{
		ID: id,
	}

	var eventData []byte
	dst := []any{&event.OperationalPlanVersionID, &event.EventType, &eventData, &event.RecordedBy, &event.RecordedAt, &event.CreatedAt, &event.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	if len(eventData) > 0 {
		if err := json.Unmarshal(eventData, &event.EventData); err != nil {
			return nil, err
		}
	}

	return event, nil
}
