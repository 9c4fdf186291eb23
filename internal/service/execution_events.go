package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

type ExecutionEventInput struct {
	OperationalPlanVersionID int64
	EventType                string
	EventData                map[string]any
	RecordedAt               *time.Time
}

// RecordExecutionEvent appends one immutable event row. The referenced plan
// version must exist; recordedAt defaults to now when the caller omits it.
func (s *Service) RecordExecutionEvent(input ExecutionEventInput, recorderID int64) (*domain.ExecutionEvent, error) {
	if input.EventType == "" {
		return nil, domain.NewValidationError("eventType", "event type is required")
	}

	if _, err := s.store.GetPlanVersionByID(input.OperationalPlanVersionID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFoundError("operational plan version")
		default:
			return nil, err
		}
	}

	recordedAt := s.Now()
	if input.RecordedAt != nil {
		recordedAt = *input.RecordedAt
	}

	event := &domain.ExecutionEvent{
		OperationalPlanVersionID: input.OperationalPlanVersionID,
		EventType:                input.EventType,
		EventData:                input.EventData,
		RecordedBy:               recorderID,
		RecordedAt:               recordedAt,
	}

	if err := s.store.InsertExecutionEvent(event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *Service) ListExecutionEvents(filter domain.ExecutionEventFilter) ([]*domain.ExecutionEvent, error) {
	return s.store.GetExecutionEvents(filter)
}

func (s *Service) GetExecutionEvent(id int64) (*domain.ExecutionEvent, error) {
	event, err := s.store.GetExecutionEventByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFoundError("execution event")
		default:
			return nil, err
		}
	}

	return event, nil
}
