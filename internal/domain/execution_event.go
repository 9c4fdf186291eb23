package domain

import "time"

// ExecutionEvent is a strictly append-only audit record tied to one plan
// version. There is no update or delete path.
type ExecutionEvent struct {
	ID                       int64          `json:"id"`
	OperationalPlanVersionID int64          `json:"operationalPlanVersionID"`
	EventType                string         `json:"eventType"`
	EventData                map[string]any `json:"eventData"`
	RecordedBy               int64          `json:"recordedBy"`
	RecordedAt               time.Time      `json:"recordedAt"`
	CreatedAt                time.Time      `json:"createdAt"`
	UpdatedAt                time.Time      `json:"updatedAt"`
}

// ExecutionEventFilter conditions are conjunctive; zero values mean
// "no filter".
type ExecutionEventFilter struct {
	OperationalPlanVersionID int64
	EventType                string
}
