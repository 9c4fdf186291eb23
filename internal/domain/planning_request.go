package domain

import "time"

type RequestStatus string

const (
	StatusDraft     RequestStatus = "draft"
	StatusSubmitted RequestStatus = "submitted"
)

type PlanningRequestItem struct {
	ID                int64     `json:"id"`
	PlanningRequestID int64     `json:"planningRequestID"`
	RouteID           int64     `json:"routeID"`
	Capacity          int32     `json:"capacity"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// PlanningRequest is the aggregate root owned by Team A. Once submitted the
// request and its items never change again.
type PlanningRequest struct {
	ID          int64                 `json:"id"`
	CreatedBy   int64                 `json:"createdBy"`
	Status      RequestStatus         `json:"status"`
	SubmittedAt *time.Time            `json:"submittedAt"`
	Items       []PlanningRequestItem `json:"items"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

func (pr *PlanningRequest) IsSubmitted() bool {
	return pr.Status == StatusSubmitted
}
