package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

type PlanningRequestItemInput struct {
	RouteID   int64
	Capacity  int32
	StartDate time.Time
	EndDate   time.Time
}

// validateRequestItems re-checks the safety-critical item constraints even
// though the HTTP layer already validated the payload shape.
func (s *Service) validateRequestItems(inputs []PlanningRequestItemInput) error {
	vErr := &domain.ValidationError{}

	if len(inputs) == 0 {
		vErr.Add("items", "at least one item is required")
		return vErr
	}

	for i, input := range inputs {
		if input.Capacity < 1 {
			vErr.Add(fmt.Sprintf("items.%d.capacity", i), "capacity must be a positive integer")
		}
		if input.EndDate.Before(input.StartDate) {
			vErr.Add(fmt.Sprintf("items.%d.endDate", i), "end date must not be before start date")
		}
		if _, err := s.store.GetRouteByID(input.RouteID); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				vErr.Add(fmt.Sprintf("items.%d.routeID", i), "route does not exist")
			default:
				return err
			}
		}
	}

	if vErr.Empty() {
		return nil
	}
	return vErr
}

func requestItemsFromInputs(inputs []PlanningRequestItemInput) []domain.PlanningRequestItem {
	items := make([]domain.PlanningRequestItem, len(inputs))
	for i, input := range inputs {
		items[i] = domain.PlanningRequestItem{
			RouteID:   input.RouteID,
			Capacity:  input.Capacity,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		}
	}
	return items
}

func (s *Service) CreatePlanningRequest(inputs []PlanningRequestItemInput, creatorID int64) (*domain.PlanningRequest, error) {
	if err := s.validateRequestItems(inputs); err != nil {
		return nil, err
	}

	request := &domain.PlanningRequest{
		CreatedBy: creatorID,
		Status:    domain.StatusDraft,
		Items:     requestItemsFromInputs(inputs),
	}

	if err := s.store.InsertPlanningRequest(request); err != nil {
		return nil, err
	}

	return request, nil
}

func (s *Service) GetAllPlanningRequests() ([]*domain.PlanningRequest, error) {
	return s.store.GetAllPlanningRequests()
}

func (s *Service) GetPlanningRequestsByStatus(status domain.RequestStatus) ([]*domain.PlanningRequest, error) {
	return s.store.GetPlanningRequestsByStatus(status)
}

func (s *Service) GetPlanningRequest(id int64) (*domain.PlanningRequest, error) {
	request, err := s.store.GetPlanningRequestByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFoundError("planning request")
		default:
			return nil, err
		}
	}

	return request, nil
}

// ReplacePlanningRequestItems swaps the whole item set of a draft request.
func (s *Service) ReplacePlanningRequestItems(request *domain.PlanningRequest, inputs []PlanningRequestItemInput) (*domain.PlanningRequest, error) {
	if request.IsSubmitted() {
		return nil, domain.NewConflictError("cannot update a submitted planning request")
	}

	if err := s.validateRequestItems(inputs); err != nil {
		return nil, err
	}

	items := requestItemsFromInputs(inputs)
	if err := s.store.ReplacePlanningRequestItems(request.ID, items); err != nil {
		return nil, err
	}
	request.Items = items
	request.UpdatedAt = s.Now()

	return request, nil
}

func (s *Service) DeletePlanningRequest(request *domain.PlanningRequest) error {
	if request.IsSubmitted() {
		return domain.NewConflictError("cannot delete a submitted planning request")
	}

	return s.store.DeletePlanningRequest(request.ID)
}

// SubmitPlanningRequest transitions draft -> submitted. The transition is
// one-way and requires at least one item.
func (s *Service) SubmitPlanningRequest(request *domain.PlanningRequest) (*domain.PlanningRequest, error) {
	if request.IsSubmitted() {
		return nil, domain.NewConflictError("planning request is already submitted")
	}

	if len(request.Items) == 0 {
		return nil, domain.NewValidationError("items", "cannot submit a planning request with no items")
	}

	submittedAt := s.Now()
	if err := s.store.SubmitPlanningRequest(request.ID, submittedAt); err != nil {
		return nil, err
	}

	request.Status = domain.StatusSubmitted
	request.SubmittedAt = &submittedAt
	request.UpdatedAt = submittedAt

	return request, nil
}
