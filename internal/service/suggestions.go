package service

import (
	"database/sql"
	"errors"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/planner"
)

// SuggestVersionResources proposes a resource allocation covering the
// capacity a planning request item asks for. The proposal is advisory; the
// caller still decides what goes into the plan version.
func (s *Service) SuggestVersionResources(itemID int64) ([]domain.PlanVersionResource, error) {
	item, err := s.store.GetPlanningRequestItemByID(itemID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFoundError("planning request item")
		default:
			return nil, err
		}
	}

	pool, err := s.store.GetAllResources(domain.ResourceFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	suggestions, err := s.planner.Suggest(item.Capacity, pool)
	if err != nil {
		switch {
		case errors.Is(err, planner.ErrNoVehicles),
			errors.Is(err, planner.ErrInsufficientSeats),
			errors.Is(err, planner.ErrInsufficientWorkers):
			return nil, domain.NewConflictError(err.Error())
		default:
			return nil, err
		}
	}

	return suggestions, nil
}
