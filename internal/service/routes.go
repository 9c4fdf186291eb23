package service

import (
	"database/sql"
	"errors"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

type RouteInput struct {
	Name        string
	Identifier  string
	Description string
}

func (s *Service) CreateRoute(input RouteInput) (*domain.Route, error) {
	exists, err := s.store.RouteIdentifierExists(input.Identifier, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewValidationError("identifier", "identifier is already taken")
	}

	route := &domain.Route{
		Name:        input.Name,
		Identifier:  input.Identifier,
		Description: input.Description,
	}

	if err := s.store.CreateRoute(route); err != nil {
		return nil, err
	}

	return route, nil
}

func (s *Service) GetAllRoutes() ([]*domain.Route, error) {
	return s.store.GetAllRoutes()
}

func (s *Service) GetRoute(id int64) (*domain.Route, error) {
	route, err := s.store.GetRouteByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFoundError("route")
		default:
			return nil, err
		}
	}

	return route, nil
}

// UpdateRoute applies the input; the uniqueness check skips the route's own
// row.
func (s *Service) UpdateRoute(route *domain.Route, input RouteInput) (*domain.Route, error) {
	exists, err := s.store.RouteIdentifierExists(input.Identifier, route.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewValidationError("identifier", "identifier is already taken")
	}

	route.Name = input.Name
	route.Identifier = input.Identifier
	route.Description = input.Description

	if err := s.store.UpdateRoute(route); err != nil {
		return nil, err
	}

	return route, nil
}

// DeleteRoute refuses to remove a route still referenced by planning request
// items; silently cascading would rewrite submitted history.
func (s *Service) DeleteRoute(route *domain.Route) error {
	count, err := s.store.CountPlanningRequestItemsByRoute(route.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewConflictError("route is still referenced by planning request items")
	}

	return s.store.DeleteRoute(route.ID)
}
