package service

import (
	"database/sql"
	"errors"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

type ResourceInput struct {
	Type     domain.ResourceType
	Name     string
	Details  map[string]any
	IsActive bool
}

func validResourceType(t domain.ResourceType) bool {
	return t == domain.ResourceTypeVehicle || t == domain.ResourceTypeWorker
}

func (s *Service) CreateResource(input ResourceInput) (*domain.Resource, error) {
	if !validResourceType(input.Type) {
		return nil, domain.NewValidationError("type", "type must be vehicle or worker")
	}

	resource := &domain.Resource{
		Type:     input.Type,
		Name:     input.Name,
		Details:  input.Details,
		IsActive: input.IsActive,
	}

	if err := s.store.CreateResource(resource); err != nil {
		return nil, err
	}

	return resource, nil
}

func (s *Service) GetAllResources(filter domain.ResourceFilter) ([]*domain.Resource, error) {
	return s.store.GetAllResources(filter)
}

func (s *Service) GetResource(id int64) (*domain.Resource, error) {
	resource, err := s.store.GetResourceByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFoundError("resource")
		default:
			return nil, err
		}
	}

	return resource, nil
}

func (s *Service) UpdateResource(resource *domain.Resource, input ResourceInput) (*domain.Resource, error) {
	if !validResourceType(input.Type) {
		return nil, domain.NewValidationError("type", "type must be vehicle or worker")
	}

	resource.Type = input.Type
	resource.Name = input.Name
	resource.Details = input.Details
	resource.IsActive = input.IsActive

	if err := s.store.UpdateResource(resource); err != nil {
		return nil, err
	}

	return resource, nil
}

// DeleteResource refuses to remove a resource still referenced by plan
// version allocations; the version history is append-only and must keep its
// references resolvable.
func (s *Service) DeleteResource(resource *domain.Resource) error {
	count, err := s.store.CountPlanVersionResourcesByResource(resource.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewConflictError("resource is still referenced by plan versions")
	}

	return s.store.DeleteResource(resource.ID)
}
