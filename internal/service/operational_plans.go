package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

type VersionResourceInput struct {
	ResourceID  int64
	Capacity    int32
	IsPermanent bool
	Notes       string
}

type PlanVersionInput struct {
	ValidFrom time.Time
	ValidTo   time.Time
	Notes     string
	IsActive  bool
	Resources []VersionResourceInput
}

func (s *Service) validateVersionInput(input PlanVersionInput, fieldPrefix string) error {
	vErr := &domain.ValidationError{}

	if input.ValidTo.Before(input.ValidFrom) {
		vErr.Add(fieldPrefix+"validTo", "valid-to date must not be before valid-from date")
	}

	for i, resource := range input.Resources {
		if resource.Capacity < 1 {
			vErr.Add(fmt.Sprintf("%sresources.%d.capacity", fieldPrefix, i), "capacity must be a positive integer")
		}
		if _, err := s.store.GetResourceByID(resource.ResourceID); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				vErr.Add(fmt.Sprintf("%sresources.%d.resourceID", fieldPrefix, i), "resource does not exist")
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

func versionFromInput(input PlanVersionInput, creatorID int64) *domain.OperationalPlanVersion {
	version := &domain.OperationalPlanVersion{
		IsActive:  input.IsActive,
		ValidFrom: input.ValidFrom,
		ValidTo:   input.ValidTo,
		Notes:     input.Notes,
		CreatedBy: creatorID,
		Resources: make([]domain.PlanVersionResource, len(input.Resources)),
	}
	for i, resource := range input.Resources {
		version.Resources[i] = domain.PlanVersionResource{
			ResourceID:  resource.ResourceID,
			Capacity:    resource.Capacity,
			IsPermanent: resource.IsPermanent,
			Notes:       resource.Notes,
		}
	}
	return version
}

// CreateOperationalPlan creates a plan for a planning request item together
// with version #1 and its resource allocations. The item's parent request
// must already be submitted. The caller-provided is_active flag is applied
// literally; there is no sibling to conflict with yet.
func (s *Service) CreateOperationalPlan(itemID int64, versionInput PlanVersionInput, creatorID int64) (*domain.OperationalPlan, error) {
	item, err := s.store.GetPlanningRequestItemByID(itemID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewValidationError("planningRequestItemID", "planning request item does not exist")
		default:
			return nil, err
		}
	}

	request, err := s.store.GetPlanningRequestByID(item.PlanningRequestID)
	if err != nil {
		return nil, err
	}
	if !request.IsSubmitted() {
		return nil, domain.NewConflictError("cannot create an operational plan for an unsubmitted planning request")
	}

	if err := s.validateVersionInput(versionInput, "version."); err != nil {
		return nil, err
	}

	plan := &domain.OperationalPlan{
		PlanningRequestItemID: itemID,
		CreatedBy:             creatorID,
	}
	version := versionFromInput(versionInput, creatorID)

	if err := s.store.InsertOperationalPlan(plan, version); err != nil {
		return nil, err
	}

	return plan, nil
}

func (s *Service) GetAllOperationalPlans() ([]*domain.OperationalPlan, error) {
	return s.store.GetAllOperationalPlans()
}

func (s *Service) GetActiveOperationalPlans() ([]*domain.OperationalPlan, error) {
	return s.store.GetActiveOperationalPlans()
}

func (s *Service) GetOperationalPlan(id int64) (*domain.OperationalPlan, error) {
	plan, err := s.store.GetOperationalPlanByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFoundError("operational plan")
		default:
			return nil, err
		}
	}

	return plan, nil
}

func (s *Service) GetPlanVersion(id int64) (*domain.OperationalPlanVersion, error) {
	version, err := s.store.GetPlanVersionByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFoundError("operational plan version")
		default:
			return nil, err
		}
	}

	return version, nil
}

// CreatePlanVersion appends a version to the plan's history. The store
// assigns max(existing)+1 and, for an active version, deactivates every
// sibling in the same transaction, so two versions of one plan are never
// simultaneously active.
func (s *Service) CreatePlanVersion(plan *domain.OperationalPlan, input PlanVersionInput, creatorID int64) (*domain.OperationalPlanVersion, error) {
	if err := s.validateVersionInput(input, ""); err != nil {
		return nil, err
	}

	version := versionFromInput(input, creatorID)
	if err := s.store.InsertPlanVersion(plan.ID, version); err != nil {
		return nil, err
	}

	return version, nil
}

// ActivatePlanVersion is the sole path that flips an existing version's
// active flag. Activating an already-active version succeeds and changes
// nothing.
func (s *Service) ActivatePlanVersion(version *domain.OperationalPlanVersion) (*domain.OperationalPlanVersion, error) {
	if err := s.store.ActivatePlanVersion(version); err != nil {
		return nil, err
	}

	return version, nil
}
