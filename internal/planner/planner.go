// Package planner proposes a resource allocation for an operational plan
// version: enough active vehicles to cover the requested seat capacity, each
// crewed by an available worker. The proposal is a starting point for TeamB,
// not a committed assignment.
package planner

import (
	"errors"
	"sort"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

var (
	ErrNoVehicles          = errors.New("no active vehicle can be assigned")
	ErrInsufficientSeats   = errors.New("active vehicles cannot cover the requested capacity")
	ErrInsufficientWorkers = errors.New("not enough active workers to crew the proposed vehicles")
)

type Planner struct {
	// WorkersPerVehicle is how many workers each proposed vehicle needs.
	WorkersPerVehicle int
}

func New() *Planner {
	return &Planner{WorkersPerVehicle: 1}
}

// seatCapacity reads the seat count from a vehicle's details. Details come
// back from JSON decoding, so numbers arrive as float64; freshly built
// resources may still hold an int.
func seatCapacity(resource *domain.Resource) int32 {
	raw, ok := resource.Details["capacity"]
	if !ok {
		return 0
	}

	switch v := raw.(type) {
	case float64:
		return int32(v)
	case int:
		return int32(v)
	case int32:
		return v
	case int64:
		return int32(v)
	default:
		return 0
	}
}

// Suggest picks vehicles largest-first until the requested capacity is
// covered, then crews each one with a worker. The pool should already be
// filtered to active resources.
func (p *Planner) Suggest(requiredCapacity int32, pool []*domain.Resource) ([]domain.PlanVersionResource, error) {
	var vehicles []*domain.Resource
	var workers []*domain.Resource

	for _, resource := range pool {
		if !resource.IsActive {
			continue
		}
		switch resource.Type {
		case domain.ResourceTypeVehicle:
			if seatCapacity(resource) > 0 {
				vehicles = append(vehicles, resource)
			}
		case domain.ResourceTypeWorker:
			workers = append(workers, resource)
		}
	}

	if len(vehicles) == 0 {
		return nil, ErrNoVehicles
	}

	// largest vehicles first keeps the proposal small; ties break on id so
	// the proposal is stable between calls
	sort.Slice(vehicles, func(i, j int) bool {
		ci, cj := seatCapacity(vehicles[i]), seatCapacity(vehicles[j])
		if ci != cj {
			return ci > cj
		}
		return vehicles[i].ID < vehicles[j].ID
	})

	var chosen []*domain.Resource
	var covered int32
	for _, vehicle := range vehicles {
		if covered >= requiredCapacity {
			break
		}
		chosen = append(chosen, vehicle)
		covered += seatCapacity(vehicle)
	}

	if covered < requiredCapacity {
		return nil, ErrInsufficientSeats
	}

	crewNeeded := len(chosen) * p.WorkersPerVehicle
	if len(workers) < crewNeeded {
		return nil, ErrInsufficientWorkers
	}

	sort.Slice(workers, func(i, j int) bool {
		return workers[i].ID < workers[j].ID
	})

	suggestions := make([]domain.PlanVersionResource, 0, len(chosen)+crewNeeded)
	for _, vehicle := range chosen {
		suggestions = append(suggestions, domain.PlanVersionResource{
			ResourceID:  vehicle.ID,
			Capacity:    seatCapacity(vehicle),
			IsPermanent: true,
		})
	}
	for i := 0; i < crewNeeded; i++ {
		suggestions = append(suggestions, domain.PlanVersionResource{
			ResourceID:  workers[i].ID,
			Capacity:    1,
			IsPermanent: false,
		})
	}

	return suggestions, nil
}
