package planner_test

import (
	"errors"
	"testing"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/planner"
)

func vehicle(id int64, capacity int, active bool) *domain.Resource {
	return &domain.Resource{
		ID:       id,
		Type:     domain.ResourceTypeVehicle,
		IsActive: active,
		Details:  map[string]any{"capacity": float64(capacity)},
	}
}

func worker(id int64, active bool) *domain.Resource {
	return &domain.Resource{ID: id, Type: domain.ResourceTypeWorker, IsActive: active}
}

func TestSuggestPicksLargestVehiclesFirst(t *testing.T) {
	p := planner.New()
	pool := []*domain.Resource{
		vehicle(1, 20, true),
		vehicle(2, 52, true),
		vehicle(3, 30, true),
		worker(4, true),
		worker(5, true),
	}

	suggestions, err := p.Suggest(60, pool)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}

	// 52 + 30 covers 60; each vehicle gets one worker
	if len(suggestions) != 4 {
		t.Fatalf("expected 4 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].ResourceID != 2 || suggestions[1].ResourceID != 3 {
		t.Fatalf("unexpected vehicle order: %+v", suggestions[:2])
	}
	if suggestions[0].Capacity != 52 || suggestions[1].Capacity != 30 {
		t.Fatalf("unexpected capacities: %+v", suggestions[:2])
	}
}

func TestSuggestIgnoresInactiveResources(t *testing.T) {
	p := planner.New()
	pool := []*domain.Resource{
		vehicle(1, 52, false),
		worker(2, true),
	}

	_, err := p.Suggest(10, pool)
	if !errors.Is(err, planner.ErrNoVehicles) {
		t.Fatalf("expected ErrNoVehicles, got %v", err)
	}
}

func TestSuggestInsufficientSeats(t *testing.T) {
	p := planner.New()
	pool := []*domain.Resource{
		vehicle(1, 20, true),
		worker(2, true),
	}

	_, err := p.Suggest(50, pool)
	if !errors.Is(err, planner.ErrInsufficientSeats) {
		t.Fatalf("expected ErrInsufficientSeats, got %v", err)
	}
}

func TestSuggestInsufficientWorkers(t *testing.T) {
	p := planner.New()
	pool := []*domain.Resource{
		vehicle(1, 20, true),
		vehicle(2, 20, true),
		worker(3, true),
	}

	_, err := p.Suggest(40, pool)
	if !errors.Is(err, planner.ErrInsufficientWorkers) {
		t.Fatalf("expected ErrInsufficientWorkers, got %v", err)
	}
}

func TestSuggestIsStable(t *testing.T) {
	p := planner.New()
	pool := []*domain.Resource{
		vehicle(1, 30, true),
		vehicle(2, 30, true),
		worker(3, true),
	}

	first, err := p.Suggest(25, pool)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	second, err := p.Suggest(25, pool)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if first[0].ResourceID != second[0].ResourceID {
		t.Fatalf("proposal changed between identical calls")
	}
	// equal capacity breaks ties on the lower id
	if first[0].ResourceID != 1 {
		t.Fatalf("expected vehicle 1, got %d", first[0].ResourceID)
	}
}
