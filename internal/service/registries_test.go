package service_test

import (
	"testing"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/service"
)

func TestRouteIdentifierMustBeUnique(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Service.CreateRoute(service.RouteInput{Name: "Duplicate", Identifier: env.route.Identifier})
	assertValidationError(t, err, "identifier")

	other, err := env.Service.CreateRoute(service.RouteInput{Name: "Coimbra - Leiria", Identifier: "RT-0201"})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}

	// updating to a taken identifier fails, keeping your own is fine
	_, err = env.Service.UpdateRoute(other, service.RouteInput{Name: other.Name, Identifier: env.route.Identifier})
	assertValidationError(t, err, "identifier")

	if _, err := env.Service.UpdateRoute(other, service.RouteInput{Name: "Renamed", Identifier: other.Identifier}); err != nil {
		t.Fatalf("update route keeping identifier: %v", err)
	}
}

func TestUpdateTouchesTimestamps(t *testing.T) {
	env := newTestEnv(t)

	route, err := env.Service.CreateRoute(service.RouteInput{Name: "Porto - Braga", Identifier: "RT-0300"})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}
	if route.UpdatedAt.IsZero() {
		t.Fatalf("expected updatedAt to be set on creation")
	}

	updated, err := env.Service.UpdateRoute(route, service.RouteInput{Name: "Renamed", Identifier: route.Identifier})
	if err != nil {
		t.Fatalf("update route: %v", err)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("updatedAt %v precedes createdAt %v", updated.UpdatedAt, updated.CreatedAt)
	}

	reloaded, err := env.Service.GetRoute(route.ID)
	if err != nil {
		t.Fatalf("reload route: %v", err)
	}
	if reloaded.UpdatedAt.IsZero() || reloaded.UpdatedAt.Before(reloaded.CreatedAt) {
		t.Fatalf("persisted updatedAt not maintained: %+v", reloaded)
	}
}

func TestDeleteRouteBlockedWhileReferenced(t *testing.T) {
	env := newTestEnv(t)

	env.createRequest(t)
	err := env.Service.DeleteRoute(env.route)
	assertConflictError(t, err)

	unused, err := env.Service.CreateRoute(service.RouteInput{Name: "Unused", Identifier: "RT-0900"})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}
	if err := env.Service.DeleteRoute(unused); err != nil {
		t.Fatalf("delete unused route: %v", err)
	}
}

func TestResourceTypeIsChecked(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Service.CreateResource(service.ResourceInput{Type: "drone", Name: "X"})
	assertValidationError(t, err, "type")

	resource, err := env.Service.CreateResource(service.ResourceInput{
		Type:     domain.ResourceTypeVehicle,
		Name:     "Bus 114",
		Details:  map[string]any{"capacity": 52},
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("create resource: %v", err)
	}
	if resource.ID == 0 {
		t.Fatalf("expected resource id to be assigned")
	}
}

func TestDeleteResourceBlockedWhileReferenced(t *testing.T) {
	env := newTestEnv(t)

	vehicle := env.seedResource(t, domain.Resource{Type: domain.ResourceTypeVehicle, Name: "Bus 114", IsActive: true})

	request := env.submittedRequest(t)
	input := env.versionInput(true, vehicle.ID)
	if _, err := env.Service.CreateOperationalPlan(request.Items[0].ID, input, env.planner.ID); err != nil {
		t.Fatalf("create plan: %v", err)
	}

	err := env.Service.DeleteResource(vehicle)
	assertConflictError(t, err)

	unused := env.seedResource(t, domain.Resource{Type: domain.ResourceTypeWorker, Name: "Spare", IsActive: true})
	if err := env.Service.DeleteResource(unused); err != nil {
		t.Fatalf("delete unused resource: %v", err)
	}
}

func TestResourceListFiltering(t *testing.T) {
	env := newTestEnv(t)

	env.seedResource(t, domain.Resource{Type: domain.ResourceTypeVehicle, Name: "Bus 114", IsActive: true})
	env.seedResource(t, domain.Resource{Type: domain.ResourceTypeVehicle, Name: "Bus 207", IsActive: false})
	env.seedResource(t, domain.Resource{Type: domain.ResourceTypeWorker, Name: "Diego Ferreira", IsActive: true})

	all, err := env.Service.GetAllResources(domain.ResourceFilter{})
	if err != nil {
		t.Fatalf("list resources: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 resources, got %d", len(all))
	}

	vehicles, err := env.Service.GetAllResources(domain.ResourceFilter{Type: domain.ResourceTypeVehicle})
	if err != nil {
		t.Fatalf("list vehicles: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(vehicles))
	}

	activeVehicles, err := env.Service.GetAllResources(domain.ResourceFilter{Type: domain.ResourceTypeVehicle, ActiveOnly: true})
	if err != nil {
		t.Fatalf("list active vehicles: %v", err)
	}
	if len(activeVehicles) != 1 || activeVehicles[0].Name != "Bus 114" {
		t.Fatalf("unexpected active vehicle list: %+v", activeVehicles)
	}
}
