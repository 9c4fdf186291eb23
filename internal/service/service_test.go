package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/config"
	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/service"
)

type testEnv struct {
	Service *service.Service
	Store   *fakeStore
	Now     time.Time

	requester *domain.User
	planner   *domain.User
	route     *domain.Route
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newFakeStore()
	svc := service.NewService(&config.Config{}, store)

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	requester := &domain.User{Name: "Ana Martins", Email: "ana@fleetops.dev", Role: domain.RoleTeamA}
	if err := store.CreateUser(requester); err != nil {
		t.Fatalf("seed requester: %v", err)
	}
	planner := &domain.User{Name: "Bruno Costa", Email: "bruno@fleetops.dev", Role: domain.RoleTeamB}
	if err := store.CreateUser(planner); err != nil {
		t.Fatalf("seed planner: %v", err)
	}
	route := &domain.Route{Name: "Porto - Braga", Identifier: "RT-0101"}
	if err := store.CreateRoute(route); err != nil {
		t.Fatalf("seed route: %v", err)
	}

	return &testEnv{
		Service:   svc,
		Store:     store,
		Now:       now,
		requester: requester,
		planner:   planner,
		route:     route,
	}
}

func (env *testEnv) itemInput() service.PlanningRequestItemInput {
	return service.PlanningRequestItemInput{
		RouteID:   env.route.ID,
		Capacity:  40,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (env *testEnv) createRequest(t *testing.T) *domain.PlanningRequest {
	t.Helper()
	request, err := env.Service.CreatePlanningRequest([]service.PlanningRequestItemInput{env.itemInput()}, env.requester.ID)
	if err != nil {
		t.Fatalf("create planning request: %v", err)
	}
	return request
}

func (env *testEnv) submittedRequest(t *testing.T) *domain.PlanningRequest {
	t.Helper()
	request := env.createRequest(t)
	request, err := env.Service.SubmitPlanningRequest(request)
	if err != nil {
		t.Fatalf("submit planning request: %v", err)
	}
	return request
}

func (env *testEnv) seedResource(t *testing.T, resource domain.Resource) *domain.Resource {
	t.Helper()
	if err := env.Store.CreateResource(&resource); err != nil {
		t.Fatalf("seed resource: %v", err)
	}
	return &resource
}

func (env *testEnv) versionInput(isActive bool, resourceIDs ...int64) service.PlanVersionInput {
	input := service.PlanVersionInput{
		ValidFrom: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		IsActive:  isActive,
	}
	for _, id := range resourceIDs {
		input.Resources = append(input.Resources, service.VersionResourceInput{ResourceID: id, Capacity: 1})
	}
	return input
}

func (env *testEnv) createPlan(t *testing.T, isActive bool) *domain.OperationalPlan {
	t.Helper()
	request := env.submittedRequest(t)
	plan, err := env.Service.CreateOperationalPlan(request.Items[0].ID, env.versionInput(isActive), env.planner.ID)
	if err != nil {
		t.Fatalf("create operational plan: %v", err)
	}
	return plan
}

func assertValidationError(t *testing.T, err error, field string) {
	t.Helper()
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := vErr.Fields[field]; !ok {
		t.Fatalf("expected validation error on %q, got fields %v", field, vErr.Fields)
	}
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	var cErr *domain.ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	var nfErr *domain.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
