package service_test

import (
	"testing"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

func countActive(t *testing.T, plan *domain.OperationalPlan) int {
	t.Helper()
	active := 0
	for _, version := range plan.Versions {
		if version.IsActive {
			active++
		}
	}
	return active
}

func TestCreateOperationalPlanRequiresSubmittedRequest(t *testing.T) {
	env := newTestEnv(t)

	draft := env.createRequest(t)
	_, err := env.Service.CreateOperationalPlan(draft.Items[0].ID, env.versionInput(true), env.planner.ID)
	assertConflictError(t, err)

	_, err = env.Service.CreateOperationalPlan(9999, env.versionInput(true), env.planner.ID)
	assertValidationError(t, err, "planningRequestItemID")
}

func TestCreateOperationalPlanStartsAtVersionOne(t *testing.T) {
	env := newTestEnv(t)

	plan := env.createPlan(t, true)
	if len(plan.Versions) != 1 {
		t.Fatalf("expected 1 version, got %d", len(plan.Versions))
	}
	if plan.Versions[0].Version != 1 {
		t.Fatalf("expected version number 1, got %d", plan.Versions[0].Version)
	}
	if !plan.Versions[0].IsActive {
		t.Fatalf("expected initial version to be active")
	}
}

func TestVersionNumbersAreMonotonic(t *testing.T) {
	env := newTestEnv(t)

	plan := env.createPlan(t, true)
	second, err := env.Service.CreatePlanVersion(plan, env.versionInput(false), env.planner.ID)
	if err != nil {
		t.Fatalf("create second version: %v", err)
	}
	if second.Version != 2 {
		t.Fatalf("expected version 2, got %d", second.Version)
	}

	third, err := env.Service.CreatePlanVersion(plan, env.versionInput(true), env.planner.ID)
	if err != nil {
		t.Fatalf("create third version: %v", err)
	}
	if third.Version != 3 {
		t.Fatalf("expected version 3, got %d", third.Version)
	}
}

func TestActiveVersionCreationDeactivatesSiblings(t *testing.T) {
	env := newTestEnv(t)

	plan := env.createPlan(t, true)
	if _, err := env.Service.CreatePlanVersion(plan, env.versionInput(true), env.planner.ID); err != nil {
		t.Fatalf("create version: %v", err)
	}

	reloaded, err := env.Service.GetOperationalPlan(plan.ID)
	if err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	if countActive(t, reloaded) != 1 {
		t.Fatalf("expected exactly one active version, got %d", countActive(t, reloaded))
	}
	if active := reloaded.ActiveVersion(); active == nil || active.Version != 2 {
		t.Fatalf("expected version 2 to be active, got %+v", active)
	}
}

func TestInactiveVersionCreationKeepsCurrentActive(t *testing.T) {
	env := newTestEnv(t)

	plan := env.createPlan(t, true)
	if _, err := env.Service.CreatePlanVersion(plan, env.versionInput(false), env.planner.ID); err != nil {
		t.Fatalf("create version: %v", err)
	}

	reloaded, err := env.Service.GetOperationalPlan(plan.ID)
	if err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	if active := reloaded.ActiveVersion(); active == nil || active.Version != 1 {
		t.Fatalf("expected version 1 to stay active, got %+v", active)
	}
}

func TestActivatePlanVersion(t *testing.T) {
	env := newTestEnv(t)

	plan := env.createPlan(t, true)
	second, err := env.Service.CreatePlanVersion(plan, env.versionInput(true), env.planner.ID)
	if err != nil {
		t.Fatalf("create version: %v", err)
	}

	// reactivate the original version
	first, err := env.Service.GetPlanVersion(plan.Versions[0].ID)
	if err != nil {
		t.Fatalf("load first version: %v", err)
	}
	if _, err := env.Service.ActivatePlanVersion(first); err != nil {
		t.Fatalf("activate: %v", err)
	}

	reloaded, err := env.Service.GetOperationalPlan(plan.ID)
	if err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	if countActive(t, reloaded) != 1 {
		t.Fatalf("expected exactly one active version, got %d", countActive(t, reloaded))
	}
	if active := reloaded.ActiveVersion(); active == nil || active.ID != first.ID {
		t.Fatalf("expected version %d to be active, got %+v", first.ID, active)
	}

	// activating the already-active version succeeds and changes nothing
	if _, err := env.Service.ActivatePlanVersion(first); err != nil {
		t.Fatalf("re-activate: %v", err)
	}
	reloaded, err = env.Service.GetOperationalPlan(plan.ID)
	if err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	if active := reloaded.ActiveVersion(); active == nil || active.ID != first.ID {
		t.Fatalf("idempotent activation changed state: %+v", active)
	}
	_ = second
}

func TestCreatePlanVersionValidation(t *testing.T) {
	env := newTestEnv(t)

	plan := env.createPlan(t, true)

	bad := env.versionInput(false)
	bad.ValidFrom, bad.ValidTo = bad.ValidTo, bad.ValidFrom
	_, err := env.Service.CreatePlanVersion(plan, bad, env.planner.ID)
	assertValidationError(t, err, "validTo")

	bad = env.versionInput(false, 9999)
	_, err = env.Service.CreatePlanVersion(plan, bad, env.planner.ID)
	assertValidationError(t, err, "resources.0.resourceID")
}

func TestGetActiveOperationalPlans(t *testing.T) {
	env := newTestEnv(t)

	withActive := env.createPlan(t, true)
	withoutActive := env.createPlan(t, false)

	// a superseded sibling must not appear in the active listing
	if _, err := env.Service.CreatePlanVersion(withActive, env.versionInput(false), env.planner.ID); err != nil {
		t.Fatalf("create inactive version: %v", err)
	}

	active, err := env.Service.GetActiveOperationalPlans()
	if err != nil {
		t.Fatalf("list active plans: %v", err)
	}
	if len(active) != 1 || active[0].ID != withActive.ID {
		t.Fatalf("unexpected active plan list: %+v", active)
	}
	if len(active[0].Versions) != 1 || !active[0].Versions[0].IsActive {
		t.Fatalf("active listing should carry only the active version, got %+v", active[0].Versions)
	}
	_ = withoutActive
}
