package service_test

import (
	"testing"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/service"
)

func TestCreatePlanningRequestStartsAsDraft(t *testing.T) {
	env := newTestEnv(t)

	request := env.createRequest(t)
	if request.Status != domain.StatusDraft {
		t.Fatalf("expected draft status, got %q", request.Status)
	}
	if request.SubmittedAt != nil {
		t.Fatalf("expected no submission timestamp, got %v", request.SubmittedAt)
	}
	if len(request.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(request.Items))
	}
	if request.Items[0].PlanningRequestID != request.ID {
		t.Fatalf("item not linked to request")
	}
}

func TestCreatePlanningRequestValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Service.CreatePlanningRequest(nil, env.requester.ID)
	assertValidationError(t, err, "items")

	bad := env.itemInput()
	bad.Capacity = 0
	_, err = env.Service.CreatePlanningRequest([]service.PlanningRequestItemInput{bad}, env.requester.ID)
	assertValidationError(t, err, "items.0.capacity")

	bad = env.itemInput()
	bad.StartDate, bad.EndDate = bad.EndDate, bad.StartDate
	_, err = env.Service.CreatePlanningRequest([]service.PlanningRequestItemInput{bad}, env.requester.ID)
	assertValidationError(t, err, "items.0.endDate")

	bad = env.itemInput()
	bad.RouteID = 9999
	_, err = env.Service.CreatePlanningRequest([]service.PlanningRequestItemInput{bad}, env.requester.ID)
	assertValidationError(t, err, "items.0.routeID")
}

func TestSubmitPlanningRequest(t *testing.T) {
	env := newTestEnv(t)

	request := env.createRequest(t)
	request, err := env.Service.SubmitPlanningRequest(request)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if request.Status != domain.StatusSubmitted {
		t.Fatalf("expected submitted status, got %q", request.Status)
	}
	if request.SubmittedAt == nil || !request.SubmittedAt.Equal(env.Now) {
		t.Fatalf("expected submission timestamp %v, got %v", env.Now, request.SubmittedAt)
	}

	// the transition is one-way
	_, err = env.Service.SubmitPlanningRequest(request)
	assertConflictError(t, err)
}

func TestSubmitRequiresItems(t *testing.T) {
	env := newTestEnv(t)

	request := &domain.PlanningRequest{ID: 42, Status: domain.StatusDraft}
	_, err := env.Service.SubmitPlanningRequest(request)
	assertValidationError(t, err, "items")
}

func TestSubmittedRequestIsImmutable(t *testing.T) {
	env := newTestEnv(t)

	request := env.submittedRequest(t)

	_, err := env.Service.ReplacePlanningRequestItems(request, []service.PlanningRequestItemInput{env.itemInput()})
	assertConflictError(t, err)

	err = env.Service.DeletePlanningRequest(request)
	assertConflictError(t, err)

	// nothing changed in the store
	stored, err := env.Service.GetPlanningRequest(request.ID)
	if err != nil {
		t.Fatalf("reload request: %v", err)
	}
	if stored.Status != domain.StatusSubmitted || len(stored.Items) != 1 {
		t.Fatalf("submitted request was modified: %+v", stored)
	}
}

func TestReplaceItemsOnDraft(t *testing.T) {
	env := newTestEnv(t)

	request := env.createRequest(t)

	replacement := env.itemInput()
	replacement.Capacity = 25
	replacement.EndDate = time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)

	request, err := env.Service.ReplacePlanningRequestItems(request, []service.PlanningRequestItemInput{replacement, env.itemInput()})
	if err != nil {
		t.Fatalf("replace items: %v", err)
	}
	if len(request.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(request.Items))
	}
	if request.Items[0].Capacity != 25 {
		t.Fatalf("expected replaced capacity 25, got %d", request.Items[0].Capacity)
	}

	stored, err := env.Service.GetPlanningRequest(request.ID)
	if err != nil {
		t.Fatalf("reload request: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 stored items, got %d", len(stored.Items))
	}
}

func TestDeleteDraftRequest(t *testing.T) {
	env := newTestEnv(t)

	request := env.createRequest(t)
	if err := env.Service.DeletePlanningRequest(request); err != nil {
		t.Fatalf("delete draft: %v", err)
	}

	_, err := env.Service.GetPlanningRequest(request.ID)
	assertNotFoundError(t, err)
}

func TestGetPlanningRequestsByStatus(t *testing.T) {
	env := newTestEnv(t)

	draft := env.createRequest(t)
	submitted := env.submittedRequest(t)

	drafts, err := env.Service.GetPlanningRequestsByStatus(domain.StatusDraft)
	if err != nil {
		t.Fatalf("list drafts: %v", err)
	}
	if len(drafts) != 1 || drafts[0].ID != draft.ID {
		t.Fatalf("unexpected draft list: %+v", drafts)
	}

	submittedList, err := env.Service.GetPlanningRequestsByStatus(domain.StatusSubmitted)
	if err != nil {
		t.Fatalf("list submitted: %v", err)
	}
	if len(submittedList) != 1 || submittedList[0].ID != submitted.ID {
		t.Fatalf("unexpected submitted list: %+v", submittedList)
	}
}
