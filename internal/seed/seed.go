// Package seed loads a small demonstration dataset: one user per team, a
// handful of routes and resources, and a planning request that has already
// travelled the whole workflow down to execution events.
package seed

import (
	"log/slog"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type demoUser struct {
	name  string
	email string
	role  domain.Role
}

var demoUsers = []demoUser{
	{name: "Ana Martins", email: "ana.martins", role: domain.RoleTeamA},
	{name: "Bruno Costa", email: "bruno.costa", role: domain.RoleTeamB},
	{name: "Carla Santos", email: "carla.santos", role: domain.RoleTeamC},
}

var demoRoutes = []domain.Route{
	{Name: "Porto - Braga", Identifier: "RT-0101", Description: "Hourly intercity service"},
	{Name: "Porto - Aveiro", Identifier: "RT-0102", Description: "Coastal commuter line"},
	{Name: "Coimbra - Leiria", Identifier: "RT-0201", Description: "Regional service, weekdays only"},
}

var demoResources = []domain.Resource{
	{
		Type: domain.ResourceTypeVehicle, Name: "Bus 114", IsActive: true,
		Details: map[string]any{"plate": "AB-12-34", "capacity": 52},
	},
	{
		Type: domain.ResourceTypeVehicle, Name: "Bus 207", IsActive: true,
		Details: map[string]any{"plate": "CD-56-78", "capacity": 40},
	},
	{
		Type: domain.ResourceTypeWorker, Name: "Diego Ferreira", IsActive: true,
		Details: map[string]any{"licensedSince": "2014-03-01"},
	},
	{
		Type: domain.ResourceTypeWorker, Name: "Elena Gomes", IsActive: false,
		Details: map[string]any{"licensedSince": "2019-09-15"},
	},
}

func date(value string) time.Time {
	d, _ := time.Parse(time.DateOnly, value)
	return d
}

// SeedDemoData inserts the demonstration dataset. Every user gets the same
// password so the dataset stays usable for manual testing.
func SeedDemoData(r *repository.Repository, password string, emailDomain string) {
	if err := r.TruncateAll(); err != nil {
		slog.Error("failed to truncate tables before seeding", "error", err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash seed password", "error", err)
		return
	}

	users := make([]*domain.User, 0, len(demoUsers))
	for _, du := range demoUsers {
		user := &domain.User{
			Name:         du.name,
			Email:        du.email + "@" + emailDomain,
			PasswordHash: string(passwordHash),
			Role:         du.role,
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("failed to insert seed user", "email", user.Email, "error", err)
			return
		}
		users = append(users, user)
	}
	slog.Info("inserted seed users", "count", len(users))

	routes := make([]*domain.Route, 0, len(demoRoutes))
	for i := range demoRoutes {
		route := demoRoutes[i]
		if err := r.CreateRoute(&route); err != nil {
			slog.Error("failed to insert seed route", "identifier", route.Identifier, "error", err)
			return
		}
		routes = append(routes, &route)
	}
	slog.Info("inserted seed routes", "count", len(routes))

	resources := make([]*domain.Resource, 0, len(demoResources))
	for i := range demoResources {
		resource := demoResources[i]
		if err := r.CreateResource(&resource); err != nil {
			slog.Error("failed to insert seed resource", "name", resource.Name, "error", err)
			return
		}
		resources = append(resources, &resource)
	}
	slog.Info("inserted seed resources", "count", len(resources))

	requester := users[0]
	planner := users[1]
	dispatcher := users[2]

	// a draft request for team A to keep editing
	draft := &domain.PlanningRequest{
		CreatedBy: requester.ID,
		Status:    domain.StatusDraft,
		Items: []domain.PlanningRequestItem{
			{RouteID: routes[2].ID, Capacity: 30, StartDate: date("2026-10-01"), EndDate: date("2026-12-31")},
		},
	}
	if err := r.InsertPlanningRequest(draft); err != nil {
		slog.Error("failed to insert draft planning request", "error", err)
		return
	}

	// a submitted request that already produced an operational plan
	submitted := &domain.PlanningRequest{
		CreatedBy: requester.ID,
		Status:    domain.StatusDraft,
		Items: []domain.PlanningRequestItem{
			{RouteID: routes[0].ID, Capacity: 50, StartDate: date("2026-09-01"), EndDate: date("2026-12-31")},
			{RouteID: routes[1].ID, Capacity: 40, StartDate: date("2026-09-01"), EndDate: date("2026-11-30")},
		},
	}
	if err := r.InsertPlanningRequest(submitted); err != nil {
		slog.Error("failed to insert planning request", "error", err)
		return
	}
	if err := r.SubmitPlanningRequest(submitted.ID, time.Now()); err != nil {
		slog.Error("failed to submit planning request", "error", err)
		return
	}

	plan := &domain.OperationalPlan{
		PlanningRequestItemID: submitted.Items[0].ID,
		CreatedBy:             planner.ID,
	}
	first := &domain.OperationalPlanVersion{
		IsActive:  true,
		ValidFrom: date("2026-09-01"),
		ValidTo:   date("2026-12-31"),
		Notes:     "Initial assignment",
		CreatedBy: planner.ID,
		Resources: []domain.PlanVersionResource{
			{ResourceID: resources[0].ID, Capacity: 52, IsPermanent: true},
			{ResourceID: resources[2].ID, Capacity: 1, IsPermanent: true},
		},
	}
	if err := r.InsertOperationalPlan(plan, first); err != nil {
		slog.Error("failed to insert operational plan", "error", err)
		return
	}

	// a revision that supersedes the initial assignment
	second := &domain.OperationalPlanVersion{
		IsActive:  true,
		ValidFrom: date("2026-09-15"),
		ValidTo:   date("2026-12-31"),
		Notes:     "Swapped vehicle after maintenance check",
		CreatedBy: planner.ID,
		Resources: []domain.PlanVersionResource{
			{ResourceID: resources[1].ID, Capacity: 40, IsPermanent: true},
			{ResourceID: resources[2].ID, Capacity: 1, IsPermanent: false},
		},
	}
	if err := r.InsertPlanVersion(plan.ID, second); err != nil {
		slog.Error("failed to insert plan version", "error", err)
		return
	}
	slog.Info("inserted operational plan", "planID", plan.ID, "versions", 2)

	events := []*domain.ExecutionEvent{
		{
			OperationalPlanVersionID: second.ID,
			EventType:                "departure",
			EventData:                map[string]any{"stop": "Porto Campanha", "delayMinutes": 0},
			RecordedBy:               dispatcher.ID,
			RecordedAt:               time.Now().Add(-2 * time.Hour),
		},
		{
			OperationalPlanVersionID: second.ID,
			EventType:                "delay",
			EventData:                map[string]any{"stop": "Vila Nova de Famalicao", "delayMinutes": 12, "reason": "roadworks"},
			RecordedBy:               dispatcher.ID,
			RecordedAt:               time.Now().Add(-1 * time.Hour),
		},
		{
			OperationalPlanVersionID: second.ID,
			EventType:                "arrival",
			EventData:                map[string]any{"stop": "Braga", "delayMinutes": 8},
			RecordedBy:               dispatcher.ID,
			RecordedAt:               time.Now(),
		},
	}
	for _, event := range events {
		if err := r.InsertExecutionEvent(event); err != nil {
			slog.Error("failed to insert execution event", "error", err)
			return
		}
	}
	slog.Info("inserted execution events", "count", len(events))
}
