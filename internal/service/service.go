// Package service is the workflow engine behind the HTTP layer. It owns the
// business rules of the planning workflow (the draft/submitted state machine,
// the single-active-version invariant, the append-only event log) and raises
// typed failures; persistence and transaction boundaries live in the store.
package service

import (
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/config"
	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
	"github.com/fleetops-dev/plan-manager/backend/internal/planner"
)

// Store is the persistence surface the engine needs. *repository.Repository
// implements it. Lookups signal a missing row with sql.ErrNoRows; mutating
// methods that touch several rows must apply them in one transaction.
type Store interface {
	CreateUser(user *domain.User) error
	GetUserByID(id int64) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)
	GetUsersByRole(role domain.Role) ([]*domain.User, error)

	CreateRoute(route *domain.Route) error
	GetAllRoutes() ([]*domain.Route, error)
	GetRouteByID(id int64) (*domain.Route, error)
	UpdateRoute(route *domain.Route) error
	DeleteRoute(id int64) error
	RouteIdentifierExists(identifier string, excludeID int64) (bool, error)
	CountPlanningRequestItemsByRoute(routeID int64) (int64, error)

	CreateResource(resource *domain.Resource) error
	GetAllResources(filter domain.ResourceFilter) ([]*domain.Resource, error)
	GetResourceByID(id int64) (*domain.Resource, error)
	UpdateResource(resource *domain.Resource) error
	DeleteResource(id int64) error
	CountPlanVersionResourcesByResource(resourceID int64) (int64, error)

	InsertPlanningRequest(request *domain.PlanningRequest) error
	GetAllPlanningRequests() ([]*domain.PlanningRequest, error)
	GetPlanningRequestsByStatus(status domain.RequestStatus) ([]*domain.PlanningRequest, error)
	GetPlanningRequestByID(id int64) (*domain.PlanningRequest, error)
	GetPlanningRequestItemByID(id int64) (*domain.PlanningRequestItem, error)
	ReplacePlanningRequestItems(requestID int64, items []domain.PlanningRequestItem) error
	DeletePlanningRequest(id int64) error
	SubmitPlanningRequest(id int64, submittedAt time.Time) error

	InsertOperationalPlan(plan *domain.OperationalPlan, version *domain.OperationalPlanVersion) error
	InsertPlanVersion(planID int64, version *domain.OperationalPlanVersion) error
	ActivatePlanVersion(version *domain.OperationalPlanVersion) error
	GetAllOperationalPlans() ([]*domain.OperationalPlan, error)
	GetActiveOperationalPlans() ([]*domain.OperationalPlan, error)
	GetOperationalPlanByID(id int64) (*domain.OperationalPlan, error)
	GetPlanVersionByID(id int64) (*domain.OperationalPlanVersion, error)

	InsertExecutionEvent(event *domain.ExecutionEvent) error
	GetExecutionEvents(filter domain.ExecutionEventFilter) ([]*domain.ExecutionEvent, error)
	GetExecutionEventByID(id int64) (*domain.ExecutionEvent, error)
}

type Service struct {
	cfg     *config.Config
	store   Store
	planner *planner.Planner

	// Now is swappable so tests can pin timestamps.
	Now func() time.Time
}

func NewService(cfg *config.Config, store Store) *Service {
	return &Service{
		cfg:     cfg,
		store:   store,
		planner: planner.New(),
		Now:     time.Now,
	}
}
