package service_test

import (
	"database/sql"
	"sort"
	"time"

	"github.com/fleetops-dev/plan-manager/backend/internal/domain"
)

// fakeStore is an in-memory stand-in for *repository.Repository. It keeps
// the same contract: lookups return sql.ErrNoRows for missing rows, version
// numbers are assigned max+1, and inserting or activating an active version
// deactivates its siblings atomically.
type fakeStore struct {
	nextID    int64
	users     map[int64]*domain.User
	routes    map[int64]*domain.Route
	resources map[int64]*domain.Resource
	requests  map[int64]*domain.PlanningRequest
	plans     map[int64]*domain.OperationalPlan
	versions  map[int64]*domain.OperationalPlanVersion
	events    map[int64]*domain.ExecutionEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[int64]*domain.User),
		routes:    make(map[int64]*domain.Route),
		resources: make(map[int64]*domain.Resource),
		requests:  make(map[int64]*domain.PlanningRequest),
		plans:     make(map[int64]*domain.OperationalPlan),
		versions:  make(map[int64]*domain.OperationalPlanVersion),
		events:    make(map[int64]*domain.ExecutionEvent),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateUser(user *domain.User) error {
	user.ID = f.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeStore) GetUserByID(id int64) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) GetUserByEmail(email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) GetUsersByRole(role domain.Role) ([]*domain.User, error) {
	var users []*domain.User
	for _, user := range f.users {
		if user.Role == role {
			copied := *user
			users = append(users, &copied)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (f *fakeStore) CreateRoute(route *domain.Route) error {
	route.ID = f.id()
	route.CreatedAt = time.Now()
	route.UpdatedAt = route.CreatedAt
	stored := *route
	f.routes[route.ID] = &stored
	return nil
}

func (f *fakeStore) GetAllRoutes() ([]*domain.Route, error) {
	var routes []*domain.Route
	for _, route := range f.routes {
		copied := *route
		routes = append(routes, &copied)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].Name < routes[j].Name })
	return routes, nil
}

func (f *fakeStore) GetRouteByID(id int64) (*domain.Route, error) {
	route, ok := f.routes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *route
	return &copied, nil
}

func (f *fakeStore) UpdateRoute(route *domain.Route) error {
	if _, ok := f.routes[route.ID]; !ok {
		return sql.ErrNoRows
	}
	route.UpdatedAt = time.Now()
	stored := *route
	f.routes[route.ID] = &stored
	return nil
}

func (f *fakeStore) DeleteRoute(id int64) error {
	if _, ok := f.routes[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.routes, id)
	return nil
}

func (f *fakeStore) RouteIdentifierExists(identifier string, excludeID int64) (bool, error) {
	for _, route := range f.routes {
		if route.Identifier == identifier && route.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CountPlanningRequestItemsByRoute(routeID int64) (int64, error) {
	var count int64
	for _, request := range f.requests {
		for _, item := range request.Items {
			if item.RouteID == routeID {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeStore) CreateResource(resource *domain.Resource) error {
	resource.ID = f.id()
	resource.CreatedAt = time.Now()
	resource.UpdatedAt = resource.CreatedAt
	stored := *resource
	f.resources[resource.ID] = &stored
	return nil
}

func (f *fakeStore) GetAllResources(filter domain.ResourceFilter) ([]*domain.Resource, error) {
	var resources []*domain.Resource
	for _, resource := range f.resources {
		if filter.Type != "" && resource.Type != filter.Type {
			continue
		}
		if filter.ActiveOnly && !resource.IsActive {
			continue
		}
		copied := *resource
		resources = append(resources, &copied)
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].Name < resources[j].Name })
	return resources, nil
}

func (f *fakeStore) GetResourceByID(id int64) (*domain.Resource, error) {
	resource, ok := f.resources[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *resource
	return &copied, nil
}

func (f *fakeStore) UpdateResource(resource *domain.Resource) error {
	if _, ok := f.resources[resource.ID]; !ok {
		return sql.ErrNoRows
	}
	resource.UpdatedAt = time.Now()
	stored := *resource
	f.resources[resource.ID] = &stored
	return nil
}

func (f *fakeStore) DeleteResource(id int64) error {
	if _, ok := f.resources[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.resources, id)
	return nil
}

func (f *fakeStore) CountPlanVersionResourcesByResource(resourceID int64) (int64, error) {
	var count int64
	for _, version := range f.versions {
		for _, resource := range version.Resources {
			if resource.ResourceID == resourceID {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeStore) InsertPlanningRequest(request *domain.PlanningRequest) error {
	request.ID = f.id()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	for i := range request.Items {
		request.Items[i].ID = f.id()
		request.Items[i].PlanningRequestID = request.ID
		request.Items[i].CreatedAt = request.CreatedAt
		request.Items[i].UpdatedAt = request.CreatedAt
	}
	stored := *request
	stored.Items = append([]domain.PlanningRequestItem(nil), request.Items...)
	f.requests[request.ID] = &stored
	return nil
}

func (f *fakeStore) GetAllPlanningRequests() ([]*domain.PlanningRequest, error) {
	var requests []*domain.PlanningRequest
	for _, request := range f.requests {
		requests = append(requests, f.copyRequest(request))
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID < requests[j].ID })
	return requests, nil
}

func (f *fakeStore) GetPlanningRequestsByStatus(status domain.RequestStatus) ([]*domain.PlanningRequest, error) {
	var requests []*domain.PlanningRequest
	for _, request := range f.requests {
		if request.Status == status {
			requests = append(requests, f.copyRequest(request))
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID < requests[j].ID })
	return requests, nil
}

func (f *fakeStore) GetPlanningRequestByID(id int64) (*domain.PlanningRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return f.copyRequest(request), nil
}

func (f *fakeStore) GetPlanningRequestItemByID(id int64) (*domain.PlanningRequestItem, error) {
	for _, request := range f.requests {
		for _, item := range request.Items {
			if item.ID == id {
				copied := item
				return &copied, nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) ReplacePlanningRequestItems(requestID int64, items []domain.PlanningRequestItem) error {
	request, ok := f.requests[requestID]
	if !ok {
		return sql.ErrNoRows
	}
	request.Items = make([]domain.PlanningRequestItem, len(items))
	for i, item := range items {
		item.ID = f.id()
		item.PlanningRequestID = requestID
		item.CreatedAt = time.Now()
		item.UpdatedAt = item.CreatedAt
		request.Items[i] = item
		items[i] = item
	}
	request.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) DeletePlanningRequest(id int64) error {
	if _, ok := f.requests[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeStore) SubmitPlanningRequest(id int64, submittedAt time.Time) error {
	request, ok := f.requests[id]
	if !ok {
		return sql.ErrNoRows
	}
	request.Status = domain.StatusSubmitted
	request.SubmittedAt = &submittedAt
	request.UpdatedAt = submittedAt
	return nil
}

func (f *fakeStore) copyRequest(request *domain.PlanningRequest) *domain.PlanningRequest {
	copied := *request
	copied.Items = append([]domain.PlanningRequestItem(nil), request.Items...)
	if request.SubmittedAt != nil {
		submittedAt := *request.SubmittedAt
		copied.SubmittedAt = &submittedAt
	}
	return &copied
}

func (f *fakeStore) InsertOperationalPlan(plan *domain.OperationalPlan, version *domain.OperationalPlanVersion) error {
	plan.ID = f.id()
	plan.CreatedAt = time.Now()
	plan.UpdatedAt = plan.CreatedAt
	stored := *plan
	f.plans[plan.ID] = &stored

	version.Version = 1
	if err := f.insertVersion(plan.ID, version); err != nil {
		return err
	}
	plan.Versions = []domain.OperationalPlanVersion{*version}
	return nil
}

func (f *fakeStore) InsertPlanVersion(planID int64, version *domain.OperationalPlanVersion) error {
	if _, ok := f.plans[planID]; !ok {
		return sql.ErrNoRows
	}
	var maxVersion int32
	for _, existing := range f.versions {
		if existing.OperationalPlanID == planID && existing.Version > maxVersion {
			maxVersion = existing.Version
		}
	}
	version.Version = maxVersion + 1
	return f.insertVersion(planID, version)
}

func (f *fakeStore) insertVersion(planID int64, version *domain.OperationalPlanVersion) error {
	if version.IsActive {
		for _, existing := range f.versions {
			if existing.OperationalPlanID == planID && existing.IsActive {
				existing.IsActive = false
				existing.UpdatedAt = time.Now()
			}
		}
	}
	version.ID = f.id()
	version.OperationalPlanID = planID
	version.CreatedAt = time.Now()
	version.UpdatedAt = version.CreatedAt
	for i := range version.Resources {
		version.Resources[i].ID = f.id()
		version.Resources[i].OperationalPlanVersionID = version.ID
		version.Resources[i].CreatedAt = version.CreatedAt
		version.Resources[i].UpdatedAt = version.CreatedAt
	}
	stored := *version
	stored.Resources = append([]domain.PlanVersionResource(nil), version.Resources...)
	f.versions[version.ID] = &stored
	return nil
}

func (f *fakeStore) ActivatePlanVersion(version *domain.OperationalPlanVersion) error {
	stored, ok := f.versions[version.ID]
	if !ok {
		return sql.ErrNoRows
	}
	for _, existing := range f.versions {
		if existing.OperationalPlanID == stored.OperationalPlanID && existing.ID != stored.ID && existing.IsActive {
			existing.IsActive = false
			existing.UpdatedAt = time.Now()
		}
	}
	stored.IsActive = true
	stored.UpdatedAt = time.Now()
	version.IsActive = true
	version.UpdatedAt = stored.UpdatedAt
	return nil
}

func (f *fakeStore) GetAllOperationalPlans() ([]*domain.OperationalPlan, error) {
	var plans []*domain.OperationalPlan
	for _, plan := range f.plans {
		plans = append(plans, f.copyPlan(plan))
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].ID < plans[j].ID })
	return plans, nil
}

// GetActiveOperationalPlans mirrors the SQL query, which joins on the active
// version only: each returned plan carries just that version.
func (f *fakeStore) GetActiveOperationalPlans() ([]*domain.OperationalPlan, error) {
	all, err := f.GetAllOperationalPlans()
	if err != nil {
		return nil, err
	}
	var plans []*domain.OperationalPlan
	for _, plan := range all {
		active := plan.ActiveVersion()
		if active == nil {
			continue
		}
		plan.Versions = []domain.OperationalPlanVersion{*active}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (f *fakeStore) GetOperationalPlanByID(id int64) (*domain.OperationalPlan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return f.copyPlan(plan), nil
}

func (f *fakeStore) copyPlan(plan *domain.OperationalPlan) *domain.OperationalPlan {
	copied := *plan
	copied.Versions = nil
	for _, version := range f.versions {
		if version.OperationalPlanID == plan.ID {
			versionCopy := *version
			versionCopy.Resources = append([]domain.PlanVersionResource(nil), version.Resources...)
			copied.Versions = append(copied.Versions, versionCopy)
		}
	}
	sort.Slice(copied.Versions, func(i, j int) bool { return copied.Versions[i].Version < copied.Versions[j].Version })
	return &copied
}

func (f *fakeStore) GetPlanVersionByID(id int64) (*domain.OperationalPlanVersion, error) {
	version, ok := f.versions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *version
	copied.Resources = append([]domain.PlanVersionResource(nil), version.Resources...)
	return &copied, nil
}

func (f *fakeStore) InsertExecutionEvent(event *domain.ExecutionEvent) error {
	event.ID = f.id()
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeStore) GetExecutionEvents(filter domain.ExecutionEventFilter) ([]*domain.ExecutionEvent, error) {
	var events []*domain.ExecutionEvent
	for _, event := range f.events {
		if filter.OperationalPlanVersionID != 0 && event.OperationalPlanVersionID != filter.OperationalPlanVersionID {
			continue
		}
		if filter.EventType != "" && event.EventType != filter.EventType {
			continue
		}
		copied := *event
		events = append(events, &copied)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].RecordedAt.After(events[j].RecordedAt) })
	return events, nil
}

func (f *fakeStore) GetExecutionEventByID(id int64) (*domain.ExecutionEvent, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *event
	return &copied, nil
}
