package handler

type ContextKey string

var (
	RoleCtxKey         ContextKey = "role"
	SubCtxKey          ContextKey = "sub"
	ClaimsCtxKey       ContextKey = "claims"
	PlanningRequestCtx ContextKey = "planningRequest"
	OperationalPlanCtx ContextKey = "operationalPlan"
	PlanVersionCtx     ContextKey = "planVersion"
	RouteCtx           ContextKey = "route"
	ResourceCtx        ContextKey = "resource"
	ExecutionEventCtx  ContextKey = "executionEvent"
)
