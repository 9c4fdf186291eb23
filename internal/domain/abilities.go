package domain

import "slices"

const (
	AbilityPlanningRequestsCreate = "planning-requests:create"
	AbilityPlanningRequestsRead   = "planning-requests:read"
	AbilityPlanningRequestsUpdate = "planning-requests:update"
	AbilityPlanningRequestsDelete = "planning-requests:delete"
	AbilityPlanningRequestsSubmit = "planning-requests:submit"

	AbilityOperationalPlansCreate   = "operational-plans:create"
	AbilityOperationalPlansRead     = "operational-plans:read"
	AbilityOperationalPlansUpdate   = "operational-plans:update"
	AbilityOperationalPlansActivate = "operational-plans:activate"

	AbilityExecutionEventsCreate = "execution-events:create"
	AbilityExecutionEventsRead   = "execution-events:read"
)

// roleAbilities is the fixed capability set per role. The workflow engine
// itself never consults it; the HTTP layer gates mutating routes with it.
var roleAbilities = map[Role][]string{
	RoleTeamA: {
		AbilityPlanningRequestsCreate,
		AbilityPlanningRequestsRead,
		AbilityPlanningRequestsUpdate,
		AbilityPlanningRequestsDelete,
		AbilityPlanningRequestsSubmit,
	},
	RoleTeamB: {
		AbilityOperationalPlansCreate,
		AbilityOperationalPlansRead,
		AbilityOperationalPlansUpdate,
		AbilityOperationalPlansActivate,
	},
	RoleTeamC: {
		AbilityExecutionEventsCreate,
		AbilityExecutionEventsRead,
	},
}

func AbilitiesForRole(role Role) []string {
	return roleAbilities[role]
}

func RoleCan(role Role, ability string) bool {
	return slices.Contains(roleAbilities[role], ability)
}
