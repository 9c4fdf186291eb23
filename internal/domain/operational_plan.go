package domain

import "time"

type PlanVersionResource struct {
	ID                       int64     `json:"id"`
	OperationalPlanVersionID int64     `json:"operationalPlanVersionID"`
	ResourceID               int64     `json:"resourceID"`
	Capacity                 int32     `json:"capacity"`
	IsPermanent              bool      `json:"isPermanent"`
	Notes                    string    `json:"notes"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

// OperationalPlanVersion is an append-only snapshot of resource allocation.
// After creation nothing changes except is_active, and that flag is flipped
// only through the activation operation.
type OperationalPlanVersion struct {
	ID                int64                 `json:"id"`
	OperationalPlanID int64                 `json:"operationalPlanID"`
	Version           int32                 `json:"version"`
	IsActive          bool                  `json:"isActive"`
	ValidFrom         time.Time             `json:"validFrom"`
	ValidTo           time.Time             `json:"validTo"`
	Notes             string                `json:"notes"`
	CreatedBy         int64                 `json:"createdBy"`
	Resources         []PlanVersionResource `json:"resources"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// OperationalPlan is the aggregate root owned by Team B. Versions are
// numbered 1..N per plan and at most one of them is active at a time.
type OperationalPlan struct {
	ID                    int64                    `json:"id"`
	PlanningRequestItemID int64                    `json:"planningRequestItemID"`
	CreatedBy             int64                    `json:"createdBy"`
	Versions              []OperationalPlanVersion `json:"versions"`
	CreatedAt             time.Time                `json:"createdAt"`
	UpdatedAt             time.Time                `json:"updatedAt"`
}

// ActiveVersion returns the active version of the plan, or nil.
func (op *OperationalPlan) ActiveVersion() *OperationalPlanVersion {
	for i := range op.Versions {
		if op.Versions[i].IsActive {
			return &op.Versions[i]
		}
	}
	return nil
}
