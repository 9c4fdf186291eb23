package domain

import "time"

type ResourceType string

const (
	ResourceTypeVehicle ResourceType = "vehicle"
	ResourceTypeWorker  ResourceType = "worker"
)

type Resource struct {
	ID        int64          `json:"id"`
	Type      ResourceType   `json:"type"`
	Name      string         `json:"name"`
	Details   map[string]any `json:"details"`
	IsActive  bool           `json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ResourceFilter conditions are conjunctive; zero values mean "no filter".
type ResourceFilter struct {
	Type       ResourceType
	ActiveOnly bool
}
