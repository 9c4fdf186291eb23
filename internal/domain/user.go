package domain

import (
	"time"
)

type Role string

const (
	RoleTeamA Role = "team_a"
	RoleTeamB Role = "team_b"
	RoleTeamC Role = "team_c"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
