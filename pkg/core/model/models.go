package model

import "time"

type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleDeveloper Role = "Developer"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleDeveloper
}

// DeveloperConstraints holds one developer's entry in the constraints document
type DeveloperConstraints struct {
	Email        string   `json:"email,omitempty"`
	Restrictions []string `json:"restrictions"`
}

// Constraints is the document collected before each scheduling period
type Constraints struct {
	Month       int                              `json:"month"`
	Year        int                              `json:"year"`
	LastUpdated time.Time                        `json:"last_updated"`
	Developers  map[string]*DeveloperConstraints `json:"developers"`
}

// User is a login for the constraints API
type User struct {
	Email        string
	PasswordHash string
	Developer    string // Empty for admins without a roster entry
	Role         Role
}

// IsAdmin reports whether the user can see and edit every developer
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DeveloperSummary is the listing view of a developer
type DeveloperSummary struct {
	Name             string `json:"name"`
	Email            string `json:"email,omitempty"`
	RestrictionCount int    `json:"restrictionCount"`
}
