package domain

import "time"

// Role distinguishes administrators from regular employees.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Account is the identity record every other table hangs off.
// The Active flag gates authentication: an inactive account cannot
// log in even with correct credentials.
type Account struct {
	ID        string
	Role      Role
	Active    bool
	Name      string
	CreatedAt time.Time
}

// AdminGrant marks an account as carrying admin privileges.
// PermissionLevel ranges 1..3; GrantedBy references the admin who
// issued the grant, nil for bootstrap admins.
type AdminGrant struct {
	AccountID       string
	PermissionLevel int
	GrantedBy       *string
	CreatedAt       time.Time
}
