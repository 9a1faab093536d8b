package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Well known roles
// Roles live in the users table, not inside tokens: the auth middleware
// re-reads them on every request so a role change takes effect immediately
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	Username       string
	HashedPassword string
	Roles          []string
}

// HasRole reports whether the user carries the role
// Admin satisfies every role requirement
func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role) || slices.Contains(u.Roles, RoleAdmin)
}
