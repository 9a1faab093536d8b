package models

import (
	"time"

	"github.com/google/uuid"
)

// Student profile, linked one to one with a user account
type Student struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
	FullName  string
	GroupName string
}

// Teacher profile, linked one to one with a user account
type Teacher struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CreatedAt  time.Time
	FullName   string
	Department string
}
