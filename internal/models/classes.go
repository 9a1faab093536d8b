package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

type ClassSession struct {
	ID        uuid.UUID
	CreatedAt time.Time
	CourseID  uuid.UUID
	Topic     string
	StartsAt  time.Time
}

// One record per (session, student); re-marking overwrites the status
type Attendance struct {
	SessionID uuid.UUID
	StudentID uuid.UUID
	Status    string
	MarkedAt  time.Time
}
