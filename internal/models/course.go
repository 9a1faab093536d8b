package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	TeacherID   uuid.UUID
	Title       string
	Description string
}

type Enrollment struct {
	CourseID  uuid.UUID
	StudentID uuid.UUID
	CreatedAt time.Time
}
