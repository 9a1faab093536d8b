package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Exam struct {
	ID        uuid.UUID
	CreatedAt time.Time
	CourseID  uuid.UUID
	Title     string
	HeldAt    time.Time
	MaxScore  decimal.Decimal
}

// One result per (exam, student); re-grading overwrites the score
type ExamResult struct {
	ExamID    uuid.UUID
	StudentID uuid.UUID
	Score     decimal.Decimal
	GradedAt  time.Time
}
