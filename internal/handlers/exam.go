package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/handlers/render"
	"github.com/edukit/campus/internal/handlers/userctx"
	"github.com/edukit/campus/internal/logger"
	"github.com/edukit/campus/internal/models"
)

// Scores are rendered as strings to keep exact decimal precision
type examResponse struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	Title     string    `json:"title"`
	HeldAt    time.Time `json:"heldAt"`
	MaxScore  string    `json:"maxScore"`
	CreatedAt time.Time `json:"createdAt"`
}

func newExamResponse(e models.Exam) examResponse {
	return examResponse{
		ID:        e.ID.String(),
		CourseID:  e.CourseID.String(),
		Title:     e.Title,
		HeldAt:    e.HeldAt,
		MaxScore:  e.MaxScore.String(),
		CreatedAt: e.CreatedAt,
	}
}

type examResultResponse struct {
	ExamID    string    `json:"examId"`
	StudentID string    `json:"studentId"`
	Score     string    `json:"score"`
	GradedAt  time.Time `json:"gradedAt"`
}

func newExamResultResponse(r models.ExamResult) examResultResponse {
	return examResultResponse{
		ExamID:    r.ExamID.String(),
		StudentID: r.StudentID.String(),
		Score:     r.Score.String(),
		GradedAt:  r.GradedAt,
	}
}

func handleCreateExam(exams examService, l logger.Logger) http.Handler {
	type request struct {
		CourseID string    `json:"courseId" validate:"required,uuid"`
		Title    string    `json:"title" validate:"required,min=1,max=200"`
		HeldAt   time.Time `json:"heldAt" validate:"required"`
		MaxScore string    `json:"maxScore" validate:"required,decimal"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		// Both validated by tags already
		courseID := uuid.MustParse(data.CourseID)
		maxScore := decimal.RequireFromString(data.MaxScore)

		exam, err := exams.Create(r.Context(), courseID, data.Title, data.HeldAt, maxScore)

		switch {
		case err == nil:
			render.JSONWithStatus(w, newExamResponse(exam), http.StatusCreated)
		case errors.Is(err, apperrors.ErrCourseNotFound):
			render.ServiceError(w, "Course not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrScoreOutOfRange):
			render.ServiceError(w, "Max score must be positive", http.StatusUnprocessableEntity)
		default:
			l.Error("Failed to create exam", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleListExams(exams examService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		courseID, err := uuid.Parse(r.URL.Query().Get("course_id"))
		if err != nil {
			render.ServiceError(w, "Invalid or missing course_id", http.StatusBadRequest)
			return
		}

		list, err := exams.ListByCourse(r.Context(), courseID)

		switch {
		case err == nil:
			response := make([]examResponse, 0, len(list))
			for _, e := range list {
				response = append(response, newExamResponse(e))
			}
			render.JSON(w, response)
		case errors.Is(err, apperrors.ErrCourseNotFound):
			render.ServiceError(w, "Course not found", http.StatusNotFound)
		default:
			l.Error("Failed to list exams", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleSaveExamResult(exams examService, l logger.Logger) http.Handler {
	type request struct {
		StudentID string `json:"studentId" validate:"required,uuid"`
		Score     string `json:"score" validate:"required,decimal"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		examID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid exam id", http.StatusBadRequest)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		result, err := exams.SaveResult(r.Context(), examID, uuid.MustParse(data.StudentID), decimal.RequireFromString(data.Score))

		switch {
		case err == nil:
			render.JSON(w, newExamResultResponse(result))
		case errors.Is(err, apperrors.ErrExamNotFound):
			render.ServiceError(w, "Exam not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrStudentNotFound):
			render.ServiceError(w, "Student not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrScoreOutOfRange):
			render.ServiceError(w, "Score is out of range", http.StatusUnprocessableEntity)
		default:
			l.Error("Failed to save exam result", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleListExamResults(exams examService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		examID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid exam id", http.StatusBadRequest)
			return
		}

		list, err := exams.ListResults(r.Context(), examID)

		switch {
		case err == nil:
			response := make([]examResultResponse, 0, len(list))
			for _, result := range list {
				response = append(response, newExamResultResponse(result))
			}
			render.JSON(w, response)
		case errors.Is(err, apperrors.ErrExamNotFound):
			render.ServiceError(w, "Exam not found", http.StatusNotFound)
		default:
			l.Error("Failed to list exam results", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

// The result of the authenticated student
func handleMyExamResult(exams examService, students studentService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		examID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid exam id", http.StatusBadRequest)
			return
		}

		student, err := students.GetByUserID(r.Context(), user.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				render.ServiceError(w, "Student profile not found", http.StatusNotFound)
				return
			}
			l.Error("Failed to get student profile", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		result, err := exams.GetResult(r.Context(), examID, student.ID)

		switch {
		case err == nil:
			render.JSON(w, newExamResultResponse(result))
		case errors.Is(err, apperrors.ErrResultNotFound):
			render.ServiceError(w, "Result not found", http.StatusNotFound)
		default:
			l.Error("Failed to get exam result", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
