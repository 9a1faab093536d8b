package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/handlers/render"
	"github.com/edukit/campus/internal/logger"
	"github.com/edukit/campus/internal/models"
)

type sessionResponse struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	Topic     string    `json:"topic"`
	StartsAt  time.Time `json:"startsAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func newSessionResponse(s models.ClassSession) sessionResponse {
	return sessionResponse{
		ID:        s.ID.String(),
		CourseID:  s.CourseID.String(),
		Topic:     s.Topic,
		StartsAt:  s.StartsAt,
		CreatedAt: s.CreatedAt,
	}
}

type attendanceResponse struct {
	SessionID string    `json:"sessionId"`
	StudentID string    `json:"studentId"`
	Status    string    `json:"status"`
	MarkedAt  time.Time `json:"markedAt"`
}

func newAttendanceResponse(a models.Attendance) attendanceResponse {
	return attendanceResponse{
		SessionID: a.SessionID.String(),
		StudentID: a.StudentID.String(),
		Status:    a.Status,
		MarkedAt:  a.MarkedAt,
	}
}

func handleCreateSession(classes classService, l logger.Logger) http.Handler {
	type request struct {
		CourseID string    `json:"courseId" validate:"required,uuid"`
		Topic    string    `json:"topic" validate:"required,min=1,max=200"`
		StartsAt time.Time `json:"startsAt" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		session, err := classes.CreateSession(r.Context(), uuid.MustParse(data.CourseID), data.Topic, data.StartsAt)

		switch {
		case err == nil:
			render.JSONWithStatus(w, newSessionResponse(session), http.StatusCreated)
		case errors.Is(err, apperrors.ErrCourseNotFound):
			render.ServiceError(w, "Course not found", http.StatusNotFound)
		default:
			l.Error("Failed to create class session", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleListSessions(classes classService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		courseID, err := uuid.Parse(r.URL.Query().Get("course_id"))
		if err != nil {
			render.ServiceError(w, "Invalid or missing course_id", http.StatusBadRequest)
			return
		}

		list, err := classes.ListByCourse(r.Context(), courseID)

		switch {
		case err == nil:
			response := make([]sessionResponse, 0, len(list))
			for _, s := range list {
				response = append(response, newSessionResponse(s))
			}
			render.JSON(w, response)
		case errors.Is(err, apperrors.ErrCourseNotFound):
			render.ServiceError(w, "Course not found", http.StatusNotFound)
		default:
			l.Error("Failed to list class sessions", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleMarkAttendance(classes classService, l logger.Logger) http.Handler {
	type request struct {
		StudentID string `json:"studentId" validate:"required,uuid"`
		Status    string `json:"status" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid session id", http.StatusBadRequest)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		att, err := classes.MarkAttendance(r.Context(), sessionID, uuid.MustParse(data.StudentID), data.Status)

		switch {
		case err == nil:
			render.JSON(w, newAttendanceResponse(att))
		case errors.Is(err, apperrors.ErrSessionNotFound):
			render.ServiceError(w, "Session not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrStudentNotFound):
			render.ServiceError(w, "Student not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrAttendanceStatus):
			render.ServiceError(w, "Unknown attendance status", http.StatusUnprocessableEntity)
		default:
			l.Error("Failed to mark attendance", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleListAttendance(classes classService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid session id", http.StatusBadRequest)
			return
		}

		list, err := classes.ListAttendance(r.Context(), sessionID)

		switch {
		case err == nil:
			response := make([]attendanceResponse, 0, len(list))
			for _, a := range list {
				response = append(response, newAttendanceResponse(a))
			}
			render.JSON(w, response)
		case errors.Is(err, apperrors.ErrSessionNotFound):
			render.ServiceError(w, "Session not found", http.StatusNotFound)
		default:
			l.Error("Failed to list attendance", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
