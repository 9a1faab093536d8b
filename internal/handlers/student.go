package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/handlers/render"
	"github.com/edukit/campus/internal/handlers/userctx"
	"github.com/edukit/campus/internal/logger"
	"github.com/edukit/campus/internal/models"
)

type studentResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	GroupName string    `json:"groupName"`
	CreatedAt time.Time `json:"createdAt"`
}

func newStudentResponse(s models.Student) studentResponse {
	return studentResponse{
		ID:        s.ID.String(),
		FullName:  s.FullName,
		GroupName: s.GroupName,
		CreatedAt: s.CreatedAt,
	}
}

func handleListStudents(students studentService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := students.List(r.Context())
		if err != nil {
			l.Error("Failed to list students", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := make([]studentResponse, 0, len(list))
		for _, s := range list {
			response = append(response, newStudentResponse(s))
		}
		render.JSON(w, response)
	})
}

func handleGetStudent(students studentService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid student id", http.StatusBadRequest)
			return
		}

		student, err := students.Get(r.Context(), id)

		switch {
		case err == nil:
			render.JSON(w, newStudentResponse(student))
		case errors.Is(err, apperrors.ErrStudentNotFound):
			render.ServiceError(w, "Student not found", http.StatusNotFound)
		default:
			l.Error("Failed to get student", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

// The profile of the authenticated student
func handleStudentMe(students studentService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		student, err := students.GetByUserID(r.Context(), user.ID)

		switch {
		case err == nil:
			render.JSON(w, newStudentResponse(student))
		case errors.Is(err, apperrors.ErrStudentNotFound):
			render.ServiceError(w, "Student profile not found", http.StatusNotFound)
		default:
			l.Error("Failed to get student profile", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleUpdateStudentMe(students studentService, l logger.Logger) http.Handler {
	type request struct {
		FullName  string `json:"fullName" validate:"required"`
		GroupName string `json:"groupName" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
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

		updated, err := students.Update(r.Context(), student.ID, data.FullName, data.GroupName)
		if err != nil {
			l.Error("Failed to update student profile", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, newStudentResponse(updated))
	})
}
