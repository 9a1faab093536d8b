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

type teacherResponse struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newTeacherResponse(t models.Teacher) teacherResponse {
	return teacherResponse{
		ID:         t.ID.String(),
		FullName:   t.FullName,
		Department: t.Department,
		CreatedAt:  t.CreatedAt,
	}
}

func handleListTeachers(teachers teacherService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := teachers.List(r.Context())
		if err != nil {
			l.Error("Failed to list teachers", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := make([]teacherResponse, 0, len(list))
		for _, t := range list {
			response = append(response, newTeacherResponse(t))
		}
		render.JSON(w, response)
	})
}

func handleGetTeacher(teachers teacherService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid teacher id", http.StatusBadRequest)
			return
		}

		teacher, err := teachers.Get(r.Context(), id)

		switch {
		case err == nil:
			render.JSON(w, newTeacherResponse(teacher))
		case errors.Is(err, apperrors.ErrTeacherNotFound):
			render.ServiceError(w, "Teacher not found", http.StatusNotFound)
		default:
			l.Error("Failed to get teacher", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
