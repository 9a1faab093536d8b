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

type courseResponse struct {
	ID          string    `json:"id"`
	TeacherID   string    `json:"teacherId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newCourseResponse(c models.Course) courseResponse {
	return courseResponse{
		ID:          c.ID.String(),
		TeacherID:   c.TeacherID.String(),
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// Course is created on behalf of the authenticated teacher's profile
func handleCreateCourse(courses courseService, teachers teacherService, l logger.Logger) http.Handler {
	type request struct {
		Title       string `json:"title" validate:"required,min=1,max=200"`
		Description string `json:"description"`
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

		teacher, err := teachers.GetByUserID(r.Context(), user.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrTeacherNotFound) {
				render.ServiceError(w, "Teacher profile not found", http.StatusNotFound)
				return
			}
			l.Error("Failed to get teacher profile", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		course, err := courses.Create(r.Context(), teacher.ID, data.Title, data.Description)
		if err != nil {
			l.Error("Failed to create course", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSONWithStatus(w, newCourseResponse(course), http.StatusCreated)
	})
}

func handleListCourses(courses courseService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		list, err := courses.List(r.Context())
		if err != nil {
			l.Error("Failed to list courses", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := make([]courseResponse, 0, len(list))
		for _, c := range list {
			response = append(response, newCourseResponse(c))
		}
		render.JSON(w, response)
	})
}

func handleGetCourse(courses courseService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid course id", http.StatusBadRequest)
			return
		}

		course, err := courses.Get(r.Context(), id)

		switch {
		case err == nil:
			render.JSON(w, newCourseResponse(course))
		case errors.Is(err, apperrors.ErrCourseNotFound):
			render.ServiceError(w, "Course not found", http.StatusNotFound)
		default:
			l.Error("Failed to get course", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

// The authenticated student enrolls themselves
func handleEnrollCourse(courses courseService, students studentService, l logger.Logger) http.Handler {
	type response struct {
		CourseID   string    `json:"courseId"`
		StudentID  string    `json:"studentId"`
		EnrolledAt time.Time `json:"enrolledAt"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		courseID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid course id", http.StatusBadRequest)
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

		enrollment, err := courses.Enroll(r.Context(), courseID, student.ID)

		switch {
		case err == nil:
			render.JSONWithStatus(w, response{
				CourseID:   enrollment.CourseID.String(),
				StudentID:  enrollment.StudentID.String(),
				EnrolledAt: enrollment.CreatedAt,
			}, http.StatusCreated)
		case errors.Is(err, apperrors.ErrCourseNotFound):
			render.ServiceError(w, "Course not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrAlreadyEnrolled):
			render.ServiceError(w, "Already enrolled", http.StatusConflict)
		default:
			l.Error("Failed to enroll", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleListCourseStudents(courses courseService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		courseID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Invalid course id", http.StatusBadRequest)
			return
		}

		list, err := courses.ListEnrolled(r.Context(), courseID)

		switch {
		case err == nil:
			response := make([]studentResponse, 0, len(list))
			for _, s := range list {
				response = append(response, newStudentResponse(s))
			}
			render.JSON(w, response)
		case errors.Is(err, apperrors.ErrCourseNotFound):
			render.ServiceError(w, "Course not found", http.StatusNotFound)
		default:
			l.Error("Failed to list enrolled students", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
