package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/edukit/campus/internal/handlers/middleware"
	"github.com/edukit/campus/internal/handlers/render"
	"github.com/edukit/campus/internal/logger"
	"github.com/edukit/campus/internal/models"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

type RouterConfig struct {
	Auth         authService
	Registration registrationService
	Students     studentService
	Teachers     teacherService
	Courses      courseService
	Exams        examService
	Classes      classService

	Logger logger.Logger

	// Database (or any other readiness) probe for /healthz
	// Optional: when nil /healthz only confirms the process is alive
	Pinger interface {
		Ping(ctx context.Context) error
	}

	// Optional: metrics middleware and the /metrics endpoint handler
	Metrics        *middleware.Metrics
	MetricsHandler http.Handler

	// Optional: per-IP limiter mounted on login and registration
	LoginLimiter *middleware.RateLimiter
}

func NewRouter(cfg RouterConfig) http.Handler {
	l := cfg.Logger

	withAuth := middleware.Auth(cfg.Auth)
	teacherOnly := middleware.RequireRole(models.RoleTeacher)
	studentOnly := middleware.RequireRole(models.RoleStudent)

	limited := func(h http.Handler) http.Handler { return h }
	if cfg.LoginLimiter != nil {
		limited = cfg.LoginLimiter.Middleware()
	}

	api := http.NewServeMux()

	// Public allow-list: everything else behind the bearer token
	api.Handle("POST /auth/login", limited(handleLogin(cfg.Auth, l)))
	api.Handle("POST /auth/refresh", handleTokenRefresh(cfg.Auth, l))
	api.Handle("POST /auth/register/student", limited(handleRegisterStudent(cfg.Registration, l)))
	api.Handle("POST /auth/register/teacher", limited(handleRegisterTeacher(cfg.Registration, l)))

	api.Handle("GET /auth/me", withAuth(handleAuthMe()))

	api.Handle("GET /students", chain(handleListStudents(cfg.Students, l), withAuth, teacherOnly))
	api.Handle("GET /students/me", chain(handleStudentMe(cfg.Students, l), withAuth, studentOnly))
	api.Handle("PUT /students/me", chain(handleUpdateStudentMe(cfg.Students, l), withAuth, studentOnly))
	api.Handle("GET /students/{id}", chain(handleGetStudent(cfg.Students, l), withAuth, teacherOnly))

	api.Handle("GET /teachers", withAuth(handleListTeachers(cfg.Teachers, l)))
	api.Handle("GET /teachers/{id}", withAuth(handleGetTeacher(cfg.Teachers, l)))

	api.Handle("POST /courses", chain(handleCreateCourse(cfg.Courses, cfg.Teachers, l), withAuth, teacherOnly))
	api.Handle("GET /courses", withAuth(handleListCourses(cfg.Courses, l)))
	api.Handle("GET /courses/{id}", withAuth(handleGetCourse(cfg.Courses, l)))
	api.Handle("POST /courses/{id}/enroll", chain(handleEnrollCourse(cfg.Courses, cfg.Students, l), withAuth, studentOnly))
	api.Handle("GET /courses/{id}/students", chain(handleListCourseStudents(cfg.Courses, l), withAuth, teacherOnly))

	api.Handle("POST /exams", chain(handleCreateExam(cfg.Exams, l), withAuth, teacherOnly))
	api.Handle("GET /exams", withAuth(handleListExams(cfg.Exams, l)))
	api.Handle("POST /exams/{id}/results", chain(handleSaveExamResult(cfg.Exams, l), withAuth, teacherOnly))
	api.Handle("GET /exams/{id}/results", chain(handleListExamResults(cfg.Exams, l), withAuth, teacherOnly))
	api.Handle("GET /exams/{id}/results/me", chain(handleMyExamResult(cfg.Exams, cfg.Students, l), withAuth, studentOnly))

	api.Handle("POST /classes", chain(handleCreateSession(cfg.Classes, l), withAuth, teacherOnly))
	api.Handle("GET /classes", withAuth(handleListSessions(cfg.Classes, l)))
	api.Handle("POST /classes/{id}/attendance", chain(handleMarkAttendance(cfg.Classes, l), withAuth, teacherOnly))
	api.Handle("GET /classes/{id}/attendance", chain(handleListAttendance(cfg.Classes, l), withAuth, teacherOnly))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("GET /healthz", handleHealthz(cfg.Pinger))
	if cfg.MetricsHandler != nil {
		root.Handle("GET /metrics", cfg.MetricsHandler)
	}

	mds := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.Logger(l),
	}
	if cfg.Metrics != nil {
		mds = append(mds, cfg.Metrics.Middleware())
	}
	mds = append(mds, middleware.Recover(l))

	return chain(root, mds...)
}

func handleHealthz(pinger interface {
	Ping(ctx context.Context) error
}) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				render.ServiceError(w, "Database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		render.JSON(w, map[string]string{"status": "ok"})
	})
}

type authService interface {
	// Login user with username and password
	// Unknown user and wrong password both return apperrors.ErrInvalidCredentials
	Login(ctx context.Context, username string, password string) (models.TokenPair, error)

	// Refresh mints a new pair from a valid refresh token
	Refresh(ctx context.Context, refresh string) (models.TokenPair, error)

	// Authenticate resolves the user behind the request's bearer token
	Authenticate(ctx context.Context, r *http.Request) (models.User, error)
}

type registrationService interface {
	RegisterStudent(ctx context.Context, username string, password string, fullName string, groupName string) (models.Student, models.TokenPair, error)
	RegisterTeacher(ctx context.Context, username string, password string, fullName string, department string) (models.Teacher, models.TokenPair, error)
}

type studentService interface {
	Get(ctx context.Context, id uuid.UUID) (models.Student, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	Update(ctx context.Context, id uuid.UUID, fullName string, groupName string) (models.Student, error)
}

type teacherService interface {
	Get(ctx context.Context, id uuid.UUID) (models.Teacher, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (models.Teacher, error)
	List(ctx context.Context) ([]models.Teacher, error)
}

type courseService interface {
	Create(ctx context.Context, teacherID uuid.UUID, title string, description string) (models.Course, error)
	Get(ctx context.Context, id uuid.UUID) (models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Enroll(ctx context.Context, courseID uuid.UUID, studentID uuid.UUID) (models.Enrollment, error)
	ListEnrolled(ctx context.Context, courseID uuid.UUID) ([]models.Student, error)
}

type examService interface {
	Create(ctx context.Context, courseID uuid.UUID, title string, heldAt time.Time, maxScore decimal.Decimal) (models.Exam, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Exam, error)
	SaveResult(ctx context.Context, examID uuid.UUID, studentID uuid.UUID, score decimal.Decimal) (models.ExamResult, error)
	ListResults(ctx context.Context, examID uuid.UUID) ([]models.ExamResult, error)
	GetResult(ctx context.Context, examID uuid.UUID, studentID uuid.UUID) (models.ExamResult, error)
}

type classService interface {
	CreateSession(ctx context.Context, courseID uuid.UUID, topic string, startsAt time.Time) (models.ClassSession, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.ClassSession, error)
	MarkAttendance(ctx context.Context, sessionID uuid.UUID, studentID uuid.UUID, status string) (models.Attendance, error)
	ListAttendance(ctx context.Context, sessionID uuid.UUID) ([]models.Attendance, error)
}
