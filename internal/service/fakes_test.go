package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/models"
	"github.com/edukit/campus/internal/repository"
)

// In memory storage for service tests.
// Repos embed their interface: only the methods a test actually reaches are
// implemented, the rest panic loudly.
type fakeStorage struct {
	users    *fakeUserRepo
	students *fakeStudentRepo
	teachers *fakeTeacherRepo
	courses  *fakeCourseRepo
	exams    *fakeExamRepo
	classes  *fakeClassRepo
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:    &fakeUserRepo{users: map[string]models.User{}},
		students: &fakeStudentRepo{byUserID: map[uuid.UUID]models.Student{}},
		teachers: &fakeTeacherRepo{byUserID: map[uuid.UUID]models.Teacher{}},
		courses:  &fakeCourseRepo{courses: map[uuid.UUID]models.Course{}},
		exams:    &fakeExamRepo{exams: map[uuid.UUID]models.Exam{}, results: map[uuid.UUID]map[uuid.UUID]models.ExamResult{}},
		classes:  &fakeClassRepo{sessions: map[uuid.UUID]models.ClassSession{}, attendance: map[uuid.UUID]map[uuid.UUID]models.Attendance{}},
	}
}

func (s *fakeStorage) User() repository.UserRepo       { return s.users }
func (s *fakeStorage) Student() repository.StudentRepo { return s.students }
func (s *fakeStorage) Teacher() repository.TeacherRepo { return s.teachers }
func (s *fakeStorage) Course() repository.CourseRepo   { return s.courses }
func (s *fakeStorage) Exam() repository.ExamRepo       { return s.exams }
func (s *fakeStorage) Class() repository.ClassRepo     { return s.classes }

// No real transaction semantics, the callback just sees the same storage
func (s *fakeStorage) InTx(ctx context.Context, fn func(repository.Storage) error) error {
	return fn(s)
}

type fakeUserRepo struct {
	repository.UserRepo

	users map[string]models.User
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, username string, hashedPassword string, roles []string) (models.User, error) {
	if _, ok := r.users[username]; ok {
		return models.User{}, apperrors.ErrUserAlreadyExists
	}

	user := models.User{ID: uuid.New(), Username: username, HashedPassword: hashedPassword, Roles: roles}
	r.users[username] = user
	return user, nil
}

func (r *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	user, ok := r.users[username]
	if !ok {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeStudentRepo struct {
	repository.StudentRepo

	byUserID map[uuid.UUID]models.Student
}

func (r *fakeStudentRepo) Create(ctx context.Context, userID uuid.UUID, fullName string, groupName string) (models.Student, error) {
	if _, ok := r.byUserID[userID]; ok {
		return models.Student{}, apperrors.ErrProfileExists
	}

	student := models.Student{ID: uuid.New(), UserID: userID, FullName: fullName, GroupName: groupName}
	r.byUserID[userID] = student
	return student, nil
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (models.Student, error) {
	student, ok := r.byUserID[userID]
	if !ok {
		return models.Student{}, apperrors.ErrStudentNotFound
	}
	return student, nil
}

type fakeTeacherRepo struct {
	repository.TeacherRepo

	byUserID map[uuid.UUID]models.Teacher
}

func (r *fakeTeacherRepo) Create(ctx context.Context, userID uuid.UUID, fullName string, department string) (models.Teacher, error) {
	if _, ok := r.byUserID[userID]; ok {
		return models.Teacher{}, apperrors.ErrProfileExists
	}

	teacher := models.Teacher{ID: uuid.New(), UserID: userID, FullName: fullName, Department: department}
	r.byUserID[userID] = teacher
	return teacher, nil
}

type fakeCourseRepo struct {
	repository.CourseRepo

	courses map[uuid.UUID]models.Course
}

func (r *fakeCourseRepo) Create(ctx context.Context, teacherID uuid.UUID, title string, description string) (models.Course, error) {
	course := models.Course{ID: uuid.New(), TeacherID: teacherID, Title: title, Description: description}
	r.courses[course.ID] = course
	return course, nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return models.Course{}, apperrors.ErrCourseNotFound
	}
	return course, nil
}

type fakeExamRepo struct {
	repository.ExamRepo

	exams   map[uuid.UUID]models.Exam
	results map[uuid.UUID]map[uuid.UUID]models.ExamResult
}

func (r *fakeExamRepo) Create(ctx context.Context, courseID uuid.UUID, title string, heldAt time.Time, maxScore decimal.Decimal) (models.Exam, error) {
	exam := models.Exam{ID: uuid.New(), CourseID: courseID, Title: title, HeldAt: heldAt, MaxScore: maxScore}
	r.exams[exam.ID] = exam
	return exam, nil
}

func (r *fakeExamRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Exam, error) {
	exam, ok := r.exams[id]
	if !ok {
		return models.Exam{}, apperrors.ErrExamNotFound
	}
	return exam, nil
}

func (r *fakeExamRepo) SaveResult(ctx context.Context, examID uuid.UUID, studentID uuid.UUID, score decimal.Decimal) (models.ExamResult, error) {
	if r.results[examID] == nil {
		r.results[examID] = map[uuid.UUID]models.ExamResult{}
	}

	result := models.ExamResult{ExamID: examID, StudentID: studentID, Score: score, GradedAt: time.Now()}
	r.results[examID][studentID] = result
	return result, nil
}

type fakeClassRepo struct {
	repository.ClassRepo

	sessions   map[uuid.UUID]models.ClassSession
	attendance map[uuid.UUID]map[uuid.UUID]models.Attendance
}

func (r *fakeClassRepo) CreateSession(ctx context.Context, courseID uuid.UUID, topic string, startsAt time.Time) (models.ClassSession, error) {
	session := models.ClassSession{ID: uuid.New(), CourseID: courseID, Topic: topic, StartsAt: startsAt}
	r.sessions[session.ID] = session
	return session, nil
}

func (r *fakeClassRepo) GetSession(ctx context.Context, id uuid.UUID) (models.ClassSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return models.ClassSession{}, apperrors.ErrSessionNotFound
	}
	return session, nil
}

func (r *fakeClassRepo) MarkAttendance(ctx context.Context, sessionID uuid.UUID, studentID uuid.UUID, status string) (models.Attendance, error) {
	if r.attendance[sessionID] == nil {
		r.attendance[sessionID] = map[uuid.UUID]models.Attendance{}
	}

	att := models.Attendance{SessionID: sessionID, StudentID: studentID, Status: status, MarkedAt: time.Now()}
	r.attendance[sessionID][studentID] = att
	return att, nil
}
