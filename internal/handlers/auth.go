package handlers

import (
	"errors"
	"net/http"

	"github.com/edukit/campus/internal/apperrors"
	"github.com/edukit/campus/internal/handlers/render"
	"github.com/edukit/campus/internal/handlers/userctx"
	"github.com/edukit/campus/internal/logger"
	"github.com/edukit/campus/internal/models"
)

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func newTokenResponse(pair models.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  pair.Access.Value,
		RefreshToken: pair.Refresh.Value,
	}
}

func handleLogin(auth authService, l logger.Logger) http.Handler {
	type request struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		pair, err := auth.Login(r.Context(), data.Username, data.Password)

		switch {
		case err == nil:
			render.JSON(w, newTokenResponse(pair))
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			// One message for unknown user and wrong password
			render.ServiceError(w, "Invalid username or password", http.StatusUnauthorized)
		default:
			l.Error("Failed to login", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleTokenRefresh(auth authService, l logger.Logger) http.Handler {
	type request struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		pair, err := auth.Refresh(r.Context(), data.RefreshToken)

		switch {
		case err == nil:
			render.JSON(w, newTokenResponse(pair))
		case errors.Is(err, apperrors.ErrTokenExpired):
			render.ServiceError(w, "Refresh token expired", http.StatusUnauthorized)
		default:
			// Malformed, forged, wrong kind or deleted account: all just invalid
			render.ServiceError(w, "Invalid refresh token", http.StatusUnauthorized)
		}
	})
}

func handleRegisterStudent(registration registrationService, l logger.Logger) http.Handler {
	type request struct {
		Username  string `json:"username" validate:"required,min=2,max=50"`
		Password  string `json:"password" validate:"required,min=8"`
		FullName  string `json:"fullName" validate:"required"`
		GroupName string `json:"groupName" validate:"required"`
	}
	type response struct {
		tokenResponse
		Student studentResponse `json:"student"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		student, pair, err := registration.RegisterStudent(r.Context(), data.Username, data.Password, data.FullName, data.GroupName)

		switch {
		case err == nil:
			render.JSONWithStatus(w, response{newTokenResponse(pair), newStudentResponse(student)}, http.StatusCreated)
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			render.ServiceError(w, "User already exists", http.StatusConflict)
		default:
			l.Error("Failed to register student", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleRegisterTeacher(registration registrationService, l logger.Logger) http.Handler {
	type request struct {
		Username   string `json:"username" validate:"required,min=2,max=50"`
		Password   string `json:"password" validate:"required,min=8"`
		FullName   string `json:"fullName" validate:"required"`
		Department string `json:"department" validate:"required"`
	}
	type response struct {
		tokenResponse
		Teacher teacherResponse `json:"teacher"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		teacher, pair, err := registration.RegisterTeacher(r.Context(), data.Username, data.Password, data.FullName, data.Department)

		switch {
		case err == nil:
			render.JSONWithStatus(w, response{newTokenResponse(pair), newTeacherResponse(teacher)}, http.StatusCreated)
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			render.ServiceError(w, "User already exists", http.StatusConflict)
		default:
			l.Error("Failed to register teacher", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleAuthMe() http.Handler {
	type response struct {
		ID       string   `json:"id"`
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, response{
			ID:       user.ID.String(),
			Username: user.Username,
			Roles:    user.Roles,
		})
	})
}
