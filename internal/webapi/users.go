package webapi

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/andreishark/api-backend-ecommerce/internal/domain"
	"github.com/andreishark/api-backend-ecommerce/internal/repository"
)

const tokenLifetime = time.Hour * 24

func (s *WebServer) registerUser(c echo.Context) error {
	var dto domain.UserCreate
	if err := c.Bind(&dto); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse user", err.Error())
	}
	if err := c.Validate(dto); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "User payload invalid", err.Error())
	}

	created, err := s.app.Users().Create(c.Request().Context(), dto.User())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to create user", err.Error())
	}

	zap.L().Info("created user", zap.String("id", created.ID), zap.String("username", created.Username))
	return ok(c, created.AsGet())
}

// loginUser resolves the credential pair and issues an HS256 token.
func (s *WebServer) loginUser(c echo.Context) error {
	var dto domain.UserLogin
	if err := c.Bind(&dto); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", err.Error())
	}
	if err := c.Validate(dto); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Login payload invalid", err.Error())
	}

	user, err := s.app.Users().GetByLogin(c.Request().Context(), dto)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to query user", err.Error())
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.app.Config().Web.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token", err.Error())
	}

	return ok(c, echo.Map{
		"token": token,
		"user":  user.AsGet(),
	})
}

func (s *WebServer) getUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}

	user, err := s.app.Users().GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to query user", err.Error())
	}
	return ok(c, user.AsGet())
}

func (s *WebServer) getUserByEmail(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email query parameter is required", nil)
	}

	user, err := s.app.Users().GetByEmail(c.Request().Context(), email)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "User not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to query user", err.Error())
	}
	return ok(c, user.AsGet())
}
