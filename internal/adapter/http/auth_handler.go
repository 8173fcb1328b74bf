package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/adapter/middleware"
	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/usecase/auth"
	"vms-backend/internal/usecase/membership"
)

type AuthHandler struct {
	auth    *auth.Usecase
	members *membership.Usecase
}

func NewAuthHandler(a *auth.Usecase, m *membership.Usecase) *AuthHandler {
	return &AuthHandler{auth: a, members: m}
}

// Register files a membership application.
func (h *AuthHandler) Register(c echo.Context) error {
	var req membership.ApplyInput
	if err := bind(c, &req); err != nil {
		return err
	}
	m, err := h.members.Apply(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "application received",
		"member":  m,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req auth.LoginInput
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.auth.Authenticate(c.Request().Context(), req)
	if err != nil {
		return err
	}
	if res == nil {
		return apperr.Auth("invalid credentials")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.BearerToken(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message{Message: "logged out"})
}

func (h *AuthHandler) Session(c echo.Context) error {
	s, err := h.auth.Current(c.Request().Context(), middleware.BearerToken(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AuthHandler) Status(c echo.Context) error {
	st, err := h.members.CheckStatus(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}
