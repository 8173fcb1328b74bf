package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/usecase/dashboard"
)

type DashboardHandler struct{ uc *dashboard.Usecase }

func NewDashboardHandler(uc *dashboard.Usecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	s, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *DashboardHandler) Analytics(c echo.Context) error {
	var year int
	if raw := c.QueryParam("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1900 || y > 9999 {
			return apperr.Validation("invalid year", "year")
		}
		year = y
	}
	m, err := h.uc.Monthly(c.Request().Context(), year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (h *DashboardHandler) ActiveMembers(c echo.Context) error {
	list, err := h.uc.ActiveMembers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *DashboardHandler) Event(c echo.Context) error {
	kind, id, err := kindAndID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.uc.EventDetail(c.Request().Context(), kind, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
