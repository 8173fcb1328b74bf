package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/decision"
	domainMembership "vms-backend/internal/domain/membership"
	"vms-backend/internal/usecase/membership"
)

type MembershipHandler struct{ uc *membership.Usecase }

func NewMembershipHandler(uc *membership.Usecase) *MembershipHandler {
	return &MembershipHandler{uc: uc}
}

func (h *MembershipHandler) List(c echo.Context) error {
	f := domainMembership.Filter{Status: decision.Decision(c.QueryParam("status"))}
	if raw := c.QueryParam("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return apperr.Validation("active must be true or false", "active")
		}
		f.Active = &active
	}
	list, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *MembershipHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	m, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Review returns a handler that applies one review action to :id.
func (h *MembershipHandler) Review(action string) echo.HandlerFunc {
	var op func(context.Context, uint64) (*domainMembership.Membership, error)
	switch action {
	case "approve":
		op = h.uc.Approve
	case "reject":
		op = h.uc.Reject
	case "activate":
		op = h.uc.Activate
	case "deactivate":
		op = h.uc.Deactivate
	default:
		panic("unknown membership action " + action)
	}
	return func(c echo.Context) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}
		m, err := op(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, m)
	}
}
