package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/adapter/middleware"
	domainEvent "vms-backend/internal/domain/event"
	"vms-backend/internal/usecase/event"
)

type EventHandler struct{ uc *event.Usecase }

func NewEventHandler(uc *event.Usecase) *EventHandler { return &EventHandler{uc: uc} }

func (h *EventHandler) List(c echo.Context) error {
	f := domainEvent.Filter{
		Kind:   domainEvent.Kind(c.QueryParam("eventType")),
		Status: domainEvent.Status(c.QueryParam("status")),
	}
	list, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *EventHandler) ListPublic(c echo.Context) error {
	list, err := h.uc.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *EventHandler) Get(c echo.Context) error {
	kind, id, err := kindAndID(c, "id")
	if err != nil {
		return err
	}
	e, err := h.uc.Get(c.Request().Context(), kind, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (h *EventHandler) Create(c echo.Context) error {
	kind, err := paramKind(c)
	if err != nil {
		return err
	}
	var req event.Input
	if err := bind(c, &req); err != nil {
		return err
	}
	var createdBy uint64
	if s := middleware.SessionFrom(c); s != nil {
		createdBy = s.UserID
	}
	e, err := h.uc.Create(c.Request().Context(), kind, req, createdBy)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

func (h *EventHandler) Update(c echo.Context) error {
	kind, id, err := kindAndID(c, "id")
	if err != nil {
		return err
	}
	var req event.Input
	if err := bind(c, &req); err != nil {
		return err
	}
	e, err := h.uc.Update(c.Request().Context(), kind, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Transition returns a handler that moves :kind/:id through action.
func (h *EventHandler) Transition(action domainEvent.Action) echo.HandlerFunc {
	return func(c echo.Context) error {
		kind, id, err := kindAndID(c, "id")
		if err != nil {
			return err
		}
		e, err := h.uc.Transition(c.Request().Context(), kind, id, action)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, e)
	}
}

func (h *EventHandler) Delete(c echo.Context) error {
	kind, id, err := kindAndID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), kind, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message{Message: "event deleted"})
}

func (h *EventHandler) GetSignatories(c echo.Context) error {
	kind, id, err := kindAndID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.uc.GetSignatories(c.Request().Context(), kind, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *EventHandler) UpdateSignatories(c echo.Context) error {
	kind, id, err := kindAndID(c, "id")
	if err != nil {
		return err
	}
	var req event.SignatoriesInput
	if err := bind(c, &req); err != nil {
		return err
	}
	s, err := h.uc.UpdateSignatories(c.Request().Context(), kind, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *EventHandler) Analyze(c echo.Context) error {
	kind, id, err := kindAndID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.uc.Analyze(c.Request().Context(), kind, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}
