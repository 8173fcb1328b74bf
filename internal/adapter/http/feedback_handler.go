package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/usecase/feedback"
)

type FeedbackHandler struct{ uc *feedback.Usecase }

func NewFeedbackHandler(uc *feedback.Usecase) *FeedbackHandler { return &FeedbackHandler{uc: uc} }

func (h *FeedbackHandler) GetByEvent(c echo.Context) error {
	kind, eventID, err := kindAndID(c, "eventId")
	if err != nil {
		return err
	}
	f, err := h.uc.GetByEvent(c.Request().Context(), kind, eventID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FeedbackHandler) Create(c echo.Context) error {
	kind, eventID, err := kindAndID(c, "eventId")
	if err != nil {
		return err
	}
	var req feedback.CreateInput
	if err := bind(c, &req); err != nil {
		return err
	}
	f, err := h.uc.Create(c.Request().Context(), kind, eventID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FeedbackHandler) Get(c echo.Context) error {
	id, err := paramID(c, "feedbackId")
	if err != nil {
		return err
	}
	f, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FeedbackHandler) Update(c echo.Context) error {
	id, err := paramID(c, "feedbackId")
	if err != nil {
		return err
	}
	var req feedback.UpdateInput
	if err := bind(c, &req); err != nil {
		return err
	}
	f, err := h.uc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}
