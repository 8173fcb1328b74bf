package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/usecase/evaluation"
)

type EvaluationHandler struct{ uc *evaluation.Usecase }

func NewEvaluationHandler(uc *evaluation.Usecase) *EvaluationHandler {
	return &EvaluationHandler{uc: uc}
}

func (h *EvaluationHandler) List(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *EvaluationHandler) ListByEvent(c echo.Context) error {
	kind, id, err := kindAndID(c, "eventId")
	if err != nil {
		return err
	}
	list, err := h.uc.ListByEvent(c.Request().Context(), kind, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *EvaluationHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Template returns the evaluation form of an accepted requirement.
func (h *EvaluationHandler) Template(c echo.Context) error {
	v, err := h.uc.Template(c.Request().Context(), c.Param("requirementId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

func (h *EvaluationHandler) Submit(c echo.Context) error {
	var req evaluation.SubmitInput
	if err := bind(c, &req); err != nil {
		return err
	}
	v, err := h.uc.Submit(c.Request().Context(), c.Param("requirementId"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}
