package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domainAccount "vms-backend/internal/domain/account"
	"vms-backend/internal/usecase/account"
)

type AccountHandler struct{ uc *account.Usecase }

func NewAccountHandler(uc *account.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

func (h *AccountHandler) List(c echo.Context) error {
	f := domainAccount.Filter{AccountType: domainAccount.Type(c.QueryParam("accountType"))}
	list, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *AccountHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) Create(c echo.Context) error {
	var req account.CreateInput
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := h.uc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req account.UpdateInput
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := h.uc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message{Message: "account deleted"})
}
