package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/domain/decision"
	domainEvent "vms-backend/internal/domain/event"
	domainRequirement "vms-backend/internal/domain/requirement"
	"vms-backend/internal/usecase/requirement"
)

type RequirementHandler struct{ uc *requirement.Usecase }

func NewRequirementHandler(uc *requirement.Usecase) *RequirementHandler {
	return &RequirementHandler{uc: uc}
}

// Create takes a multipart sign-up form with medCert and waiver files. The
// event type comes from the :kind segment or the eventType field and
// defaults to internal.
func (h *RequirementHandler) Create(c echo.Context) error {
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return err
	}
	kind := domainEvent.KindInternal
	if c.Param("kind") != "" {
		if kind, err = paramKind(c); err != nil {
			return err
		}
	} else if v := strings.ToLower(strings.TrimSpace(c.FormValue("eventType"))); v != "" {
		kind = domainEvent.Kind(v)
	}

	in := requirement.CreateInput{
		ID: strings.TrimSpace(c.FormValue("id")),
		Applicant: domainRequirement.Applicant{
			Fullname:    c.FormValue("fullname"),
			Email:       c.FormValue("email"),
			SRCode:      c.FormValue("srcode"),
			Age:         formInt(c, "age"),
			Birthday:    c.FormValue("birthday"),
			Sex:         c.FormValue("sex"),
			Campus:      c.FormValue("campus"),
			College:     c.FormValue("collegeDept"),
			YearLevel:   c.FormValue("yrlevelprogram"),
			Address:     c.FormValue("address"),
			Contact:     c.FormValue("contactNum"),
			FBLink:      c.FormValue("fblink"),
			Affiliation: c.FormValue("affiliation"),
		},
	}
	if err := c.Validate(&in); err != nil {
		return &validationError{fields: ToFieldErrors(err)}
	}

	var closers []io.Closer
	defer func() { closeAll(closers) }()
	medCert, cl, err := formFile(c, "medCert")
	if err != nil {
		return err
	}
	closers = append(closers, cl)
	waiver, cl, err := formFile(c, "waiver")
	if err != nil {
		return err
	}
	closers = append(closers, cl)

	r, err := h.uc.Create(c.Request().Context(), kind, eventID, in, medCert, waiver)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *RequirementHandler) Accept(c echo.Context) error {
	r, err := h.uc.Accept(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *RequirementHandler) Reject(c echo.Context) error {
	r, err := h.uc.Reject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *RequirementHandler) Get(c echo.Context) error {
	r, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *RequirementHandler) List(c echo.Context) error {
	f := domainRequirement.Filter{
		EventKind: domainEvent.Kind(c.QueryParam("eventType")),
		Status:    decision.Decision(c.QueryParam("status")),
	}
	list, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RequirementHandler) ListByEvent(c echo.Context) error {
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
