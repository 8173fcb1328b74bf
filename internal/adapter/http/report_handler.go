package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/domain/blob"
	domainReport "vms-backend/internal/domain/report"
	"vms-backend/internal/usecase/report"
)

type ReportHandler struct{ uc *report.Usecase }

func NewReportHandler(uc *report.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

// Create accepts either a JSON body or a multipart form with repeated
// "photos" files.
func (h *ReportHandler) Create(c echo.Context) error {
	kind, eventID, err := kindAndID(c, "eventId")
	if err != nil {
		return err
	}
	if !isMultipart(c) {
		var req report.CreateInput
		if err := bind(c, &req); err != nil {
			return err
		}
		r, err := h.uc.Create(c.Request().Context(), kind, eventID, req, nil)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, r)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperr.Validation("invalid multipart form")
	}
	in := report.CreateInput{
		Narrative:     c.FormValue("narrative"),
		PhotoCaptions: formList(c, "photoCaptions"),
	}
	if c.FormValue("budgetUtilized") != "" || c.FormValue("psAttribution") != "" {
		in.Budget = &domainReport.Budget{
			BudgetUtilized:       formFloat(c, "budgetUtilized"),
			BudgetUtilizedSource: strings.TrimSpace(c.FormValue("budgetUtilizedSrc")),
			PSAttribution:        formFloat(c, "psAttribution"),
			PSAttributionSource:  strings.TrimSpace(c.FormValue("psAttributionSrc")),
		}
	}
	if err := c.Validate(&in); err != nil {
		return &validationError{fields: ToFieldErrors(err)}
	}

	var closers []io.Closer
	defer func() { closeAll(closers) }()
	photos := make([]blob.File, 0, len(form.File["photos"]))
	for _, fh := range form.File["photos"] {
		f, cl, err := openPart(fh, "photos")
		if err != nil {
			return err
		}
		closers = append(closers, cl)
		photos = append(photos, *f)
	}

	r, err := h.uc.Create(c.Request().Context(), kind, eventID, in, photos)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReportHandler) GetByEvent(c echo.Context) error {
	kind, eventID, err := kindAndID(c, "eventId")
	if err != nil {
		return err
	}
	r, err := h.uc.GetByEvent(c.Request().Context(), kind, eventID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *ReportHandler) Delete(c echo.Context) error {
	kind, id, err := kindAndID(c, "reportId")
	if err != nil {
		return err
	}
	r, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if r.EventKind != kind {
		return apperr.NotFound("report not found")
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message{Message: "report deleted"})
}

func (h *ReportHandler) Analytics(c echo.Context) error {
	kind, eventID, err := kindAndID(c, "eventId")
	if err != nil {
		return err
	}
	a, err := h.uc.Analytics(c.Request().Context(), kind, eventID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}
