package http

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	domainAnalytics "vms-backend/internal/domain/analytics"
	"vms-backend/internal/domain/apperr"
	"vms-backend/internal/usecase/analytics"
)

// AnalyticsHandler answers every route with the {success, data} envelope.
type AnalyticsHandler struct{ uc *analytics.Usecase }

func NewAnalyticsHandler(uc *analytics.Usecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) EventSuccess(c echo.Context) error {
	res, err := h.uc.EventSuccess(c.Request().Context(), strings.TrimSpace(c.QueryParam("semester")))
	return envelope(c, res, err)
}

func (h *AnalyticsHandler) Dropout(c echo.Context) error {
	res, err := h.uc.DropoutRisk(c.Request().Context())
	return envelope(c, res, err)
}

func (h *AnalyticsHandler) Insights(c echo.Context) error {
	res, err := h.uc.Insights(c.Request().Context())
	return envelope(c, res, err)
}

func (h *AnalyticsHandler) Satisfaction(c echo.Context) error {
	res, err := h.uc.SatisfactionBySemester(c.Request().Context())
	return envelope(c, res, err)
}

// EventSatisfaction reads the event id from the path or the eventId query.
func (h *AnalyticsHandler) EventSatisfaction(c echo.Context) error {
	raw := c.Param("eventId")
	if raw == "" {
		raw = c.QueryParam("eventId")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return envelope(c, nil, apperr.Validation("eventId is required", "eventId"))
	}
	res, err := h.uc.EventSatisfaction(c.Request().Context(), id)
	return envelope(c, res, err)
}

func (h *AnalyticsHandler) ParticipationHistory(c echo.Context) error {
	f := domainAnalytics.HistoryFilter{
		Semester: strings.TrimSpace(c.QueryParam("semester")),
		Email:    strings.TrimSpace(c.QueryParam("email")),
	}
	res, err := h.uc.ParticipationHistory(c.Request().Context(), f)
	return envelope(c, res, err)
}

func (h *AnalyticsHandler) ParticipationSummary(c echo.Context) error {
	res, err := h.uc.ParticipationSummary(c.Request().Context())
	return envelope(c, res, err)
}

func (h *AnalyticsHandler) All(c echo.Context) error {
	res, err := h.uc.All(c.Request().Context())
	return envelope(c, res, err)
}

func (h *AnalyticsHandler) RebuildSatisfaction(c echo.Context) error {
	res, err := h.uc.RebuildSatisfaction(c.Request().Context())
	return envelope(c, res, err)
}

func (h *AnalyticsHandler) RebuildParticipation(c echo.Context) error {
	res, err := h.uc.RebuildParticipation(c.Request().Context())
	return envelope(c, res, err)
}

func (h *AnalyticsHandler) Clear(c echo.Context) error {
	err := h.uc.ClearDerived(c.Request().Context())
	return envelope(c, map[string]string{"message": "derived analytics cleared"}, err)
}

func (h *AnalyticsHandler) DeleteDummyVolunteers(c echo.Context) error {
	res, err := h.uc.DeleteDummyVolunteers(c.Request().Context())
	return envelope(c, res, err)
}
