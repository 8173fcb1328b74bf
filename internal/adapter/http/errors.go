package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/domain/apperr"
)

// ErrorResponse is the body of every non-analytics failure.
type ErrorResponse struct {
	Message    string       `json:"message"`
	FieldError []string     `json:"fieldError,omitempty"`
	Details    []FieldError `json:"details,omitempty"`
}

// AnalyticsResponse keeps the analytics envelope stable on failure.
type AnalyticsResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// validationError carries per-field messages from request validation.
type validationError struct {
	fields []FieldError
}

func (e *validationError) Error() string { return "validation failed" }

// status maps an error to its HTTP status and client body.
func status(err error) (int, ErrorResponse) {
	var ve *validationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorResponse{Message: ve.Error(), FieldError: fieldNames(ve.fields), Details: ve.fields}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return he.Code, ErrorResponse{Message: msg}
	}
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest, ErrorResponse{Message: apperr.MessageOf(err), FieldError: apperr.FieldsOf(err)}
	case apperr.KindAuth:
		return http.StatusForbidden, ErrorResponse{Message: apperr.MessageOf(err)}
	case apperr.KindNotFound:
		return http.StatusNotFound, ErrorResponse{Message: apperr.MessageOf(err)}
	}
	return http.StatusInternalServerError, ErrorResponse{Message: "internal server error"}
}

// HTTPErrorHandler renders errors returned by handlers and middleware.
// Internal and transient failures are logged and hidden from the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, body := status(err)
	if code >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

// envelope writes the analytics envelope. Only validation failures are
// reported as 400; everything else becomes a 500 envelope.
func envelope(c echo.Context, data any, err error) error {
	if err == nil {
		return c.JSON(http.StatusOK, AnalyticsResponse{Success: true, Data: data})
	}
	if apperr.Is(err, apperr.KindValidation) {
		return c.JSON(http.StatusBadRequest, AnalyticsResponse{Message: apperr.MessageOf(err), Error: err.Error()})
	}
	c.Logger().Errorf("analytics %s: %v", c.Path(), err)
	return c.JSON(http.StatusInternalServerError, AnalyticsResponse{Message: "failed to compute analytics", Error: err.Error()})
}
