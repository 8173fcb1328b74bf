package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/domain/apperr"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	cases := []struct {
		name     string
		db       Pinger
		code     int
		status   string
		database string
	}{
		{"no store", nil, http.StatusOK, "ok", ""},
		{"store up", pingFunc(func(context.Context) error { return nil }), http.StatusOK, "ok", "up"},
		{"store down", pingFunc(func(context.Context) error { return errors.New("refused") }), http.StatusServiceUnavailable, "degraded", "unreachable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

			start := time.Now().UTC()
			if err := NewHandler(tc.db).Health(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
			if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(strings.ToLower(ct), "application/json") {
				t.Fatalf("Content-Type = %q", ct)
			}

			var body health
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
			}
			if body.Status != tc.status || body.Database != tc.database {
				t.Fatalf("body = %+v", body)
			}
			parsed, err := time.Parse(time.RFC3339Nano, body.Time)
			if err != nil {
				t.Fatalf("time not RFC3339Nano: %v (value=%q)", err, body.Time)
			}
			if parsed.Before(start.Add(-2 * time.Second)) {
				t.Fatalf("time %v before request start %v", parsed, start)
			}
		})
	}
}

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   int
		msg    string
		fields []string
	}{
		{"validation", apperr.Validation("missing", "title"), http.StatusBadRequest, "missing", []string{"title"}},
		{"conflict", apperr.Conflict("already taken", "username", "email"), http.StatusBadRequest, "already taken", []string{"username", "email"}},
		{"auth", apperr.Auth("nope"), http.StatusForbidden, "nope", nil},
		{"not found", apperr.NotFound("gone"), http.StatusNotFound, "gone", nil},
		{"echo", echo.ErrNotFound, http.StatusNotFound, "Not Found", nil},
		{"request validation", &validationError{fields: []FieldError{{Field: "email", Message: "is required"}}}, http.StatusBadRequest, "validation failed", []string{"email"}},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal server error", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			HTTPErrorHandler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("code = %d, want %d", rec.Code, tc.code)
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("bad json: %v", err)
			}
			if body.Message != tc.msg {
				t.Fatalf("message = %q, want %q", body.Message, tc.msg)
			}
			if strings.Join(body.FieldError, ",") != strings.Join(tc.fields, ",") {
				t.Fatalf("fieldError = %v, want %v", body.FieldError, tc.fields)
			}
		})
	}
}

func TestEnvelope(t *testing.T) {
	e := echo.New()
	for _, tc := range []struct {
		err     error
		code    int
		success bool
	}{
		{nil, http.StatusOK, true},
		{apperr.Validation("missing", "title"), http.StatusBadRequest, false},
		{errors.New("boom"), http.StatusInternalServerError, false},
	} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		if err := envelope(c, map[string]int{"n": 1}, tc.err); err != nil {
			t.Fatal(err)
		}
		var body AnalyticsResponse
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		if rec.Code != tc.code || body.Success != tc.success {
			t.Fatalf("err=%v: code=%d success=%v", tc.err, rec.Code, body.Success)
		}
		if !tc.success && (body.Message == "" || body.Error == "") {
			t.Fatalf("failure envelope missing message or error: %+v", body)
		}
	}
}
