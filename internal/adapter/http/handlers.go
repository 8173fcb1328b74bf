package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db Pinger
}

// NewHandler builds the health handler; a nil db skips the store check.
func NewHandler(db Pinger) *Handler { return &Handler{db: db} }

type health struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Time     string `json:"time"`
}

func (h *Handler) Health(c echo.Context) error {
	out := health{Status: "ok", Time: time.Now().UTC().Format(time.RFC3339Nano)}
	if h.db == nil {
		return c.JSON(http.StatusOK, out)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		c.Logger().Errorf("health: database ping: %v", err)
		out.Status, out.Database = "degraded", "unreachable"
		return c.JSON(http.StatusServiceUnavailable, out)
	}
	out.Database = "up"
	return c.JSON(http.StatusOK, out)
}

// message is the body of operations that return nothing else.
type message struct {
	Message string `json:"message"`
}
