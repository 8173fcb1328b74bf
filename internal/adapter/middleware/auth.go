package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"vms-backend/internal/domain/account"
	"vms-backend/internal/domain/apperr"
)

const sessionKey = "session"

// SessionResolver looks up a live session by token. A nil session with a nil
// error means the token is unknown or expired.
type SessionResolver interface {
	Session(ctx context.Context, token string) (*account.Session, error)
}

func BearerToken(c echo.Context) string {
	h := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// RequireSession rejects requests without a valid bearer token and stores the
// session on the context.
func RequireSession(sessions SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return apperr.Auth("missing bearer token")
			}
			s, err := sessions.Session(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if s == nil {
				return apperr.Auth("invalid or expired session")
			}
			c.Set(sessionKey, s)
			return next(c)
		}
	}
}

// RequireRoles must run after RequireSession.
func RequireRoles(types ...account.Type) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := SessionFrom(c)
			if s == nil {
				return apperr.Auth("missing session")
			}
			for _, t := range types {
				if s.AccountType == t {
					return next(c)
				}
			}
			return apperr.Auth("insufficient role")
		}
	}
}

func SessionFrom(c echo.Context) *account.Session {
	s, _ := c.Get(sessionKey).(*account.Session)
	return s
}
