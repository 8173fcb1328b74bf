package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"

	// lifetime of the lock if the first request never completes
	idempotencyLockTTL = time.Minute
	storeTimeout       = 2 * time.Second
)

// captureWriter tees the response so it can be stored for replay.
type captureWriter struct {
	http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// Idempotency replays the stored response of a mutating request that repeats
// an Idempotency-Key. Requests without the header pass through. Keys are
// scoped by method, route and the caller's account; 5xx responses are not
// stored so the client may retry.
func Idempotency(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	store := replayStore{rdb: rdb, lockTTL: idempotencyLockTTL, ttl: ttl}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}
			raw := req.Header.Get(HeaderIdempotencyKey)
			if raw == "" {
				return next(c)
			}
			idemKey, ok := normalizeKey(raw)
			if !ok {
				return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid Idempotency-Key format"})
			}

			user := "anonymous"
			if s := SessionFrom(c); s != nil {
				user = strconv.FormatUint(s.UserID, 10)
			}
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			hash := bodyHash(body)
			key := store.key(req.Method, c.Path(), user, idemKey)

			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()
			locked, err := store.lock(ctx, key, hash)
			if err != nil {
				c.Logger().Warnf("idempotency store unavailable: %v", err)
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"message": "idempotency store unavailable"})
			}
			if !locked {
				return replay(ctx, c, store, key, hash)
			}

			w := &captureWriter{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = w
			if err := next(c); err != nil {
				c.Error(err)
			}

			if w.code >= http.StatusInternalServerError {
				if err := store.release(context.Background(), key); err != nil {
					c.Logger().Warnf("idempotency release %s: %v", key, err)
				}
				return nil
			}
			if err := store.save(context.Background(), key, w.code, w.buf.Bytes(), hash); err != nil {
				c.Logger().Warnf("idempotency save %s: %v", key, err)
			}
			return nil
		}
	}
}

func replay(ctx context.Context, c echo.Context, store replayStore, key, hash string) error {
	cur, found, err := store.load(ctx, key)
	if err != nil {
		c.Logger().Warnf("idempotency load %s: %v", key, err)
	}
	switch {
	case found && cur.BodyHash != hash:
		return c.JSON(http.StatusConflict, map[string]string{"message": "Idempotency-Key reused with a different body"})
	case found && !cur.Pending && cur.Code != 0:
		return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
	}
	return c.JSON(http.StatusConflict, map[string]string{"message": "request is already in progress"})
}
