package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"vms-backend/internal/domain/account"
)

func setupEcho(rdb *redis.Client, handler echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	withUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(sessionKey, &account.Session{UserID: 7, AccountType: account.TypeOfficer})
			return next(c)
		}
	}
	e.Use(withUser, Idempotency(rdb, 30*time.Second))
	e.POST("/events", handler)
	e.GET("/events", handler)
	return e
}

func doReq(e *echo.Echo, method, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func counting(calls *int32, code int) echo.HandlerFunc {
	return func(c echo.Context) error {
		n := atomic.AddInt32(calls, 1)
		return c.JSON(code, map[string]int32{"call": n})
	}
}

func TestIdempotency_PassThrough(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, counting(&calls, http.StatusCreated))

	if rec := doReq(e, http.MethodGet, "", strings.Repeat("a", 32)); rec.Code != http.StatusCreated {
		t.Fatalf("GET: got %d", rec.Code)
	}
	doReq(e, http.MethodPost, `{}`, "")
	doReq(e, http.MethodPost, `{}`, "")
	if calls != 3 {
		t.Fatalf("handler calls = %d, want 3", calls)
	}
}

func TestIdempotency_InvalidKey(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, counting(&calls, http.StatusCreated))

	if rec := doReq(e, http.MethodPost, `{}`, "not-a-key"); rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
	if calls != 0 {
		t.Fatalf("handler should not run")
	}
}

func TestIdempotency_Replay(t *testing.T) {
	_, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, counting(&calls, http.StatusCreated))
	key := strings.Repeat("c", 32)

	first := doReq(e, http.MethodPost, `{"title":"A"}`, key)
	second := doReq(e, http.MethodPost, `{"title":"A"}`, key)
	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("codes = %d, %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body %q != %q", second.Body.String(), first.Body.String())
	}
	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}

	if rec := doReq(e, http.MethodPost, `{"title":"B"}`, key); rec.Code != http.StatusConflict {
		t.Fatalf("different body: got %d, want 409", rec.Code)
	}
}

func TestIdempotency_InProgress(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, counting(&calls, http.StatusCreated))
	key := strings.Repeat("d", 32)

	store := replayStore{}
	payload := `{"pending":true,"bodyHash":"` + bodyHash([]byte(`{}`)) + `"}`
	if err := mr.Set(store.key(http.MethodPost, "/events", "7", key), payload); err != nil {
		t.Fatal(err)
	}
	if rec := doReq(e, http.MethodPost, `{}`, key); rec.Code != http.StatusConflict {
		t.Fatalf("got %d, want 409", rec.Code)
	}
	if calls != 0 {
		t.Fatalf("handler should not run while locked")
	}
}

func TestIdempotency_ServerErrorReleasesKey(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, counting(&calls, http.StatusInternalServerError))
	key := strings.Repeat("e", 32)

	doReq(e, http.MethodPost, `{}`, key)
	if mr.Exists(replayStore{}.key(http.MethodPost, "/events", "7", key)) {
		t.Fatalf("key should be released after a 500")
	}
	doReq(e, http.MethodPost, `{}`, key)
	if calls != 2 {
		t.Fatalf("handler calls = %d, want 2", calls)
	}
}

func TestIdempotency_StoreDown(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	var calls int32
	e := setupEcho(rdb, counting(&calls, http.StatusCreated))
	mr.Close()

	if rec := doReq(e, http.MethodPost, `{}`, strings.Repeat("f", 32)); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("got %d, want 503", rec.Code)
	}
}
