package middleware

import (
	"context"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return mr, rdb
}

func TestNormalizeKey(t *testing.T) {
	for _, s := range []string{
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		" 3F9A6A1B-3D54-4FBE-8B3A-6B3E8D6B2C88 ",
		strings.Repeat("a", 32),
	} {
		if _, ok := normalizeKey(s); !ok {
			t.Fatalf("normalizeKey should accept %q", s)
		}
	}
	for _, s := range []string{
		"",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
		"3f9a6a1b-3d54-9fbe-8b3a-6b3e8d6b2c88",
	} {
		if _, ok := normalizeKey(s); ok {
			t.Fatalf("normalizeKey should reject %q", s)
		}
	}
}

func TestReplayStore(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	ctx := context.Background()
	s := replayStore{rdb: rdb, lockTTL: time.Minute, ttl: 5 * time.Second}
	key := s.key("POST", "/api/events/:kind", "42", strings.Repeat("a", 32))
	if want := "idemp:vms:post:/api/events/:kind:42:" + strings.Repeat("a", 32); key != want {
		t.Fatalf("key = %q, want %q", key, want)
	}

	if _, found, err := s.load(ctx, key); err != nil || found {
		t.Fatalf("load before lock: found=%v err=%v", found, err)
	}
	ok, err := s.lock(ctx, key, "h1")
	if err != nil || !ok {
		t.Fatalf("lock 1: ok=%v err=%v", ok, err)
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("lock TTL = %v", ttl)
	}
	if ok, _ := s.lock(ctx, key, "h1"); ok {
		t.Fatalf("second lock should fail")
	}
	e, found, err := s.load(ctx, key)
	if err != nil || !found || !e.Pending || e.BodyHash != "h1" {
		t.Fatalf("locked entry: %+v found=%v err=%v", e, found, err)
	}

	if err := s.save(ctx, key, 201, []byte(`{"ok":true}`), "h1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > 5*time.Second {
		t.Fatalf("final TTL = %v", ttl)
	}
	e, _, _ = s.load(ctx, key)
	if e.Pending || e.Code != 201 || string(e.Body) != `{"ok":true}` {
		t.Fatalf("saved entry: %+v", e)
	}

	if err := s.release(ctx, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	if mr.Exists(key) {
		t.Fatalf("key should be gone after release")
	}
}
