package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

// normalizeKey lower-cases an Idempotency-Key and reports whether it is a
// uuid or 32 hex characters.
func normalizeKey(k string) (string, bool) {
	k = strings.ToLower(strings.TrimSpace(k))
	return k, reUUID.MatchString(k) || reHex32.MatchString(k)
}

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

// replayEntry is what the store keeps per key: a lock while the first request
// runs, then its response.
type replayEntry struct {
	Pending  bool      `json:"pending"`
	Code     int       `json:"code,omitempty"`
	Body     []byte    `json:"body,omitempty"`
	BodyHash string    `json:"bodyHash"`
	SavedAt  time.Time `json:"savedAt"`
}

type replayStore struct {
	rdb     *redis.Client
	lockTTL time.Duration
	ttl     time.Duration
}

func (s replayStore) key(method, route, user, idemKey string) string {
	return "idemp:vms:" + strings.ToLower(method) + ":" + route + ":" + user + ":" + idemKey
}

// lock claims key for the current request; false means another request
// already holds or finished it.
func (s replayStore) lock(ctx context.Context, key, hash string) (bool, error) {
	payload, _ := json.Marshal(replayEntry{Pending: true, BodyHash: hash, SavedAt: time.Now().UTC()})
	return s.rdb.SetNX(ctx, key, payload, s.lockTTL).Result()
}

// load returns the entry under key; found is false once it expired.
func (s replayStore) load(ctx context.Context, key string) (e replayEntry, found bool, err error) {
	v, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return e, false, nil
	}
	if err != nil {
		return e, false, err
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return e, false, err
	}
	return e, true, nil
}

func (s replayStore) save(ctx context.Context, key string, code int, body []byte, hash string) error {
	payload, _ := json.Marshal(replayEntry{Code: code, Body: body, BodyHash: hash, SavedAt: time.Now().UTC()})
	return s.rdb.Set(ctx, key, payload, s.ttl).Err()
}

func (s replayStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
