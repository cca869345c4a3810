// Package cache keeps rendered dashboard views in Redis.  Entries are
// grouped by route path so that one mutation can drop every query
// variant of a listing at once.
package cache

import (
    "context"
    "crypto/sha1"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/redis/go-redis/v9"
    "github.com/sirupsen/logrus"
)

// scanBatch is the COUNT hint passed to SCAN while invalidating.
const scanBatch = 100

// ViewStore reads and writes cached views.  A key has the shape
// <prefix>:<path>:<generation>:<sha1 of the raw query>.  Each path has a
// generation counter under <prefix>:gen:<path>; invalidating bumps it, so
// a response rendered before the bump is stored under a generation no
// reader asks for any more.
type ViewStore struct {
    rdb    *redis.Client
    prefix string
    ttl    time.Duration
    log    logrus.FieldLogger
}

func NewViewStore(rdb *redis.Client, prefix string, ttl time.Duration, log logrus.FieldLogger) *ViewStore {
    if prefix == "" {
        prefix = "view"
    }
    if ttl <= 0 {
        ttl = 30 * time.Second
    }
    return &ViewStore{rdb: rdb, prefix: prefix, ttl: ttl, log: log}
}

// Key returns the cache key for a request to path with the given raw
// query string, at generation gen.
func (s *ViewStore) Key(path string, gen int64, rawQuery string) string {
    sum := sha1.Sum([]byte(rawQuery))
    return fmt.Sprintf("%s:%s:%d:%x", s.prefix, path, gen, sum[:])
}

func (s *ViewStore) genKey(path string) string {
    return s.prefix + ":gen:" + path
}

// Generation returns the current generation of path; 0 until the path is
// first invalidated.
func (s *ViewStore) Generation(ctx context.Context, path string) (int64, error) {
    gen, err := s.rdb.Get(ctx, s.genKey(path)).Int64()
    if errors.Is(err, redis.Nil) {
        return 0, nil
    }
    return gen, err
}

// Get returns the payload cached for path at generation gen and whether it
// was present.
func (s *ViewStore) Get(ctx context.Context, path string, gen int64, rawQuery string) ([]byte, bool, error) {
    bs, err := s.rdb.Get(ctx, s.Key(path, gen, rawQuery)).Bytes()
    if errors.Is(err, redis.Nil) {
        return nil, false, nil
    }
    if err != nil {
        return nil, false, err
    }
    return bs, true, nil
}

// Set stores payload for the configured TTL.  gen is the generation read
// before the payload was rendered.
func (s *ViewStore) Set(ctx context.Context, path string, gen int64, rawQuery string, payload []byte) error {
    return s.rdb.SetEx(ctx, s.Key(path, gen, rawQuery), payload, s.ttl).Err()
}

// InvalidateView moves path to a new generation and deletes every cached
// variant of it.
func (s *ViewStore) InvalidateView(ctx context.Context, path string) error {
    if err := s.rdb.Incr(ctx, s.genKey(path)).Err(); err != nil {
        return fmt.Errorf("bump generation of %s: %w", path, err)
    }
    pattern := s.prefix + ":" + escapeGlob(path) + ":*"
    var (
        cursor  uint64
        removed int64
    )
    for {
        keys, next, err := s.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
        if err != nil {
            return fmt.Errorf("scan %s: %w", pattern, err)
        }
        if len(keys) > 0 {
            n, err := s.rdb.Del(ctx, keys...).Result()
            if err != nil {
                return fmt.Errorf("del %s: %w", pattern, err)
            }
            removed += n
        }
        cursor = next
        if cursor == 0 {
            break
        }
    }
    s.log.WithFields(logrus.Fields{"view": path, "removed": removed}).Debug("view invalidated")
    return nil
}

// escapeGlob quotes the characters SCAN MATCH treats specially.
func escapeGlob(s string) string {
    var b strings.Builder
    for _, r := range s {
        switch r {
        case '*', '?', '[', ']', '\\':
            b.WriteByte('\\')
        }
        b.WriteRune(r)
    }
    return b.String()
}
