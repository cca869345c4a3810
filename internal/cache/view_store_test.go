package cache

import (
    "context"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"
    logtest "github.com/sirupsen/logrus/hooks/test"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*ViewStore, *miniredis.Miniredis) {
    t.Helper()
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })
    log, _ := logtest.NewNullLogger()
    return NewViewStore(rdb, "view", time.Minute, log), mr
}

func TestViewStore_GetSet(t *testing.T) {
    s, mr := newStore(t)
    ctx := context.Background()

    _, ok, err := s.Get(ctx, "/dashboard/invoices", 0, "page=1")
    require.NoError(t, err)
    assert.False(t, ok)

    require.NoError(t, s.Set(ctx, "/dashboard/invoices", 0, "page=1", []byte("body")))
    bs, ok, err := s.Get(ctx, "/dashboard/invoices", 0, "page=1")
    require.NoError(t, err)
    assert.True(t, ok)
    assert.Equal(t, []byte("body"), bs)

    assert.Equal(t, time.Minute, mr.TTL(s.Key("/dashboard/invoices", 0, "page=1")))

    mr.FastForward(2 * time.Minute)
    _, ok, err = s.Get(ctx, "/dashboard/invoices", 0, "page=1")
    require.NoError(t, err)
    assert.False(t, ok)
}

func TestViewStore_InvalidateView(t *testing.T) {
    s, mr := newStore(t)
    ctx := context.Background()

    for _, q := range []string{"", "page=2", "query=lee&page=1"} {
        require.NoError(t, s.Set(ctx, "/dashboard/invoices", 0, q, []byte(q)))
    }
    require.NoError(t, s.Set(ctx, "/dashboard/invoices/create", 0, "", []byte("form")))
    require.NoError(t, s.Set(ctx, "/dashboard/customers", 0, "", []byte("customers")))

    require.NoError(t, s.InvalidateView(ctx, "/dashboard/invoices"))

    for _, q := range []string{"", "page=2", "query=lee&page=1"} {
        assert.False(t, mr.Exists(s.Key("/dashboard/invoices", 0, q)), q)
    }
    assert.True(t, mr.Exists(s.Key("/dashboard/invoices/create", 0, "")))
    assert.True(t, mr.Exists(s.Key("/dashboard/customers", 0, "")))

    require.NoError(t, s.InvalidateView(ctx, "/nothing/cached"))

    gen, err := s.Generation(ctx, "/dashboard/invoices")
    require.NoError(t, err)
    assert.Equal(t, int64(1), gen)
    gen, err = s.Generation(ctx, "/dashboard/customers")
    require.NoError(t, err)
    assert.Zero(t, gen)
}

func TestViewStore_StaleFillIsNeverRead(t *testing.T) {
    s, _ := newStore(t)
    ctx := context.Background()
    const path = "/dashboard/invoices"

    // A render starts, a mutation invalidates, then the render is stored.
    before, err := s.Generation(ctx, path)
    require.NoError(t, err)
    require.NoError(t, s.InvalidateView(ctx, path))
    require.NoError(t, s.Set(ctx, path, before, "page=1", []byte("stale")))

    now, err := s.Generation(ctx, path)
    require.NoError(t, err)
    assert.Equal(t, before+1, now)
    _, ok, err := s.Get(ctx, path, now, "page=1")
    require.NoError(t, err)
    assert.False(t, ok)

    // The next invalidation also clears the leftover entry.
    require.NoError(t, s.InvalidateView(ctx, path))
    _, ok, err = s.Get(ctx, path, before, "page=1")
    require.NoError(t, err)
    assert.False(t, ok)
}

func TestViewStore_KeyShape(t *testing.T) {
    s, _ := newStore(t)
    k := s.Key("/dashboard/invoices", 3, "page=1")
    assert.Regexp(t, `^view:/dashboard/invoices:3:[0-9a-f]{40}$`, k)
    assert.NotEqual(t, k, s.Key("/dashboard/invoices", 3, "page=2"))
    assert.NotEqual(t, k, s.Key("/dashboard/invoices", 4, "page=1"))
    assert.Equal(t, `a\*b\?\[c\]`, escapeGlob("a*b?[c]"))
}

func TestViewStore_Unreachable(t *testing.T) {
    mr, err := miniredis.Run()
    require.NoError(t, err)
    addr := mr.Addr()
    mr.Close()
    rdb := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1})
    t.Cleanup(func() { _ = rdb.Close() })
    log, _ := logtest.NewNullLogger()
    s := NewViewStore(rdb, "", 0, log)

    _, _, err = s.Get(context.Background(), "/x", 0, "")
    assert.Error(t, err)
    _, err = s.Generation(context.Background(), "/x")
    assert.Error(t, err)
    assert.Error(t, s.InvalidateView(context.Background(), "/x"))
}
