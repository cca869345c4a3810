package config

import (
    "os"
    "strconv"
    "time"
)

// RateLimitConfig controls the token bucket placed in front of the login
// endpoint.  Keys are built from the client IP and the route.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int           // failed-login budget per client
    RefillTokens   int           // tokens returned per interval
    RefillInterval time.Duration
    TTL            time.Duration // idle bucket expiry in Redis
    Prefix         string
    Debug          bool          // expose the bucket key as X-RateLimit-Key
}

func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled:        envBool("RATE_LIMIT_ENABLED", true),
        Capacity:       envInt("RATE_LIMIT_CAPACITY", 10),
        RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", 6*time.Second),
        TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
        Prefix:         envStr("RATE_LIMIT_PREFIX", "rl:login"),
        Debug:          envBool("RATE_LIMIT_DEBUG", false),
    }
    cfg.normalize()
    return cfg
}

// normalize keeps the bucket usable whatever the environment says.  A bucket
// must outlive at least five refills or it would reset before draining.
func (c *RateLimitConfig) normalize() {
    c.Capacity = max(c.Capacity, 1)
    c.RefillTokens = max(c.RefillTokens, 1)
    if c.RefillInterval <= 0 {
        c.RefillInterval = time.Second
    }
    c.TTL = max(c.TTL, 5*c.RefillInterval)
}

func envStr(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

// envBool accepts anything strconv.ParseBool does plus yes/no and on/off.
func envBool(k string, d bool) bool {
    switch v := os.Getenv(k); v {
    case "":
        return d
    case "yes", "YES", "on", "ON":
        return true
    case "no", "NO", "off", "OFF":
        return false
    default:
        if b, err := strconv.ParseBool(v); err == nil {
            return b
        }
        return d
    }
}

func envInt(k string, d int) int {
    if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
        return n
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    if dur, err := time.ParseDuration(os.Getenv(k)); err == nil {
        return dur
    }
    return d
}
