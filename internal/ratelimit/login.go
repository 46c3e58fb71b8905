package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/tradedesk/internal/config"
	"go.uber.org/zap"
)

const keyLogin = "auth:login:%s:%s"

var ErrRateLimited = errors.New("rate_limited")

// LimitedError carries the wait before the next attempt is accepted.
type LimitedError struct {
	RetryAfter time.Duration
}

func (e *LimitedError) Error() string {
	return fmt.Sprintf("too many login attempts, retry after %s", e.RetryAfter.Round(time.Second))
}

func (e *LimitedError) Unwrap() error { return ErrRateLimited }

// LoginLimiter throttles login attempts per client IP and email.
type LoginLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
	log    *zap.Logger
}

func NewLoginLimiter(client *redis.Client, cfg config.Config, log *zap.Logger) *LoginLimiter {
	perMinute := cfg.RateLimit.LoginPerMinute
	burst := cfg.RateLimit.LoginBurst
	if burst <= 0 {
		burst = perMinute
	}
	return &LoginLimiter{
		bucket: NewTokenBucket(client),
		rate:   float64(perMinute) / 60,
		burst:  burst,
		log:    log.Named("ratelimit.login"),
	}
}

func (l *LoginLimiter) Enabled() bool {
	return l != nil && l.bucket != nil && l.rate > 0 && l.burst > 0
}

// Allow returns a *LimitedError when the bucket is empty. Redis failures
// are logged and the attempt is let through.
func (l *LoginLimiter) Allow(ctx context.Context, ip, email string) error {
	if !l.Enabled() {
		return nil
	}
	res, err := l.bucket.Allow(ctx, LoginKey(ip, email), l.rate, l.burst)
	if err != nil {
		l.log.Warn("login rate limit check failed", zap.Error(err))
		return nil
	}
	if !res.Allowed {
		return &LimitedError{RetryAfter: res.RetryAfter}
	}
	return nil
}

func LoginKey(ip, email string) string {
	return fmt.Sprintf(keyLogin, strings.TrimSpace(ip), strings.ToLower(strings.TrimSpace(email)))
}
