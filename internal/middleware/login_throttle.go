package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// LoginThrottle counts failed logins per email and client IP in a redis
// fixed window. A nil client disables it.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

func CreateLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if client == nil {
		log.Warn().Str("component", "LoginThrottle").Msg("redis not configured, login throttling disabled")
	}

	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

func throttleKey(email string, ip string) string {
	return fmt.Sprintf("login_attempts:%s:%s", strings.ToLower(strings.TrimSpace(email)), ip)
}

// Allowed fails open when redis cannot be reached.
func (t *LoginThrottle) Allowed(ctx context.Context, email string, ip string) bool {
	if t == nil || t.client == nil || t.maxAttempts <= 0 {
		return true
	}

	attempts, err := t.client.Get(ctx, throttleKey(email, ip)).Int64()
	if err == redis.Nil {
		return true
	}
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "LoginThrottle").Msg("")
		return true
	}

	return attempts < t.maxAttempts
}

func (t *LoginThrottle) RecordFailure(ctx context.Context, email string, ip string) {
	if t == nil || t.client == nil {
		return
	}

	key := throttleKey(email, ip)
	attempts, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "LoginThrottle").Msg("")
		return
	}

	if attempts == 1 {
		if err = t.client.Expire(ctx, key, t.window).Err(); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "LoginThrottle").Msg("")
		}
	}
}

func (t *LoginThrottle) Reset(ctx context.Context, email string, ip string) {
	if t == nil || t.client == nil {
		return
	}

	if err := t.client.Del(ctx, throttleKey(email, ip)).Err(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("component", "LoginThrottle").Msg("")
	}
}
