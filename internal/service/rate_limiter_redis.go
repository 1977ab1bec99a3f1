package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRateLimited = errors.New("rate limited")

// Scopes de rate limit: cada endpoint costoso lleva su propio contador.
const (
	ScopeScore   = "score"
	ScopePathway = "pathway"
)

// RateDecision es el resultado de contar un pedido.
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter cuenta pedidos por scope y sujeto (cliente JWT, usuario o IP).
type RateLimiter interface {
	Allow(ctx context.Context, scope, subject string) RateDecision
}

// Devuelve {contador, ttl restante en ms} en una sola ida a Redis.
const redisAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`

const rateKeyPrefix = "careerpath:rl:"

type redisRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisRateLimiter(client *redis.Client, window time.Duration, max int) RateLimiter {
	if client == nil {
		return nil
	}
	return newRedisRateLimiter(client, window, max)
}

func newRedisRateLimiter(client redisEvaler, window time.Duration, max int) *redisRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisRateLimiter{client: client, window: window, max: max}
}

// RateLimitKey arma la clave Redis de un scope y sujeto.
func RateLimitKey(scope, subject string) string {
	return rateKeyPrefix + scope + ":" + strings.ToLower(strings.TrimSpace(subject))
}

// Allow falla abierto si Redis no responde; un sujeto vacio se rechaza.
func (l *redisRateLimiter) Allow(ctx context.Context, scope, subject string) RateDecision {
	if l == nil || l.client == nil {
		return RateDecision{Allowed: true}
	}
	if strings.TrimSpace(subject) == "" {
		return RateDecision{RetryAfter: l.window}
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	res, err := l.client.Eval(ctx, redisAllowScript, []string{RateLimitKey(scope, subject)}, l.window.Milliseconds()).Int64Slice()
	if err != nil || len(res) != 2 {
		return RateDecision{Allowed: true, Remaining: l.max}
	}
	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	if ttl < 0 {
		ttl = l.window
	}
	if count > l.max {
		return RateDecision{RetryAfter: ttl}
	}
	return RateDecision{Allowed: true, Remaining: l.max - count}
}
