package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"cakeries-backend/internal/auth"
)

func NewRedis(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

// Roles is a read-through cache in front of the user store. Redis errors
// fall back to the store; only found roles are cached.
type Roles struct {
	Source auth.RoleLookup
	Redis  *redis.Client
	TTL    time.Duration
	Log    zerolog.Logger
}

func roleKey(email string) string { return "user:" + email + ":role" }

func (r *Roles) Role(ctx context.Context, email string) (string, error) {
	role, err := r.Redis.Get(ctx, roleKey(email)).Result()
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, redis.Nil) {
		r.Log.Debug().Err(err).Msg("role cache unavailable")
	}

	role, err = r.Source.Role(ctx, email)
	if err != nil {
		return "", err
	}

	if err := r.Redis.Set(ctx, roleKey(email), role, r.TTL).Err(); err != nil {
		r.Log.Debug().Err(err).Str("email", email).Msg("role cache write failed")
	}
	return role, nil
}

// Invalidate must be called after a role change.
func (r *Roles) Invalidate(ctx context.Context, email string) {
	if err := r.Redis.Del(ctx, roleKey(email)).Err(); err != nil {
		r.Log.Warn().Err(err).Str("email", email).Msg("role cache invalidation failed")
	}
}
