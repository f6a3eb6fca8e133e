package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	roleKeyPrefix = "role:"
	roleTTL       = time.Hour
)

// RoleCache memoizes resolved roles per identity so role-gated requests do
// not hit the users table on every call. An empty address disables caching;
// all methods are safe on a cacheless instance.
type RoleCache struct {
	client *redis.Client
}

// NewRoleCache connects to Redis, or returns a disabled cache when addr is
// empty.
func NewRoleCache(addr, password string) *RoleCache {
	if addr == "" {
		return &RoleCache{}
	}
	return &RoleCache{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})}
}

// Get returns the cached role for an identity. Misses and disabled caches
// report redis.Nil.
func (rc *RoleCache) Get(ctx context.Context, email string) (string, error) {
	if rc == nil || rc.client == nil {
		return "", redis.Nil
	}
	return rc.client.Get(ctx, roleKeyPrefix+email).Result()
}

// Set stores the resolved role for an identity.
func (rc *RoleCache) Set(ctx context.Context, email, role string) error {
	if rc == nil || rc.client == nil {
		return nil
	}
	return rc.client.Set(ctx, roleKeyPrefix+email, role, roleTTL).Err()
}

// Invalidate drops the memoized role after a role change.
func (rc *RoleCache) Invalidate(ctx context.Context, email string) error {
	if rc == nil || rc.client == nil {
		return nil
	}
	return rc.client.Del(ctx, roleKeyPrefix+email).Err()
}
