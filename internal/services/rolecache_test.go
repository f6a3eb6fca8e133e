package services

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRoleCacheDisabled(t *testing.T) {
	ctx := context.Background()
	rc := NewRoleCache("", "")

	_, err := rc.Get(ctx, "user@example.com")
	assert.ErrorIs(t, err, redis.Nil)

	assert.NoError(t, rc.Set(ctx, "user@example.com", "agent"))
	assert.NoError(t, rc.Invalidate(ctx, "user@example.com"))
}

func TestRoleCacheNilReceiver(t *testing.T) {
	ctx := context.Background()
	var rc *RoleCache

	_, err := rc.Get(ctx, "user@example.com")
	assert.ErrorIs(t, err, redis.Nil)

	assert.NoError(t, rc.Set(ctx, "user@example.com", "agent"))
	assert.NoError(t, rc.Invalidate(ctx, "user@example.com"))
}
