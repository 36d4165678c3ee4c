package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNew_EmptyAddrDisablesCache(t *testing.T) {
	c := New("", "", 0)
	assert.Nil(t, c)
	assert.False(t, c.Enabled())

	ctx := context.Background()
	c.Set(ctx, "products:all", []byte("[]"), time.Minute)
	assert.Nil(t, c.Get(ctx, "products:all"))
	c.Delete(ctx, "products:all")
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())

	var dst []string
	c.SetJSON(ctx, "k", []string{"a"}, time.Minute)
	assert.False(t, c.GetJSON(ctx, "k", &dst))
}

func TestClient_UnreachableRedisBehavesAsMiss(t *testing.T) {
	c := NewFromRedis(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}))
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	assert.True(t, c.Enabled())
	assert.Error(t, c.Ping(ctx))

	c.Set(ctx, "products:all", []byte("[]"), time.Minute)
	assert.Nil(t, c.Get(ctx, "products:all"))

	var dst []string
	assert.False(t, c.GetJSON(ctx, "products:all", &dst))
}
