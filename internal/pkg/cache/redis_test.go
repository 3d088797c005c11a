package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisCache_EmptyAddrDisablesCache(t *testing.T) {
	c, err := NewRedisCache(context.Background(), Config{})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	_, err := NewRedisCache(context.Background(), Config{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestRedisCache_ErrorsAreReported(t *testing.T) {
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))
	defer c.Close()

	var dest map[string]string
	found, err := c.GetJSON(context.Background(), "profile:1", &dest)
	assert.Error(t, err)
	assert.False(t, found)

	assert.Error(t, c.SetJSON(context.Background(), "profile:1", map[string]string{"a": "b"}, time.Minute))
}

func TestRedisCache_SetRejectsUnencodableValue(t *testing.T) {
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))
	defer c.Close()

	err := c.SetJSON(context.Background(), "k", make(chan int), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode")
}
