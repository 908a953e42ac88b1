package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/cache"
	"github.com/Astemirdum/library-lending/pkg/circuit_breaker"
)

func TestNop(t *testing.T) {
	c := cache.NewNop()
	ctx := context.Background()

	c.Set(ctx, "books:list:1:10", "{}", time.Minute)
	_, ok := c.Get(ctx, "books:list:1:10")
	require.False(t, ok)
	c.InvalidatePrefix(ctx, "books:")
}

func TestNewRedis_Errors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := cache.NewRedis(ctx, "not a url", circuit_breaker.Config{}, zap.NewNop())
	require.Error(t, err)

	_, err = cache.NewRedis(ctx, "redis://127.0.0.1:1/0", circuit_breaker.Config{}, zap.NewNop())
	require.Error(t, err)
}
