//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlscan/internal/platform/config"
	"dlscan/internal/platform/redis"
	"dlscan/pkg/testutil/containers"
)

func TestNewConnectsToRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()

	client, err := redis.New(ctx, config.RedisConfig{
		URL:         rc.URL,
		PoolSize:    2,
		DialTimeout: 2 * time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, client.Health(ctx))
	assert.Equal(t, 2, client.Options().PoolSize)

	require.NoError(t, client.Close())
	assert.Error(t, client.Health(ctx))
}
