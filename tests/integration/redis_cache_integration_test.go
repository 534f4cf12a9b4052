//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lynxshop/backend/internal/adapters/cache"
)

func TestRedisCacheAdapterIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client := maybeTestRedisClient(t)
	if client == nil {
		t.Skip("redis not available")
	}
	defer client.Close()

	adapter := cache.NewRedisAdapter(client)
	ctx := context.Background()

	key := "query_interp:test-integration"
	require.NoError(t, adapter.Set(ctx, key, []byte(`{"normalized_query":"fruta"}`), 60))

	exists, err := adapter.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	value, err := adapter.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"normalized_query":"fruta"}`, string(value))

	require.NoError(t, adapter.Delete(ctx, key))

	exists, err = adapter.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}
