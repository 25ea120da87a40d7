package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("connects and pings", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		client, err := NewClient(&Config{Address: mr.Addr()})
		require.NoError(t, err)
		defer client.Close()

		assert.NoError(t, client.Health())
		assert.NotNil(t, client.Raw())
	})

	t.Run("nil config is rejected", func(t *testing.T) {
		_, err := NewClient(nil)
		assert.Error(t, err)
	})

	t.Run("unreachable server fails", func(t *testing.T) {
		_, err := NewClient(&Config{Address: "localhost:1"})
		assert.Error(t, err)
	})

	t.Run("defaults the pool size", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		defer mr.Close()

		config := &Config{Address: mr.Addr()}
		client, err := NewClient(config)
		require.NoError(t, err)
		defer client.Close()

		assert.Equal(t, 10, config.PoolSize)
	})
}

func TestClientHealthAfterClose(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewClient(&Config{Address: mr.Addr()})
	require.NoError(t, err)

	require.NoError(t, client.Close())
	assert.Error(t, client.Health())
}
