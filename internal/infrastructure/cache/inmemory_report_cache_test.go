package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryReportCache(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a value", func(t *testing.T) {
		c := NewInMemoryReportCache()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "summary", []byte(`{"total":1}`), time.Minute))

		value, found, err := c.Get(ctx, "summary")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte(`{"total":1}`), value)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		c := NewInMemoryReportCache()
		defer c.Close()

		_, found, err := c.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("expired entries read as a miss", func(t *testing.T) {
		c := NewInMemoryReportCache()
		defer c.Close()

		require.NoError(t, c.Set(ctx, "summary", []byte("x"), 10*time.Millisecond))
		time.Sleep(30 * time.Millisecond)

		_, found, err := c.Get(ctx, "summary")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("stored value is isolated from the caller's slice", func(t *testing.T) {
		c := NewInMemoryReportCache()
		defer c.Close()

		payload := []byte("abc")
		require.NoError(t, c.Set(ctx, "k", payload, time.Minute))
		payload[0] = 'z'

		value, found, err := c.Get(ctx, "k")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, []byte("abc"), value)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		c := NewInMemoryReportCache()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())
	})
}
