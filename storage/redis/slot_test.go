package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipefinder/storage"
)

func TestNewClientRequiresAddress(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

// Runs against a real server only when REDIS_TEST_ADDRESS is set.
func TestSlotRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS not set")
	}

	client, err := NewClient(Config{Address: addr})
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	key := fmt.Sprintf("recipefinder:test:%d", time.Now().UnixNano())
	defer client.Del(ctx, key)

	slot := NewSlot(client, key)

	_, err = slot.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, slot.Save(ctx, []byte(`[{"idMeal":"52772"}]`)))
	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"idMeal":"52772"}]`), got)
}
