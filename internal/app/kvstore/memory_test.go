package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "cart_guest", `{"items":[]}`))
	v, ok, err := m.Get(ctx, "cart_guest")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"items":[]}`, v)

	require.NoError(t, m.Set(ctx, "cart_guest", "updated"))
	v, _, _ = m.Get(ctx, "cart_guest")
	assert.Equal(t, "updated", v)

	require.NoError(t, m.Delete(ctx, "cart_guest"))
	_, ok, err = m.Get(ctx, "cart_guest")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is a no-op.
	require.NoError(t, m.Delete(ctx, "cart_guest"))
}
