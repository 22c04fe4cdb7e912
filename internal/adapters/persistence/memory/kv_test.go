package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/pollview/internal/core/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	require.ErrorIs(t, err, domain.ErrKeyNotFound)
}

func TestStoreDeleteMissingKey(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Delete(context.Background(), "nope"))
}
