package kvstore

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/docscan/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "documents")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, s.Set(ctx, "documents", []byte(`[]`)))

	got, err := s.Get(ctx, "documents")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	// overwrite
	require.NoError(t, s.Set(ctx, "documents", []byte(`[{"id":"1"}]`)))
	got, err = s.Get(ctx, "documents")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), got)

	require.NoError(t, s.Delete(ctx, "documents"))
	_, err = s.Get(ctx, "documents")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// deleting a missing key is a no-op
	assert.NoError(t, s.Delete(ctx, "documents"))
}

func TestMemoryStore_ReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("abc")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'x'

	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
