package blob_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letterkit/letterkit/pkg/blob"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("put then get", func(t *testing.T) {
		t.Parallel()

		s := blob.NewMemoryStore()
		require.NoError(t, s.Put(ctx, "tenants/a/templates/1.hbs", "<p>hi</p>"))

		content, err := s.Get(ctx, "tenants/a/templates/1.hbs")
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", content)
	})

	t.Run("put overwrites", func(t *testing.T) {
		t.Parallel()

		s := blob.NewMemoryStore()
		require.NoError(t, s.Put(ctx, "k", "one"))
		require.NoError(t, s.Put(ctx, "k", "two"))

		content, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "two", content)
	})

	t.Run("get missing key", func(t *testing.T) {
		t.Parallel()

		s := blob.NewMemoryStore()
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, blob.ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		t.Parallel()

		s := blob.NewMemoryStore()
		require.NoError(t, s.Put(ctx, "k", "v"))
		require.NoError(t, s.Delete(ctx, "k"))
		require.NoError(t, s.Delete(ctx, "k"))

		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, blob.ErrNotFound)
	})

	t.Run("invalid keys", func(t *testing.T) {
		t.Parallel()

		s := blob.NewMemoryStore()
		for _, key := range []string{"", "/abs", "a/../b"} {
			assert.ErrorIs(t, s.Put(ctx, key, "v"), blob.ErrInvalidKey, key)
		}
	})
}
