package quota_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letterkit/letterkit/pkg/quota"
)

func TestDefaultTierLimits(t *testing.T) {
	t.Parallel()

	limits := quota.DefaultTierLimits()
	assert.Equal(t, quota.Limits{Templates: 1, Snippets: 2}, limits[quota.TierFree])
	assert.Equal(t, quota.Limits{Templates: 5, Snippets: 10}, limits[quota.TierCreator])
	assert.Equal(t, quota.Limits{Templates: 100, Snippets: 100}, limits[quota.TierPro])
}

func TestLoadTierLimits(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "tiers.yaml")
		content := `tiers:
  free-tier:
    templates: 2
    snippets: 4
  creator-tier:
    templates: 10
    snippets: 20
  pro-tier:
    templates: 500
    snippets: 500
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		limits, err := quota.LoadTierLimits(path)
		require.NoError(t, err)
		assert.Equal(t, quota.Limits{Templates: 2, Snippets: 4}, limits[quota.TierFree])
		assert.Equal(t, quota.Limits{Templates: 500, Snippets: 500}, limits[quota.TierPro])
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := quota.LoadTierLimits(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "tiers.yaml")
		require.NoError(t, os.WriteFile(path, []byte("tiers: [broken"), 0o644))

		_, err := quota.LoadTierLimits(path)
		assert.ErrorIs(t, err, quota.ErrInvalidTierFile)
	})
}
