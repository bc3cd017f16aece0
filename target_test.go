package leadscout_test

import (
	"testing"
	"time"

	"github.com/passivleads/leadscout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarget_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid target passes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, leadscout.NewTarget("https://example.com").Validate())
	})

	t.Run("relative URL is rejected", func(t *testing.T) {
		t.Parallel()
		target := leadscout.NewTarget("/just/a/path")
		err := target.Validate()
		require.Error(t, err)
		assert.Equal(t, leadscout.EINVALID, leadscout.ErrorCode(err))
	})

	t.Run("non-web scheme is rejected", func(t *testing.T) {
		t.Parallel()
		target := leadscout.NewTarget("ftp://example.com")
		err := target.Validate()
		require.Error(t, err)
		assert.Equal(t, leadscout.EINVALID, leadscout.ErrorCode(err))
	})

	t.Run("max pages bounds are enforced", func(t *testing.T) {
		t.Parallel()

		target := leadscout.NewTarget("https://example.com")
		target.MaxPages = 0
		assert.Error(t, target.Validate())

		target.MaxPages = leadscout.MaxPagesLimit + 1
		assert.Error(t, target.Validate())

		target.MaxPages = leadscout.MaxPagesLimit
		assert.NoError(t, target.Validate())

		target.MaxPages = 1
		assert.NoError(t, target.Validate())
	})

	t.Run("timeout and workers must be positive", func(t *testing.T) {
		t.Parallel()

		target := leadscout.NewTarget("https://example.com")
		target.Timeout = 0
		assert.Error(t, target.Validate())

		target = leadscout.NewTarget("https://example.com")
		target.MaxWorkers = 0
		assert.Error(t, target.Validate())

		target.MaxWorkers = 1
		target.Timeout = time.Second
		assert.NoError(t, target.Validate())
	})
}

func TestTarget_Origin(t *testing.T) {
	t.Parallel()

	target := leadscout.NewTarget("https://example.com/some/deep/page?q=1")
	assert.Equal(t, "https://example.com", target.Origin())
}
