package xpride_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-xpride/xpride"
	"github.com/valerio/go-xpride/xpride/flags"
	"github.com/valerio/go-xpride/xpride/geometry"
)

func TestLoadFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trans.flag"), []byte("5bcefa\nf5a9b8\nffffff\nf5a9b8\n5bcefa\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.flag"), []byte("ffffff"), 0644))

	locator := flags.Locator{Dir: dir, Suffix: ".flag"}

	t.Run("by name", func(t *testing.T) {
		flag, err := xpride.LoadFlag("trans", locator, flags.LoaderConfig{})
		require.NoError(t, err)
		assert.Equal(t, 5, flag.Len())
	})

	t.Run("stripe limit from config", func(t *testing.T) {
		flag, err := xpride.LoadFlag("trans", locator, flags.LoaderConfig{MaxStripes: 2})
		require.NoError(t, err)
		assert.Equal(t, []flags.Color{0x5bcefa, 0xf5a9b8}, flag.Colors())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := xpride.LoadFlag("nonexistent", locator, flags.LoaderConfig{})
		assert.ErrorIs(t, err, flags.ErrNotFound)
	})

	t.Run("no complete stripe", func(t *testing.T) {
		_, err := xpride.LoadFlag("empty", locator, flags.LoaderConfig{})
		assert.ErrorIs(t, err, geometry.ErrNoStripes)
	})
}

func TestLoadFlag_BundledFlags(t *testing.T) {
	for _, name := range []string{"pride", "trans"} {
		t.Run(name, func(t *testing.T) {
			flag, err := xpride.LoadFlag(filepath.Join("..", "res", name+".flag"), flags.DefaultLocator(), flags.LoaderConfig{})
			require.NoError(t, err)
			assert.Greater(t, flag.Len(), 0)
		})
	}
}
