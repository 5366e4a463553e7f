package headless_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-xpride/xpride/backend"
	"github.com/valerio/go-xpride/xpride/backend/headless"
	"github.com/valerio/go-xpride/xpride/event"
	"github.com/valerio/go-xpride/xpride/flags"
	"github.com/valerio/go-xpride/xpride/geometry"
	"github.com/valerio/go-xpride/xpride/render"
)

func TestHeadlessBackend(t *testing.T) {
	flag := flags.New(0xff0000, 0x0000ff)

	t.Run("replays sizes then quits", func(t *testing.T) {
		sizes := []geometry.Size{{Width: 10, Height: 4}, {Width: 20, Height: 8}}
		h := headless.New(sizes, headless.SnapshotConfig{})

		err := h.Init(backend.Config{Title: "Test"})
		assert.NoError(t, err)

		for _, size := range sizes {
			events, err := h.Update()
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, event.Redraw, events[0].Type)
			assert.Equal(t, size, events[0].Size)

			resolved, err := geometry.Resolve(flag, size.Width, size.Height)
			require.NoError(t, err)
			require.NoError(t, h.Draw(resolved))
		}

		events, err := h.Update()
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event.Quit, events[0].Type)

		assert.Equal(t, 2, h.DrawCount())
		img := h.LastImage()
		require.NotNil(t, img)
		assert.Equal(t, 20, img.Bounds().Dx())
		assert.Equal(t, render.RGBA(0xff0000), img.RGBAAt(0, 0))
		assert.Equal(t, render.RGBA(0x0000ff), img.RGBAAt(19, 7))

		assert.NoError(t, h.Cleanup())
	})

	t.Run("defaults to configured size", func(t *testing.T) {
		h := headless.New(nil, headless.SnapshotConfig{})
		require.NoError(t, h.Init(backend.Config{Title: "Test", Width: 750, Height: 450}))

		events, err := h.Update()
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, geometry.Size{Width: 750, Height: 450}, events[0].Size)
	})
}

func TestHeadlessSnapshots(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snapshots")
	config, err := headless.CreateSnapshotConfig(false, dir, "/usr/share/flags/pride.flag")
	require.NoError(t, err)
	assert.True(t, config.Enabled)
	assert.Equal(t, "pride", config.FlagName)

	h := headless.New([]geometry.Size{{Width: 6, Height: 6}}, config)
	require.NoError(t, h.Init(backend.Config{}))

	resolved, err := geometry.Resolve(flags.New(0xe40303, 0xff8c00, 0xffed00), 6, 6)
	require.NoError(t, err)
	require.NoError(t, h.Draw(resolved))

	_, err = os.Stat(filepath.Join(dir, "pride_1_6x6.png"))
	assert.NoError(t, err)
}

func TestCreateSnapshotConfig_Disabled(t *testing.T) {
	config, err := headless.CreateSnapshotConfig(false, "", "pride")
	require.NoError(t, err)
	assert.False(t, config.Enabled)
	assert.Empty(t, config.Directory)
}

func TestHeadlessImplementsBackend(t *testing.T) {
	// Compile-time check that headless.Backend implements backend.Backend
	var _ backend.Backend = (*headless.Backend)(nil)
}
