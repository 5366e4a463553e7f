package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-xpride/xpride/flags"
	"github.com/valerio/go-xpride/xpride/geometry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xpride.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, BackendTerminal, cfg.Backend)
	assert.Equal(t, flags.Locator{Dir: "/usr/share/flags/", Suffix: ".flag"}, cfg.Locator())
	assert.Equal(t, 8, cfg.LoaderConfig().MaxStripes)

	bc := cfg.BackendConfig()
	assert.Equal(t, "xpride", bc.Title)
	assert.Equal(t, 750, bc.Width)
	assert.Equal(t, 450, bc.Height)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
backend: headless
window:
  title: pride
flags:
  dir: /opt/flags
  max_stripes: 12
headless:
  sizes: [750x450, 80x24]
  snapshot_dir: /tmp/out
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, BackendHeadless, cfg.Backend)
	assert.Equal(t, "pride", cfg.Window.Title)
	assert.Equal(t, DefaultWindowWidth, cfg.Window.Width, "unset keys keep defaults")
	assert.Equal(t, "/opt/flags", cfg.Flags.Dir)
	assert.Equal(t, ".flag", cfg.Flags.Suffix)
	assert.Equal(t, 12, cfg.Flags.MaxStripes)
	assert.Equal(t, "/tmp/out", cfg.Headless.SnapshotDir)

	sizes, err := cfg.HeadlessSizes()
	require.NoError(t, err)
	assert.Equal(t, []geometry.Size{{Width: 750, Height: 450}, {Width: 80, Height: 24}}, sizes)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{name: "malformed yaml", content: "backend: [", message: "failed to parse config"},
		{name: "unknown backend", content: "backend: x11", message: `unknown backend "x11"`},
		{name: "zero stripes", content: "flags:\n  max_stripes: 0", message: "max_stripes must be between 1 and 65535, got 0"},
		{name: "too many stripes", content: "flags:\n  max_stripes: 70000", message: "max_stripes must be between 1 and 65535, got 70000"},
		{name: "bad size", content: "headless:\n  sizes: [big]", message: `invalid size "big"`},
		{name: "oversized window", content: "window:\n  width: 70000", message: "window width 70000 out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
