package headless

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-xpride/xpride/backend"
	"github.com/valerio/go-xpride/xpride/event"
	"github.com/valerio/go-xpride/xpride/geometry"
	"github.com/valerio/go-xpride/xpride/render"
)

// Backend implements the Backend interface for automated testing and batch rendering.
// It replays a fixed list of surface sizes as redraws and quits afterwards.
type Backend struct {
	config         backend.Config
	sizes          []geometry.Size
	next           int
	drawCount      int
	lastImage      *image.RGBA
	snapshotConfig SnapshotConfig
}

// SnapshotConfig holds configuration for PNG snapshots of every draw
type SnapshotConfig struct {
	Enabled   bool
	Directory string // Directory to save snapshots
	FlagName  string // Flag name for snapshot filenames
}

// New creates a headless backend that redraws once per size. With no sizes,
// the initial size from the backend config is used.
func New(sizes []geometry.Size, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		sizes:          sizes,
		snapshotConfig: snapshotConfig,
	}
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config
	h.next = 0
	h.drawCount = 0

	if len(h.sizes) == 0 {
		h.sizes = []geometry.Size{geometry.ClampSize(config.Width, config.Height)}
	}

	slog.Info("Running headless mode",
		"sizes", len(h.sizes),
		"snapshots", h.snapshotConfig.Enabled,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

// Update returns the next redraw, or a quit event once every size has been drawn
func (h *Backend) Update() ([]event.Event, error) {
	if h.next >= len(h.sizes) {
		slog.Info("Headless execution completed", "draws", h.drawCount)
		return []event.Event{event.NewQuit()}, nil
	}

	size := h.sizes[h.next]
	h.next++
	return []event.Event{{Type: event.Redraw, Size: size}}, nil
}

// Draw rasterises the flag and saves a snapshot if enabled
func (h *Backend) Draw(flag geometry.ResolvedFlag) error {
	h.drawCount++
	h.lastImage = render.NewImage(flag)

	slog.Debug("Rendered flag", "draw", h.drawCount, "size", fmt.Sprintf("%dx%d", flag.Width, flag.Height), "uncovered_rows", flag.Uncovered())

	if h.snapshotConfig.Enabled {
		h.saveSnapshot(flag)
	}
	return nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// DrawCount returns how many flags have been drawn since Init
func (h *Backend) DrawCount() int {
	return h.drawCount
}

// LastImage returns the most recently rendered image, nil before the first draw
func (h *Backend) LastImage() *image.RGBA {
	return h.lastImage
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(enabled bool, directory, flagPath string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled: enabled || directory != "",
	}

	if !config.Enabled {
		return config, nil
	}

	// Set up snapshot directory
	if directory == "" {
		tempDir, err := os.MkdirTemp("", "xpride-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	// Extract flag name for snapshot filenames
	config.FlagName = filepath.Base(flagPath)
	config.FlagName = strings.TrimSuffix(config.FlagName, filepath.Ext(config.FlagName))

	return config, nil
}

// saveSnapshot saves a PNG snapshot for the current draw
func (h *Backend) saveSnapshot(flag geometry.ResolvedFlag) {
	baseName := fmt.Sprintf("%s_%d_%dx%d", h.snapshotConfig.FlagName, h.drawCount, flag.Width, flag.Height)

	if _, err := render.SavePNG(h.lastImage, baseName, h.snapshotConfig.Directory); err != nil {
		slog.Error("Failed to save PNG snapshot", "draw", h.drawCount, "error", err)
	}
}
