//go:build linux

package framebuffer

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	fb "github.com/gonutz/framebuffer"
	"github.com/valerio/go-xpride/xpride/backend"
	"github.com/valerio/go-xpride/xpride/event"
	"github.com/valerio/go-xpride/xpride/geometry"
	"github.com/valerio/go-xpride/xpride/render"
)

// DefaultDevice is the primary Linux framebuffer.
const DefaultDevice = "/dev/fb0"

// Backend implements the Backend interface on a Linux framebuffer device.
// The surface is the whole device; it is painted once and kept until a
// termination signal arrives.
type Backend struct {
	devicePath string
	dev        *fb.Device
	signals    chan os.Signal
	pending    []event.Event
}

// New creates a framebuffer backend for the given device path
func New(devicePath string) *Backend {
	if devicePath == "" {
		devicePath = DefaultDevice
	}
	return &Backend{devicePath: devicePath}
}

// Init opens the framebuffer device
func (f *Backend) Init(config backend.Config) error {
	dev, err := fb.Open(f.devicePath)
	if err != nil {
		return fmt.Errorf("failed to open framebuffer %s: %w", f.devicePath, err)
	}
	f.dev = dev

	bounds := dev.Bounds()
	f.pending = append(f.pending, event.NewRedraw(bounds.Dx(), bounds.Dy()))

	f.signals = make(chan os.Signal, 1)
	signal.Notify(f.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	slog.Info("Framebuffer backend initialized", "device", f.devicePath, "width", bounds.Dx(), "height", bounds.Dy())
	return nil
}

// Update returns the initial redraw, then blocks until a termination signal
func (f *Backend) Update() ([]event.Event, error) {
	if len(f.pending) > 0 {
		events := f.pending
		f.pending = nil
		return events, nil
	}

	sig := <-f.signals
	slog.Info("Received signal, shutting down", "signal", sig)
	return []event.Event{event.NewQuit()}, nil
}

// Draw paints the flag straight onto the device
func (f *Backend) Draw(flag geometry.ResolvedFlag) error {
	if f.dev == nil {
		return fmt.Errorf("framebuffer backend not initialized")
	}
	render.Paint(f.dev, flag)
	return nil
}

// Cleanup releases the device
func (f *Backend) Cleanup() error {
	if f.signals != nil {
		signal.Stop(f.signals)
		f.signals = nil
	}
	if f.dev != nil {
		slog.Info("Cleaning up framebuffer backend")
		f.dev.Close()
		f.dev = nil
	}
	return nil
}
