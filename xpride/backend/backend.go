package backend

import (
	"github.com/valerio/go-xpride/xpride/event"
	"github.com/valerio/go-xpride/xpride/geometry"
)

// Backend is a display target for a flag. Backends are responsible for:
// - Reporting the surface size whenever it needs repainting (expose, resize)
// - Reporting shutdown requests (window close, quit keys, signals)
// - Painting the rectangles of a resolved flag
//
// The core never asks a backend for anything else.
type Backend interface {
	// Init opens the display surface. Required before Update.
	Init(config Config) error

	// Update blocks until at least one event is available and returns all
	// pending events in order.
	Update() ([]event.Event, error)

	// Draw paints a resolved flag. The flag is not retained after Draw returns.
	Draw(flag geometry.ResolvedFlag) error

	// Cleanup releases the display surface.
	Cleanup() error
}

// Config holds settings shared by all backends
type Config struct {
	Title  string
	Width  int // Initial surface width, where the backend chooses its size
	Height int // Initial surface height, where the backend chooses its size
}
