//go:build sdl2

package sdl2

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-xpride/xpride/backend"
	"github.com/valerio/go-xpride/xpride/event"
	"github.com/valerio/go-xpride/xpride/geometry"
	"github.com/valerio/go-xpride/xpride/render"
	"github.com/veandco/go-sdl2/sdl"
)

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed backend, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	config   backend.Config
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{}
}

// Init opens a resizable window of the configured size
func (s *Backend) Init(config backend.Config) error {
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(config.Width),
		int32(config.Height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer

	slog.Info("SDL2 backend initialized", "width", config.Width, "height", config.Height)
	return nil
}

// Update blocks until SDL reports events. Expose and resize notifications
// collapse into one redraw at the current output size.
func (s *Backend) Update() ([]event.Event, error) {
	var (
		events []event.Event
		redraw bool
		quit   bool
	)

	ev := sdl.WaitEvent()
	if ev == nil {
		return nil, waitError(sdl.GetError())
	}
	for ; ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_EXPOSED, sdl.WINDOWEVENT_SIZE_CHANGED, sdl.WINDOWEVENT_SHOWN:
				redraw = true
			}
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && (e.Keysym.Sym == sdl.K_ESCAPE || e.Keysym.Sym == sdl.K_q) {
				quit = true
			}
		}
	}

	if redraw {
		width, height, err := s.renderer.GetOutputSize()
		if err != nil {
			return nil, fmt.Errorf("failed to query output size: %w", err)
		}
		events = append(events, event.NewRedraw(int(width), int(height)))
	}
	if quit {
		events = append(events, event.NewQuit())
	}
	return events, nil
}

// waitError reports a failed SDL_WaitEvent. SDL may not set an error string.
func waitError(err error) error {
	if err == nil {
		return errors.New("failed to wait for SDL events")
	}
	return fmt.Errorf("failed to wait for SDL events: %w", err)
}

// Draw fills one rectangle per stripe
func (s *Backend) Draw(flag geometry.ResolvedFlag) error {
	bg := render.Background
	if err := s.renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A); err != nil {
		return fmt.Errorf("failed to set draw color: %w", err)
	}
	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("failed to clear renderer: %w", err)
	}

	for _, stripe := range flag.Stripes {
		c := render.RGBA(stripe.Color)
		if err := s.renderer.SetDrawColor(c.R, c.G, c.B, c.A); err != nil {
			return fmt.Errorf("failed to set draw color: %w", err)
		}
		rect := sdl.Rect{
			X: int32(stripe.X),
			Y: int32(stripe.Y),
			W: int32(stripe.Width),
			H: int32(stripe.Height),
		}
		if err := s.renderer.FillRect(&rect); err != nil {
			return fmt.Errorf("failed to fill stripe: %w", err)
		}
	}

	s.renderer.Present()
	return nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}
