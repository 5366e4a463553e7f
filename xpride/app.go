package xpride

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-xpride/xpride/backend"
	"github.com/valerio/go-xpride/xpride/event"
	"github.com/valerio/go-xpride/xpride/flags"
	"github.com/valerio/go-xpride/xpride/geometry"
)

// App shows one flag on one backend. It runs on a single goroutine: every
// redraw is resolved and drawn before the next event is read.
type App struct {
	flag    *flags.Flag
	backend backend.Backend
	config  backend.Config
	redraws int
}

// New creates an app for an already loaded flag. A flag without stripes
// cannot be laid out and is rejected here rather than on the first redraw.
func New(flag *flags.Flag, b backend.Backend, config backend.Config) (*App, error) {
	if flag.Len() == 0 {
		return nil, geometry.ErrNoStripes
	}
	if b == nil {
		return nil, errors.New("no backend configured")
	}

	return &App{
		flag:    flag,
		backend: b,
		config:  config,
	}, nil
}

// Run initializes the backend and handles its events until it asks to quit.
// The backend is always cleaned up before Run returns.
func (a *App) Run() (err error) {
	if err := a.backend.Init(a.config); err != nil {
		return fmt.Errorf("failed to initialize backend: %w", err)
	}
	defer func() {
		if cerr := a.backend.Cleanup(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to clean up backend: %w", cerr))
		}
	}()

	slog.Info("Showing flag", "stripes", a.flag.Len(), "colors", a.flag.String())

	for {
		events, err := a.backend.Update()
		if err != nil {
			return fmt.Errorf("backend update failed: %w", err)
		}

		for _, ev := range events {
			switch ev.Type {
			case event.Redraw:
				if err := a.Redraw(ev.Size.Width, ev.Size.Height); err != nil {
					return err
				}
			case event.Quit:
				slog.Info("Quit requested", "redraws", a.redraws)
				return nil
			}
		}
	}
}

// Redraw lays the flag out for width x height and hands it to the backend.
// Zero-sized surfaces (e.g. a minimized window) are skipped.
func (a *App) Redraw(width, height uint16) error {
	resolved, err := geometry.Resolve(a.flag, width, height)
	if errors.Is(err, geometry.ErrEmptySurface) {
		slog.Debug("Skipping redraw of empty surface", "width", width, "height", height)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve flag: %w", err)
	}

	if err := a.backend.Draw(resolved); err != nil {
		return fmt.Errorf("failed to draw flag: %w", err)
	}

	a.redraws++
	slog.Debug("Redrew flag", "width", width, "height", height, "uncovered_rows", resolved.Uncovered())
	return nil
}

// Redraws returns the number of completed draws
func (a *App) Redraws() int {
	return a.redraws
}
