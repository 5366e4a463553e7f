package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/valerio/go-xpride/xpride"
	"github.com/valerio/go-xpride/xpride/backend"
	"github.com/valerio/go-xpride/xpride/backend/framebuffer"
	"github.com/valerio/go-xpride/xpride/backend/headless"
	"github.com/valerio/go-xpride/xpride/backend/sdl2"
	"github.com/valerio/go-xpride/xpride/backend/terminal"
	"github.com/valerio/go-xpride/xpride/config"
)

func main() {
	app := cli.NewApp()
	app.Name = "xpride"
	app.Description = "Displays a striped flag that fills its window"
	app.Usage = "xpride [options] [FLAG]"
	app.ArgsUsage = "[FLAG]  path or name of a flag file (default: " + config.DefaultFlag + ")"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "Path to a YAML configuration file",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend: terminal, sdl2, framebuffer or headless",
		},
		cli.StringFlag{
			Name:  "flag-dir",
			Usage: "Directory searched for flags given by name",
		},
		cli.StringFlag{
			Name:  "suffix",
			Usage: "Suffix appended to flag names searched in --flag-dir",
		},
		cli.IntFlag{
			Name:  "max-stripes",
			Usage: "Maximum number of stripes read from a flag file",
		},
		cli.StringFlag{
			Name:  "title",
			Usage: "Window title",
		},
		cli.StringSliceFlag{
			Name:  "size",
			Usage: "Surface size as WIDTHxHEIGHT; repeat for several headless redraws",
		},
		cli.BoolFlag{
			Name:  "snapshots",
			Usage: "Save a PNG for every headless redraw",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save snapshots (default: temp directory)",
		},
		cli.StringFlag{
			Name:  "device",
			Usage: "Framebuffer device for the framebuffer backend",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
	app.Action = runFlag

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running xpride", "error", err)
		os.Exit(1)
	}
}

func runFlag(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	setupLogging(cfg.Debug)

	name := config.DefaultFlag
	if c.NArg() > 0 {
		name = c.Args().Get(0)
	}

	flag, err := xpride.LoadFlag(name, cfg.Locator(), cfg.LoaderConfig())
	if err != nil {
		return err
	}

	b, err := newBackend(cfg, name)
	if err != nil {
		return err
	}

	app, err := xpride.New(flag, b, cfg.BackendConfig())
	if err != nil {
		return err
	}
	return app.Run()
}

// loadConfig applies, in order: built-in defaults, the config file, CLI flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("flag-dir") {
		cfg.Flags.Dir = c.String("flag-dir")
	}
	if c.IsSet("suffix") {
		cfg.Flags.Suffix = c.String("suffix")
	}
	if c.IsSet("max-stripes") {
		cfg.Flags.MaxStripes = c.Int("max-stripes")
	}
	if c.IsSet("title") {
		cfg.Window.Title = c.String("title")
	}
	if c.IsSet("size") {
		cfg.Headless.Sizes = c.StringSlice("size")
	}
	if c.IsSet("snapshots") {
		cfg.Headless.Snapshots = c.Bool("snapshots")
	}
	if c.IsSet("snapshot-dir") {
		cfg.Headless.SnapshotDir = c.String("snapshot-dir")
	}
	if c.IsSet("device") {
		cfg.Framebuffer.Device = c.String("device")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}

	// Windowed backends open at the first requested size
	if sizes, err := cfg.HeadlessSizes(); err == nil && len(sizes) > 0 {
		cfg.Window.Width = int(sizes[0].Width)
		cfg.Window.Height = int(sizes[0].Height)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func newBackend(cfg config.Config, flagName string) (backend.Backend, error) {
	switch cfg.Backend {
	case config.BackendTerminal:
		b := terminal.New()
		if cfg.Debug {
			b.SetLogLevel(slog.LevelDebug)
		}
		return b, nil
	case config.BackendSDL2:
		return sdl2.New(), nil
	case config.BackendFramebuffer:
		return framebuffer.New(cfg.Framebuffer.Device), nil
	case config.BackendHeadless:
		sizes, err := cfg.HeadlessSizes()
		if err != nil {
			return nil, err
		}
		snapshotConfig, err := headless.CreateSnapshotConfig(cfg.Headless.Snapshots, cfg.Headless.SnapshotDir, flagName)
		if err != nil {
			return nil, err
		}
		return headless.New(sizes, snapshotConfig), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
