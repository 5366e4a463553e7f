package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/valerio/go-xpride/xpride/backend"
	"github.com/valerio/go-xpride/xpride/flags"
	"github.com/valerio/go-xpride/xpride/geometry"
	"gopkg.in/yaml.v3"
)

// Backend names accepted by Config.Backend
const (
	BackendTerminal    = "terminal"
	BackendSDL2        = "sdl2"
	BackendFramebuffer = "framebuffer"
	BackendHeadless    = "headless"
)

// Window defaults, matching the window the flag was first drawn in
const (
	DefaultTitle        = "xpride"
	DefaultWindowWidth  = 750
	DefaultWindowHeight = 450
)

// DefaultFlag is loaded when no flag is named on the command line.
const DefaultFlag = "res/pride.flag"

// Config holds every setting of the program. Zero values are not valid;
// start from Default.
type Config struct {
	Backend     string      `yaml:"backend"`
	Debug       bool        `yaml:"debug"`
	Window      Window      `yaml:"window"`
	Flags       Flags       `yaml:"flags"`
	Headless    Headless    `yaml:"headless"`
	Framebuffer Framebuffer `yaml:"framebuffer"`
}

// Window configures the initial surface of windowed backends
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Flags configures flag lookup and parsing
type Flags struct {
	Dir        string `yaml:"dir"`
	Suffix     string `yaml:"suffix"`
	MaxStripes int    `yaml:"max_stripes"`
}

// Headless configures the headless renderer
type Headless struct {
	Sizes       []string `yaml:"sizes"` // WIDTHxHEIGHT, one redraw each
	Snapshots   bool     `yaml:"snapshots"`
	SnapshotDir string   `yaml:"snapshot_dir"`
}

// Framebuffer configures the Linux framebuffer backend
type Framebuffer struct {
	Device string `yaml:"device"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Backend: BackendTerminal,
		Window: Window{
			Title:  DefaultTitle,
			Width:  DefaultWindowWidth,
			Height: DefaultWindowHeight,
		},
		Flags: Flags{
			Dir:        flags.DefaultDir,
			Suffix:     flags.DefaultSuffix,
			MaxStripes: flags.DefaultMaxStripes,
		},
		Framebuffer: Framebuffer{
			Device: "/dev/fb0",
		},
	}
}

// LoadFile reads a YAML file over the defaults. Keys missing from the
// file keep their default value.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	var errs []error

	switch c.Backend {
	case BackendTerminal, BackendSDL2, BackendFramebuffer, BackendHeadless:
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}

	if c.Window.Width < 1 || c.Window.Width > math.MaxUint16 {
		errs = append(errs, fmt.Errorf("window width %d out of range", c.Window.Width))
	}
	if c.Window.Height < 1 || c.Window.Height > math.MaxUint16 {
		errs = append(errs, fmt.Errorf("window height %d out of range", c.Window.Height))
	}

	if c.Flags.MaxStripes < 1 || c.Flags.MaxStripes > flags.MaxStripesLimit {
		errs = append(errs, fmt.Errorf("max_stripes must be between 1 and %d, got %d", flags.MaxStripesLimit, c.Flags.MaxStripes))
	}

	if _, err := c.HeadlessSizes(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Locator returns the flag locator for these settings
func (c Config) Locator() flags.Locator {
	return flags.Locator{Dir: c.Flags.Dir, Suffix: c.Flags.Suffix}
}

// LoaderConfig returns the flag parser settings
func (c Config) LoaderConfig() flags.LoaderConfig {
	return flags.LoaderConfig{MaxStripes: c.Flags.MaxStripes}
}

// BackendConfig returns the settings shared by all backends
func (c Config) BackendConfig() backend.Config {
	return backend.Config{
		Title:  c.Window.Title,
		Width:  c.Window.Width,
		Height: c.Window.Height,
	}
}

// HeadlessSizes parses the headless size list
func (c Config) HeadlessSizes() ([]geometry.Size, error) {
	sizes := make([]geometry.Size, 0, len(c.Headless.Sizes))
	for _, s := range c.Headless.Sizes {
		size, err := geometry.ParseSize(s)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}
