package xpride

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-xpride/xpride/flags"
	"github.com/valerio/go-xpride/xpride/geometry"
)

// LoadFlag finds a flag by path or name and parses it. Parse diagnostics
// are logged by the loader and are not fatal; a flag that ends up with no
// stripes is.
func LoadFlag(name string, locator flags.Locator, cfg flags.LoaderConfig) (*flags.Flag, error) {
	file, path, err := locator.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	flag, diagnostics, err := flags.Load(file, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load flag %s: %w", path, err)
	}

	slog.Info("Loaded flag", "path", path, "stripes", flag.Len(), "warnings", len(diagnostics))

	if flag.Len() == 0 {
		return nil, fmt.Errorf("flag %s: %w", path, geometry.ErrNoStripes)
	}
	return flag, nil
}
