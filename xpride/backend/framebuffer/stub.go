//go:build !linux

package framebuffer

import (
	"errors"

	"github.com/valerio/go-xpride/xpride/backend"
	"github.com/valerio/go-xpride/xpride/event"
	"github.com/valerio/go-xpride/xpride/geometry"
)

// DefaultDevice is the primary Linux framebuffer.
const DefaultDevice = "/dev/fb0"

var errUnavailable = errors.New("framebuffer backend is only available on Linux")

// Backend stub for platforms without a Linux framebuffer
type Backend struct{}

// New creates a stub framebuffer backend that returns an error
func New(devicePath string) *Backend {
	return &Backend{}
}

func (f *Backend) Init(config backend.Config) error {
	return errUnavailable
}

func (f *Backend) Update() ([]event.Event, error) {
	return nil, errUnavailable
}

func (f *Backend) Draw(flag geometry.ResolvedFlag) error {
	return errUnavailable
}

func (f *Backend) Cleanup() error {
	return nil
}
