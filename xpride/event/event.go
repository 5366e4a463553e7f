package event

import (
	"fmt"

	"github.com/valerio/go-xpride/xpride/geometry"
)

// Type represents the kind of notification a backend reports
type Type int

const (
	Redraw Type = iota // Surface must be repainted at the attached size
	Quit               // Backend requests shutdown (window closed, key, signal)
)

func (t Type) String() string {
	switch t {
	case Redraw:
		return "redraw"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// Event is a single notification from a backend. Size is only meaningful
// for Redraw.
type Event struct {
	Type Type
	Size geometry.Size
}

// NewRedraw builds a redraw event from backend dimensions, clamped to the
// range a resolved flag can describe.
func NewRedraw(width, height int) Event {
	return Event{Type: Redraw, Size: geometry.ClampSize(width, height)}
}

// NewQuit builds a quit event.
func NewQuit() Event {
	return Event{Type: Quit}
}

func (e Event) String() string {
	if e.Type == Redraw {
		return fmt.Sprintf("%s %s", e.Type, e.Size)
	}
	return e.Type.String()
}
