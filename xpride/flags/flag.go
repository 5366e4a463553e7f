package flags

import (
	"fmt"
	"math"
	"strings"
)

// DefaultMaxStripes is the number of stripes honoured when no limit is configured.
const DefaultMaxStripes = 8

// MaxStripesLimit is the largest stripe count a surface coordinate can address.
const MaxStripesLimit = math.MaxUint16

// Color is a packed 32-bit colour value. Backends read the low 24 bits as
// 0xRRGGBB; the loader and resolver never look inside it.
type Color uint32

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c))
}

// Flag is an ordered list of stripe colours, top to bottom.
// A Flag is never modified after it has been built.
type Flag struct {
	colors []Color
}

// New builds a flag from the given colours. The slice is copied.
func New(colors ...Color) *Flag {
	f := &Flag{colors: make([]Color, len(colors))}
	copy(f.colors, colors)
	return f
}

// Len returns the number of stripes. A nil flag has no stripes.
func (f *Flag) Len() int {
	if f == nil {
		return 0
	}
	return len(f.colors)
}

// Color returns the colour of stripe i. Does not check bounds.
func (f *Flag) Color(i int) Color {
	return f.colors[i]
}

// Colors returns a copy of the stripe colours.
func (f *Flag) Colors() []Color {
	if f == nil {
		return nil
	}
	out := make([]Color, len(f.colors))
	copy(out, f.colors)
	return out
}

func (f *Flag) String() string {
	if f.Len() == 0 {
		return "[]"
	}
	parts := make([]string, len(f.colors))
	for i, c := range f.colors {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
