package geometry

import (
	"errors"
	"image"
	"math"

	"github.com/valerio/go-xpride/xpride/flags"
)

var (
	// ErrNoStripes is returned when resolving a flag without stripes.
	ErrNoStripes = errors.New("flag has no stripes")
	// ErrEmptySurface is returned when the target width or height is zero.
	ErrEmptySurface = errors.New("surface has zero width or height")
	// ErrTooManyStripes is returned when the stripe count does not fit a surface coordinate.
	ErrTooManyStripes = errors.New("flag has more stripes than surface rows can address")
)

// Rectangle is the on-screen area of one stripe.
type Rectangle struct {
	X, Y          uint16
	Width, Height uint16
	Color         flags.Color
}

// Bounds returns the rectangle as an image.Rectangle.
func (r Rectangle) Bounds() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
}

// ResolvedFlag is a flag laid out for one surface size. It is rebuilt on
// every redraw and is not shared between sizes.
type ResolvedFlag struct {
	Width, Height uint16
	Stripes       []Rectangle
}

// Len returns the number of stripes.
func (rf ResolvedFlag) Len() int {
	return len(rf.Stripes)
}

// Coverage returns how many rows from the top are covered by stripes.
func (rf ResolvedFlag) Coverage() uint16 {
	if len(rf.Stripes) == 0 {
		return 0
	}
	last := rf.Stripes[len(rf.Stripes)-1]
	return last.Y + last.Height
}

// Uncovered returns the rows left at the bottom when the height does not
// divide evenly between the stripes.
func (rf ResolvedFlag) Uncovered() uint16 {
	return rf.Height - rf.Coverage()
}

// Resolve lays out the stripes of f on a width x height surface. Every
// stripe spans the full width and gets height/n rows; the remainder rows at
// the bottom stay uncovered.
func Resolve(f *flags.Flag, width, height uint16) (ResolvedFlag, error) {
	count := f.Len()
	if count == 0 {
		return ResolvedFlag{}, ErrNoStripes
	}
	if count > math.MaxUint16 {
		return ResolvedFlag{}, ErrTooManyStripes
	}
	if width == 0 || height == 0 {
		return ResolvedFlag{}, ErrEmptySurface
	}

	stripeHeight := uint16(int(height) / count)

	stripes := make([]Rectangle, count)
	for i := range stripes {
		stripes[i] = Rectangle{
			X:      0,
			Y:      stripeHeight * uint16(i),
			Width:  width,
			Height: stripeHeight,
			Color:  f.Color(i),
		}
	}

	return ResolvedFlag{Width: width, Height: height, Stripes: stripes}, nil
}
