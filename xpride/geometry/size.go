package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size is a surface size in backend units (pixels or terminal cells).
type Size struct {
	Width, Height uint16
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ClampSize converts backend dimensions to a Size, clamping each side to the
// uint16 range.
func ClampSize(width, height int) Size {
	return Size{Width: clamp(width), Height: clamp(height)}
}

// ParseSize parses sizes written as "WIDTHxHEIGHT", e.g. "750x450".
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Size{}, fmt.Errorf("invalid size %q: expected WIDTHxHEIGHT", s)
	}

	width, err := parseSide(w)
	if err != nil {
		return Size{}, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	height, err := parseSide(h)
	if err != nil {
		return Size{}, fmt.Errorf("invalid height in %q: %w", s, err)
	}

	return Size{Width: width, Height: height}, nil
}

func parseSide(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, ErrEmptySurface
	}
	return uint16(v), nil
}

func clamp(v int) uint16 {
	switch {
	case v < 0:
		return 0
	case v > math.MaxUint16:
		return math.MaxUint16
	default:
		return uint16(v)
	}
}
