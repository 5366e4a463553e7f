package render

import (
	"image"
	"image/color"

	"github.com/valerio/go-xpride/xpride/flags"
	"github.com/valerio/go-xpride/xpride/geometry"
	xdraw "golang.org/x/image/draw"
)

// Background fills rows that no stripe covers. White matches the window
// background the flag was originally drawn over.
var Background = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// RGBA converts a stripe colour to an opaque RGBA value, reading the low
// 24 bits as 0xRRGGBB.
func RGBA(c flags.Color) color.RGBA {
	return color.RGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: 0xFF,
	}
}

// Paint clears dst to Background and fills every stripe of rf. Stripe
// coordinates are relative to dst.Bounds().Min.
func Paint(dst xdraw.Image, rf geometry.ResolvedFlag) {
	bounds := dst.Bounds()
	xdraw.Draw(dst, bounds, image.NewUniform(Background), image.Point{}, xdraw.Src)

	for _, stripe := range rf.Stripes {
		area := stripe.Bounds().Add(bounds.Min).Intersect(bounds)
		if area.Empty() {
			continue
		}
		xdraw.Draw(dst, area, image.NewUniform(RGBA(stripe.Color)), image.Point{}, xdraw.Src)
	}
}

// NewImage rasterises rf into an image of the size it was resolved for.
func NewImage(rf geometry.ResolvedFlag) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(rf.Width), int(rf.Height)))
	Paint(img, rf)
	return img
}
