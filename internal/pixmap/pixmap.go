// Package pixmap provides the raw pixel buffer used by the thumbnail
// pipeline: a width×height grid of 0xAARRGGBB packed colors, plus the
// resampling operation that scales one buffer into another.
package pixmap

import (
	"fmt"
	"image"
	"math"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Kernel selects the resampling algorithm used by Scale.
type Kernel int

const (
	// Nearest picks the closest source pixel, no smoothing.
	Nearest Kernel = iota
	// Bicubic interpolates over a 4x4 neighborhood, used for upscaling.
	Bicubic
	// Average blends the source pixels covered by each destination
	// pixel, used for downscaling.
	Average
)

func (k Kernel) String() string {
	switch k {
	case Nearest:
		return "nearest"
	case Bicubic:
		return "bicubic"
	case Average:
		return "average"
	default:
		return "unknown"
	}
}

// Pixmap is a pixel buffer in 0xAARRGGBB packing, row-major order.
type Pixmap struct {
	Width  uint
	Height uint
	Data   []uint32
}

// New allocates a zeroed pixel buffer.
func New(width, height uint) (*Pixmap, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("invalid pixmap size %dx%d", width, height)
	}
	return &Pixmap{
		Width:  width,
		Height: height,
		Data:   make([]uint32, width*height),
	}, nil
}

// ARGB packs channels into the 0xAARRGGBB layout.
func ARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Scale resamples src with the given kernel and composites the result onto
// dst at (offsetX, offsetY). Offsets may be negative; the drawn region is
// clipped to dst. When preserveAlpha is false every dst pixel comes out
// fully opaque. dst pixels outside the drawn region are left untouched.
func Scale(kernel Kernel, src, dst *Pixmap, offsetX, offsetY int, scale float64, preserveAlpha bool) {
	if scale <= 0 {
		return
	}

	scaledW := uint(math.Round(scale * float64(src.Width)))
	scaledH := uint(math.Round(scale * float64(src.Height)))
	if scaledW == 0 {
		scaledW = 1
	}
	if scaledH == 0 {
		scaledH = 1
	}

	resized := resize.Resize(scaledW, scaledH, src.toNRGBA(), interpolation(kernel))

	canvas := dst.toNRGBA()
	rect := image.Rect(offsetX, offsetY, offsetX+int(scaledW), offsetY+int(scaledH))
	draw.Draw(canvas, rect, resized, image.Point{}, draw.Src)
	dst.fromNRGBA(canvas, preserveAlpha)
}

// interpolation maps a kernel to the resize filter implementing it. The
// bilinear filter widens its support when minifying, which makes it the
// area-averaging choice for downscales.
func interpolation(kernel Kernel) resize.InterpolationFunction {
	switch kernel {
	case Bicubic:
		return resize.Bicubic
	case Average:
		return resize.Bilinear
	default:
		return resize.NearestNeighbor
	}
}

func (pm *Pixmap) toNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, int(pm.Width), int(pm.Height)))
	for i, px := range pm.Data {
		img.Pix[i*4+0] = uint8(px >> 16)
		img.Pix[i*4+1] = uint8(px >> 8)
		img.Pix[i*4+2] = uint8(px)
		img.Pix[i*4+3] = uint8(px >> 24)
	}
	return img
}

func (pm *Pixmap) fromNRGBA(img *image.NRGBA, preserveAlpha bool) {
	for i := range pm.Data {
		a := img.Pix[i*4+3]
		if !preserveAlpha {
			a = 0xff
		}
		pm.Data[i] = ARGB(a, img.Pix[i*4+0], img.Pix[i*4+1], img.Pix[i*4+2])
	}
}
