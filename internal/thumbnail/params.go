// Package thumbnail produces, persists and retrieves on-disk thumbnails
// of source images, keyed by source path and rendering parameters.
package thumbnail

import (
	"math"

	"github.com/Rentib/swayimg/internal/imaging"
)

// Params are the canonical rendering parameters of a thumbnail. A cached
// file is valid only for the exact Params it was written with; any field
// mismatch invalidates it regardless of timestamps.
type Params struct {
	ThumbWidth  uint
	ThumbHeight uint
	OffsetX     int
	OffsetY     int
	Fill        bool
	Antialias   bool
	Scale       float64
}

// Compute derives the rendering parameters for a thumbnail of the given
// source image. With fill the image covers an exact size×size square and
// overflow is cropped; without it the aspect ratio is preserved and one
// dimension may come out smaller than size.
func Compute(img *imaging.Image, size uint, fill, antialias bool) Params {
	scaleW := float64(size) / float64(img.Width())
	scaleH := float64(size) / float64(img.Height())

	var scale float64
	if fill {
		scale = math.Max(scaleW, scaleH)
	} else {
		scale = math.Min(scaleW, scaleH)
	}

	thumbW := uint(math.Round(scale * float64(img.Width())))
	thumbH := uint(math.Round(scale * float64(img.Height())))

	var offsetX, offsetY int
	if fill {
		offsetX = int(size)/2 - int(thumbW)/2
		offsetY = int(size)/2 - int(thumbH)/2
		thumbW = size
		thumbH = size
	}

	return Params{
		ThumbWidth:  thumbW,
		ThumbHeight: thumbH,
		OffsetX:     offsetX,
		OffsetY:     offsetY,
		Fill:        fill,
		Antialias:   antialias,
		Scale:       scale,
	}
}

// Equal reports field-by-field equality. This is the cache validity gate:
// a stored record that differs in any field rejects the cached file.
func (p Params) Equal(o Params) bool {
	return p.ThumbWidth == o.ThumbWidth &&
		p.ThumbHeight == o.ThumbHeight &&
		p.OffsetX == o.OffsetX &&
		p.OffsetY == o.OffsetY &&
		p.Fill == o.Fill &&
		p.Antialias == o.Antialias &&
		p.Scale == o.Scale
}
