// Package imaging decodes source images into pixel buffers and discovers
// image files on disk.
package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/webp"

	"github.com/Rentib/swayimg/internal/pixmap"
)

// Frame is a single decoded frame of a source image.
type Frame struct {
	PM *pixmap.Pixmap
}

// Image is a decoded source image. Only the first frame is used for
// thumbnails; Alpha reports whether any frame carries transparency.
type Image struct {
	Path   string
	Frames []Frame
	Alpha  bool
}

// Width returns the native width of the first frame.
func (im *Image) Width() uint {
	return im.Frames[0].PM.Width
}

// Height returns the native height of the first frame.
func (im *Image) Height() uint {
	return im.Frames[0].PM.Height
}

// Load decodes the image at path into its first frame.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	pm, alpha, err := fromImage(decoded)
	if err != nil {
		return nil, err
	}

	return &Image{
		Path:   path,
		Frames: []Frame{{PM: pm}},
		Alpha:  alpha,
	}, nil
}

// fromImage converts a decoded image into an ARGB pixmap and reports
// whether it has any non-opaque pixel.
func fromImage(src image.Image) (*pixmap.Pixmap, bool, error) {
	bounds := src.Bounds()
	pm, err := pixmap.New(uint(bounds.Dx()), uint(bounds.Dy()))
	if err != nil {
		return nil, false, fmt.Errorf("failed to allocate pixmap: %w", err)
	}

	alpha := false
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := src.At(x, y)
			r, g, b, a := c.RGBA()
			if a != 0xffff {
				alpha = true
			}
			pm.Data[i] = pixmap.ARGB(uint8(a>>8), uint8(r>>8), uint8(g>>8), uint8(b>>8))
			i++
		}
	}

	return pm, alpha, nil
}
