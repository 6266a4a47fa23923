package thumbnail

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Rentib/swayimg/internal/pixmap"
)

// Cache files are a P6 container: a text header, the rendering parameters
// embedded in a comment line, then the raw RGB body.
//
//	"P6\n" <width> " " <height> "\n255\n"
//	"#" <26-byte params record> "\n"
//	width*height RGB triples, row-major
//
// There is no version field and no checksum; validity rests on the params
// equality gate and, at the store level, on file timestamps. Alpha is not
// persisted.

const (
	formatMagic  = "P6"
	formatMaxval = "255"
	paramsMarker = '#'
)

var (
	errBadMagic       = errors.New("bad cache file magic")
	errParamsMismatch = errors.New("cached parameters do not match request")
)

// wireParams is the fixed on-disk layout of Params: little-endian,
// 26 bytes, written with no padding.
type wireParams struct {
	ThumbWidth  uint32
	ThumbHeight uint32
	OffsetX     int32
	OffsetY     int32
	Fill        uint8
	Antialias   uint8
	Scale       float64
}

func toWire(p Params) wireParams {
	w := wireParams{
		ThumbWidth:  uint32(p.ThumbWidth),
		ThumbHeight: uint32(p.ThumbHeight),
		OffsetX:     int32(p.OffsetX),
		OffsetY:     int32(p.OffsetY),
		Scale:       p.Scale,
	}
	if p.Fill {
		w.Fill = 1
	}
	if p.Antialias {
		w.Antialias = 1
	}
	return w
}

func fromWire(w wireParams) Params {
	return Params{
		ThumbWidth:  uint(w.ThumbWidth),
		ThumbHeight: uint(w.ThumbHeight),
		OffsetX:     int(w.OffsetX),
		OffsetY:     int(w.OffsetY),
		Fill:        w.Fill != 0,
		Antialias:   w.Antialias != 0,
		Scale:       w.Scale,
	}
}

// encode writes a thumbnail and its parameters as a cache file body.
func encode(w io.Writer, thumb *pixmap.Pixmap, params Params) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n%d %d\n%s\n", formatMagic, thumb.Width, thumb.Height, formatMaxval)

	bw.WriteByte(paramsMarker)
	if err := binary.Write(bw, binary.LittleEndian, toWire(params)); err != nil {
		return fmt.Errorf("failed to write params record: %w", err)
	}
	bw.WriteByte('\n')

	rgb := make([]byte, 3)
	for _, px := range thumb.Data {
		rgb[0] = uint8(px >> 16)
		rgb[1] = uint8(px >> 8)
		rgb[2] = uint8(px)
		if _, err := bw.Write(rgb); err != nil {
			return fmt.Errorf("failed to write pixel data: %w", err)
		}
	}

	return bw.Flush()
}

// decode parses a cache file body, rejecting it unless the stored
// parameters exactly equal want. Any short read is an error; no partially
// filled pixmap is ever returned.
func decode(r io.Reader, want Params) (*pixmap.Pixmap, error) {
	br := bufio.NewReader(r)

	magic, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if magic != formatMagic+"\n" {
		return nil, errBadMagic
	}

	dims, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	var width, height uint
	if _, err := fmt.Sscanf(dims, "%d %d\n", &width, &height); err != nil {
		return nil, fmt.Errorf("malformed dimensions %q: %w", dims, err)
	}

	maxval, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if maxval != formatMaxval+"\n" {
		return nil, fmt.Errorf("unexpected maxval %q", maxval)
	}

	marker, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("failed to read params marker: %w", err)
	}
	if marker != paramsMarker {
		return nil, fmt.Errorf("unexpected params marker %q", marker)
	}

	var saved wireParams
	if err := binary.Read(br, binary.LittleEndian, &saved); err != nil {
		return nil, fmt.Errorf("failed to read params record: %w", err)
	}
	if _, err := br.ReadByte(); err != nil { // trailing '\n'
		return nil, fmt.Errorf("failed to read params terminator: %w", err)
	}

	if !fromWire(saved).Equal(want) {
		return nil, errParamsMismatch
	}

	thumb, err := pixmap.New(width, height)
	if err != nil {
		return nil, err
	}

	rgb := make([]byte, 3)
	for i := range thumb.Data {
		if _, err := io.ReadFull(br, rgb); err != nil {
			return nil, fmt.Errorf("truncated pixel data: %w", err)
		}
		thumb.Data[i] = pixmap.ARGB(0xff, rgb[0], rgb[1], rgb[2])
	}

	return thumb, nil
}
