package thumbnail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rentib/swayimg/internal/imaging"
	"github.com/Rentib/swayimg/internal/pixmap"
)

func testImage(t *testing.T, width, height uint) *imaging.Image {
	t.Helper()
	pm, err := pixmap.New(width, height)
	require.NoError(t, err)
	return &imaging.Image{Frames: []imaging.Frame{{PM: pm}}}
}

func TestComputeFill(t *testing.T) {
	img := testImage(t, 200, 100)

	params := Compute(img, 50, true, false)

	assert.Equal(t, 0.5, params.Scale, "cover-fit takes the larger axis scale")
	assert.Equal(t, uint(50), params.ThumbWidth)
	assert.Equal(t, uint(50), params.ThumbHeight)
	assert.Equal(t, -25, params.OffsetX, "scaled width 100 centered on a 50px canvas")
	assert.Equal(t, 0, params.OffsetY)
	assert.True(t, params.Fill)
	assert.False(t, params.Antialias)
}

func TestComputeContain(t *testing.T) {
	img := testImage(t, 200, 100)

	params := Compute(img, 50, false, true)

	assert.Equal(t, 0.25, params.Scale, "contain-fit takes the smaller axis scale")
	assert.Equal(t, uint(50), params.ThumbWidth)
	assert.Equal(t, uint(25), params.ThumbHeight)
	assert.Equal(t, 0, params.OffsetX)
	assert.Equal(t, 0, params.OffsetY)
	assert.False(t, params.Fill)
	assert.True(t, params.Antialias)
}

func TestComputeSquareSource(t *testing.T) {
	img := testImage(t, 100, 100)

	fill := Compute(img, 50, true, true)
	contain := Compute(img, 50, false, true)

	// A square source fits both modes identically, with no cropping.
	assert.Equal(t, uint(50), fill.ThumbWidth)
	assert.Equal(t, uint(50), fill.ThumbHeight)
	assert.Equal(t, 0, fill.OffsetX)
	assert.Equal(t, 0, fill.OffsetY)
	assert.Equal(t, uint(50), contain.ThumbWidth)
	assert.Equal(t, uint(50), contain.ThumbHeight)
}

func TestComputeUpscale(t *testing.T) {
	img := testImage(t, 20, 10)

	params := Compute(img, 50, false, true)

	assert.Equal(t, 2.5, params.Scale)
	assert.Equal(t, uint(50), params.ThumbWidth)
	assert.Equal(t, uint(25), params.ThumbHeight)
}

func TestParamsEqualSensitivity(t *testing.T) {
	base := Params{
		ThumbWidth:  50,
		ThumbHeight: 25,
		OffsetX:     -25,
		OffsetY:     0,
		Fill:        true,
		Antialias:   true,
		Scale:       0.5,
	}
	require.True(t, base.Equal(base))

	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"thumb width", func(p *Params) { p.ThumbWidth++ }},
		{"thumb height", func(p *Params) { p.ThumbHeight++ }},
		{"offset x", func(p *Params) { p.OffsetX++ }},
		{"offset y", func(p *Params) { p.OffsetY-- }},
		{"fill", func(p *Params) { p.Fill = !p.Fill }},
		{"antialias", func(p *Params) { p.Antialias = !p.Antialias }},
		{"scale", func(p *Params) { p.Scale += 0.001 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			tt.mutate(&other)
			assert.False(t, base.Equal(other))
			assert.False(t, other.Equal(base))
		})
	}
}
