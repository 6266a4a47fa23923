package thumbnail

import (
	"github.com/Rentib/swayimg/internal/imaging"
	"github.com/Rentib/swayimg/internal/pixmap"
)

// NoopStore never caches: every Load is a miss and Save discards its input.
type NoopStore struct{}

func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (s *NoopStore) Load(source string, params Params) (*pixmap.Pixmap, bool) {
	return nil, false
}

func (s *NoopStore) Save(thumb *pixmap.Pixmap, source string, params Params) error {
	return nil
}

func (s *NoopStore) Get(img *imaging.Image, source string, params Params) (*pixmap.Pixmap, error) {
	return Create(img, params)
}
