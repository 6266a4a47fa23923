package thumbnail

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Rentib/swayimg/internal/imaging"
	"github.com/Rentib/swayimg/internal/pixmap"
)

// Store caches rendered thumbnails. A cache is an optimization, not a
// source of truth: Load failures of any kind are misses, and a failed
// Save still leaves the caller with a usable in-memory thumbnail.
type Store interface {
	// Load returns the cached thumbnail for source, or reports a miss.
	// A miss covers: absent or unreadable file, stale source, parameter
	// mismatch, corrupt header, truncated body.
	Load(source string, params Params) (*pixmap.Pixmap, bool)
	// Save writes the thumbnail through to disk.
	Save(thumb *pixmap.Pixmap, source string, params Params) error
	// Get returns the cached thumbnail or generates and saves a fresh
	// one. Only generation failure is an error.
	Get(img *imaging.Image, source string, params Params) (*pixmap.Pixmap, error)
}

// NewStore creates a store based on the cache type.
func NewStore(cacheType string, log *zap.Logger) (Store, error) {
	switch cacheType {
	case "file":
		log.Info("using file thumbnail cache")
		return NewDiskStore(log), nil
	case "disabled":
		log.Info("thumbnail cache disabled")
		return NewNoopStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache type: %s (supported: file, disabled)", cacheType)
	}
}

// Create generates a thumbnail from the source image without touching the
// cache. The kernel follows the parameters: no antialiasing picks nearest
// neighbor; antialiased upscales pick bicubic, downscales area averaging.
func Create(img *imaging.Image, params Params) (*pixmap.Pixmap, error) {
	thumb, err := pixmap.New(params.ThumbWidth, params.ThumbHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to create thumbnail: %w", err)
	}

	pixmap.Scale(selectKernel(params), img.Frames[0].PM, thumb,
		params.OffsetX, params.OffsetY, params.Scale, img.Alpha)

	return thumb, nil
}

func selectKernel(params Params) pixmap.Kernel {
	if !params.Antialias {
		return pixmap.Nearest
	}
	if params.Scale > 1.0 {
		return pixmap.Bicubic
	}
	return pixmap.Average
}

// DiskStore persists thumbnails under the cache base directory, mirroring
// each source's absolute path. Writes are not atomic: a reader racing a
// writer can observe a half-written file, which decode rejects as a miss.
type DiskStore struct {
	logger *zap.Logger
}

func NewDiskStore(logger *zap.Logger) *DiskStore {
	return &DiskStore{logger: logger}
}

func (s *DiskStore) Load(source string, params Params) (*pixmap.Pixmap, bool) {
	path, err := cachePath(source)
	if err != nil {
		s.logger.Debug("thumbnail path unresolved", zap.String("source", source), zap.Error(err))
		return nil, false
	}

	srcInfo, err := os.Stat(source)
	if err != nil {
		return nil, false
	}
	cacheInfo, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if srcInfo.ModTime().After(cacheInfo.ModTime()) {
		s.logger.Debug("thumbnail stale", zap.String("source", source))
		return nil, false
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	thumb, err := decode(f, params)
	if err != nil {
		s.logger.Debug("thumbnail rejected", zap.String("source", source), zap.Error(err))
		return nil, false
	}

	return thumb, true
}

func (s *DiskStore) Save(thumb *pixmap.Pixmap, source string, params Params) error {
	path, err := cachePath(source)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}

	if err := encode(f, thumb, params); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func (s *DiskStore) Get(img *imaging.Image, source string, params Params) (*pixmap.Pixmap, error) {
	if thumb, ok := s.Load(source, params); ok {
		return thumb, nil
	}

	thumb, err := Create(img, params)
	if err != nil {
		return nil, err
	}

	if err := s.Save(thumb, source, params); err != nil {
		// The generated thumbnail is still good for this session.
		s.logger.Warn("thumbnail save failed", zap.String("source", source), zap.Error(err))
	}

	return thumb, nil
}
