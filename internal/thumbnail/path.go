package thumbnail

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// maxPathLen mirrors PATH_MAX on the supported platforms; longer cache
// paths are rejected before any I/O is attempted.
const maxPathLen = 4096

const cacheSubdir = "swayimg"

// The cache base directory is resolved once per process: the first
// successful resolution wins and is never re-read from the environment.
var cacheBase struct {
	mu       sync.Mutex
	resolved bool
	dir      string
	err      error
}

// CacheDir returns the cache base directory, resolving it on first use:
// $XDG_CACHE_HOME/swayimg, falling back to $HOME/.swayimg.
func CacheDir() (string, error) {
	cacheBase.mu.Lock()
	defer cacheBase.mu.Unlock()
	if !cacheBase.resolved {
		cacheBase.dir, cacheBase.err = resolveCacheDir()
		cacheBase.resolved = true
	}
	return cacheBase.dir, cacheBase.err
}

// SetCacheDir overrides the cache base directory for the rest of the
// process lifetime, bypassing environment resolution.
func SetCacheDir(dir string) {
	cacheBase.mu.Lock()
	defer cacheBase.mu.Unlock()
	cacheBase.dir = dir
	cacheBase.err = nil
	cacheBase.resolved = true
}

func resolveCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, cacheSubdir), nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, "."+cacheSubdir), nil
	}
	return "", errors.New("no cache directory: neither XDG_CACHE_HOME nor HOME is set")
}

// cachePath maps an absolute source path to its cache file path by
// mirroring the source tree under the cache base.
func cachePath(source string) (string, error) {
	base, err := CacheDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(base, source)
	if len(path) > maxPathLen {
		return "", fmt.Errorf("cache path too long: %d bytes", len(path))
	}
	return path, nil
}
