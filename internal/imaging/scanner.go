package imaging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var extensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Scan returns the absolute paths of all supported image files directly
// under dir, sorted by filename.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		path, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		images = append(images, path)
	}

	return images, nil
}
