// thumbcache pre-generates thumbnails for image files or directories, the
// way the gallery mode would on first view, so browsing is instant later.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rentib/swayimg/internal/config"
	"github.com/Rentib/swayimg/internal/imaging"
	"github.com/Rentib/swayimg/internal/logger"
	"github.com/Rentib/swayimg/internal/thumbnail"
)

func main() {
	cfg := config.Load()

	size := flag.Uint("size", uint(cfg.ThumbSize), "thumbnail size in pixels")
	fill := flag.Bool("fill", cfg.ThumbFill, "crop to an exact square instead of preserving aspect ratio")
	antialias := flag.Bool("antialias", cfg.ThumbAntialias, "use a smoothing kernel")
	workers := flag.Int("workers", cfg.WarmupWorkers, "number of concurrent workers")
	flag.Parse()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log = log.With(zap.String("run_id", uuid.New().String()))

	if cfg.CacheDir != "" {
		thumbnail.SetCacheDir(cfg.CacheDir)
	}

	store, err := thumbnail.NewStore(cfg.CacheType, log)
	if err != nil {
		log.Fatal("failed to initialize thumbnail store", zap.Error(err))
	}

	files, err := collect(flag.Args())
	if err != nil {
		log.Fatal("failed to collect images", zap.Error(err))
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: thumbcache [flags] <image|directory>...")
		os.Exit(2)
	}

	log.Info("starting thumbnail warmup",
		zap.Int("files", len(files)),
		zap.Uint("size", *size),
		zap.Bool("fill", *fill),
		zap.Bool("antialias", *antialias),
	)

	warmup(files, *size, *fill, *antialias, *workers, store, log)
	log.Info("thumbnail warmup completed")
}

// collect expands the argument list into image file paths: directories are
// scanned one level deep, plain files are taken as-is.
func collect(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			scanned, err := imaging.Scan(arg)
			if err != nil {
				return nil, err
			}
			files = append(files, scanned...)
			continue
		}
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, abs)
	}
	return files, nil
}

func warmup(files []string, size uint, fill, antialias bool, workerLimit int, store thumbnail.Store, log *zap.Logger) {
	if workerLimit <= 0 {
		workerLimit = 1
	}

	workerChan := make(chan struct{}, workerLimit)
	var wg sync.WaitGroup

	for _, file := range files {
		wg.Add(1)
		workerChan <- struct{}{} // acquire worker slot

		go func(source string) {
			defer wg.Done()
			defer func() { <-workerChan }() // release worker slot

			img, err := imaging.Load(source)
			if err != nil {
				log.Warn("failed to load image", zap.String("source", source), zap.Error(err))
				return
			}

			params := thumbnail.Compute(img, size, fill, antialias)
			if _, err := store.Get(img, source, params); err != nil {
				log.Warn("failed to build thumbnail", zap.String("source", source), zap.Error(err))
				return
			}
			log.Debug("thumbnail ready", zap.String("source", source))
		}(file)
	}

	wg.Wait()
}
