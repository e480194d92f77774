package storage

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const reclaimDelay = time.Second

// ReclaimTempDir removes leftover upload files from dir in the
// background. Failures get one retry after a fixed delay and are
// logged, never surfaced: by the time this runs the request outcome is
// already decided.
func ReclaimTempDir(dir string, log *zap.Logger) {
	if dir == "" {
		return
	}
	time.AfterFunc(reclaimDelay, func() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn("temp dir cleanup failed", zap.String("dir", dir), zap.Error(err))
			}
			return
		}
		for _, e := range entries {
			if e.IsDir() || e.Name() == ".gitkeep" {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if err := os.Remove(path); err != nil {
				log.Warn("temp file delete failed, retrying once", zap.String("file", path), zap.Error(err))
				time.AfterFunc(reclaimDelay, func() {
					if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
						log.Warn("temp file retry failed", zap.String("file", path), zap.Error(err))
					}
				})
			}
		}
	})
}
