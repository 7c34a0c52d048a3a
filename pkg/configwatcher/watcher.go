package configwatcher

import (
	"atomic_sensei_backend/internal/config"
	"atomic_sensei_backend/pkg/logger"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = time.Second

type ConfigReloader func(cfg *config.Config)

// Watcher reloads configs/config.yaml when it changes on disk.
type Watcher struct {
	Dir      string
	File     string
	Debounce time.Duration
	Reload   ConfigReloader
}

func New(dir string, reload ConfigReloader) *Watcher {
	return &Watcher{
		Dir:      dir,
		File:     "config.yaml",
		Debounce: DefaultDebounce,
		Reload:   reload,
	}
}

// Run blocks until ctx is done. The directory is watched rather than the
// file so that editors which replace the file on save are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer fw.Close()

	absDir, err := filepath.Abs(w.Dir)
	if err != nil {
		return err
	}
	if err := fw.Add(absDir); err != nil {
		return fmt.Errorf("watch %s: %w", absDir, err)
	}
	target := filepath.Join(absDir, w.File)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(w.Debounce)
			}
		case <-timer.C:
			cfg, err := config.LoadConfig(absDir)
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			logger.Log.Info("Config reloaded", zap.String("file", target))
			w.Reload(cfg)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}
