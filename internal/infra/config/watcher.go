package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"apidir/internal/domain"
	"apidir/internal/infra/telemetry"
)

const defaultReloadDebounce = domain.DefaultConfigReloadDebounceMs * time.Millisecond

// Watcher calls OnChange after the config file settles following a write,
// create, rename or remove.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func(ctx context.Context)
	Logger   *zap.Logger
}

// Run blocks until ctx is done. The parent directory is watched so that
// editors replacing the file are seen.
func (w Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultReloadDebounce
	}
	target, err := filepath.Abs(w.Path)
	if err != nil {
		return domain.E(domain.CodeInvalidArgument, "watch config", "resolve config path", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return domain.E(domain.CodeInternal, "watch config", "create watcher", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return domain.E(domain.CodeInvalidArgument, "watch config", "watch config dir", err)
	}

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", zap.Error(err))
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !sameFile(event.Name, target) || event.Op == fsnotify.Chmod {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
		case <-timerChan(timer):
			timer = nil
			logger.Info("config changed", telemetry.EventField(telemetry.EventConfigReload), zap.String("path", target))
			if w.OnChange != nil {
				w.OnChange(ctx)
			}
		}
	}
}

func sameFile(name, target string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == target
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
