package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fsnotify/fsnotify"
)

// WatchConfig configures Watch.
type WatchConfig struct {
	Logger *slog.Logger

	// ReloadAttempts bounds reads of a file that is still being replaced
	// (default: 5).
	ReloadAttempts uint

	// ReloadDelay is the wait between reload attempts (default: 100ms).
	ReloadDelay time.Duration
}

// Watch calls onChange with freshly loaded entries each time the notes file
// at path is written or replaced. It blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file, so editors that save
// by renaming a temp file over the original are still picked up. Files that
// fail to load are logged and skipped.
func Watch(ctx context.Context, path string, cfg WatchConfig, onChange func([]Entry)) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attempts := cfg.ReloadAttempts
	if attempts == 0 {
		attempts = 5
	}
	delay := cfg.ReloadDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve notes path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}
	logger = logger.With("path", target)
	logger.Info("watching notes file")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			// A temp file renamed over the target arrives as Create. Rename
			// and Remove on the target mean it went away; wait for the next save.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			entries, err := retry.DoWithData(
				func() ([]Entry, error) {
					return LoadEntries(target)
				},
				retry.Context(ctx),
				retry.Attempts(attempts),
				retry.Delay(delay),
				retry.DelayType(retry.FixedDelay),
				retry.LastErrorOnly(true),
				retry.RetryIf(func(err error) bool {
					// A schema violation will not fix itself.
					return !errors.Is(err, ErrInvalidDocument)
				}),
			)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Warn("failed to reload notes file", "error", err)
				continue
			}

			logger.Debug("notes file changed", "op", event.Op.String(), "entries", len(entries))
			onChange(entries)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
