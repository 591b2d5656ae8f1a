package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/aideon-labs/aideon-tools/internal/core/ports/driving"
	"github.com/aideon-labs/aideon-tools/internal/logger"
)

// debounceInterval coalesces the bursts of write events editors emit when
// saving a file.
const debounceInterval = 250 * time.Millisecond

// Watch runs an initial conversion and then re-runs it whenever the input
// file changes, until the context is cancelled.
func (s *SyncService) Watch(ctx context.Context, req driving.SyncRequest) error {
	if _, err := s.Sync(ctx, req); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors replace files on
	// save, which drops a watch placed on the file itself.
	dir := filepath.Dir(req.Input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	input, err := filepath.Abs(req.Input)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", req.Input, err)
	}

	logger.Info("watching for changes", zap.String("input", req.Input))

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed, err := filepath.Abs(event.Name)
			if err != nil || changed != input {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceInterval, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			if _, err := s.Sync(ctx, req); err != nil {
				logger.Error("sync failed, still watching", zap.Error(err))
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(watchErr))
		}
	}
}
