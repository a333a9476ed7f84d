package server

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/imagewall/pkg/cache"
	"github.com/matzehuels/imagewall/pkg/errors"
)

// Watch reloads the dataset whenever its file is written or replaced, until
// ctx is done. The parent directory is watched so editors that save by
// rename are seen too.
//
// A reload that fails to parse is retried with backoff, since the file may
// be caught mid-write. A dataset that stays broken keeps the last frame.
func (s *Server) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(s.path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	s.logger.Debug("watching dataset", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := s.reloadWithRetry(ctx); err != nil {
				s.logger.Warn("reload failed, keeping last frame", "path", s.path, "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "err", err)
		}
	}
}

func (s *Server) reloadWithRetry(ctx context.Context) error {
	return cache.RetryWithBackoff(ctx, func() error {
		err := s.reload(ctx)
		if errors.Is(err, errors.ErrCodeInvalidDataset) || errors.Is(err, errors.ErrCodeFileNotFound) {
			return cache.Retryable(err)
		}
		return err
	})
}
