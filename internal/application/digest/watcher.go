package digest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-feed-digest/internal/data/provider"
	"github.com/penwyp/go-feed-digest/internal/util"
)

// FeedWatcher reports changes to a single feed file. The parent directory
// is watched so that editors which replace the file are still seen.
type FeedWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan struct{}
}

func NewFeedWatcher(path string) (*FeedWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	fw := &FeedWatcher{
		watcher: watcher,
		path:    abs,
		changes: make(chan struct{}, 1),
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FeedWatcher) processEvents() {
	defer close(fw.changes)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			util.LogDebugf("Feed file event: %s", event)

			// Pending notifications coalesce.
			select {
			case fw.changes <- struct{}{}:
			default:
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Changes is signalled after the feed file changes. It is closed when the
// watcher stops.
func (fw *FeedWatcher) Changes() <-chan struct{} {
	return fw.changes
}

func (fw *FeedWatcher) Close() error {
	return fw.watcher.Close()
}

// Watch publishes once, then again each time the feed file settles after a
// change, until ctx is done. Only file feeds can be watched.
func (s *Service) Watch(ctx context.Context) error {
	fp, ok := s.provider.(*provider.FileProvider)
	if !ok {
		return fmt.Errorf("%w: watch needs a --feed file", ErrInvalidConfig)
	}

	fw, err := NewFeedWatcher(fp.Path())
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := s.Run(ctx); err != nil {
		return err
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case _, ok := <-fw.Changes():
			if !ok {
				return nil
			}
			if timer == nil {
				timer = time.NewTimer(s.config.Debounce)
			} else {
				timer.Reset(s.config.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			fp.Invalidate()
			if err := s.Run(ctx); err != nil {
				// Keep watching; the next write may fix the feed.
				util.LogError("Republish failed", util.F("feed", fp.Path()), util.F("error", err.Error()))
			}
		}
	}
}
