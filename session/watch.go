package session

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// reloadDelay lets bursts of writes to the dataset file settle before it is
// read again.
const reloadDelay = 150 * time.Millisecond

// Watch reloads path whenever it is written or recreated, until ctx is
// done. The file's directory is watched so editors that replace the file
// are noticed too. Reload errors are logged and the old dataset is kept.
func (s *Session) Watch(ctx context.Context, path string) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return fmt.Errorf("cannot watch %s: %w", filepath.Dir(target), err)
	}
	s.log.WithField("source", path).Info("watching dataset for changes")

	go s.watchLoop(ctx, w, target, path)
	return nil
}

func (s *Session) watchLoop(ctx context.Context, w *fsnotify.Watcher, target, path string) {
	defer w.Close()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Name != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDelay, func() {
				if ctx.Err() != nil {
					return
				}
				s.log.WithField("source", path).Info("dataset changed, reloading")
				_ = s.LoadFile(path)
			})

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.log.WithFields(logrus.Fields{"source": path, "err": err}).Warn("file watcher error")
		}
	}
}
