package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/paper-flow/internal/logger"
)

type implWatcher struct {
	inboxDir string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	settle   time.Duration
	queue    chan string
	wg       sync.WaitGroup

	mu   sync.Mutex
	seen map[string]bool
}

// Start handles PDFs already waiting in the inbox, then every new one
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started. Monitoring: %s", w.inboxDir)

	w.wg.Add(1)
	go w.work(ctx)

	w.scanExisting(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// CREATE covers copies, RENAME-in arrives as CREATE too
			if event.Op&fsnotify.Create == fsnotify.Create {
				if isDocument(event.Name) {
					w.logger.Info(ctx, "New document detected: %s", event.Name)
					w.enqueue(ctx, event.Name)
				} else {
					w.logger.Debug(ctx, "Ignoring non-PDF file: %s", event.Name)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) scanExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.inboxDir)
	if err != nil {
		w.logger.Warn(ctx, "Failed to scan inbox: %v", err)
		return
	}
	for _, e := range entries {
		if !e.IsDir() && isDocument(e.Name()) {
			w.enqueue(ctx, filepath.Join(w.inboxDir, e.Name()))
		}
	}
}

// enqueue skips paths already queued, so a scan racing a CREATE event does
// not process the same file twice.
func (w *implWatcher) enqueue(ctx context.Context, path string) {
	w.mu.Lock()
	if w.seen[path] {
		w.mu.Unlock()
		return
	}
	w.seen[path] = true
	w.mu.Unlock()

	select {
	case w.queue <- path:
	case <-ctx.Done():
	}
}

// work runs the handler sequentially
func (w *implWatcher) work(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-w.queue:
			// Small delay to ensure file is fully written
			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				return
			}

			if err := w.handler(ctx, path); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", path, err)
			}

			w.mu.Lock()
			delete(w.seen, path)
			w.mu.Unlock()
		}
	}
}

// isDocument checks if the file has a PDF extension
func isDocument(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
