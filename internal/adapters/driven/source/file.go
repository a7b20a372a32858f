package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driven"
	"github.com/quarrydata/statcan-cli/internal/logger"
)

// Ensure FileSource implements the interface.
var _ driven.EntrySource = (*FileSource)(nil)

// FileSource reads the directory CSV from a local file.
type FileSource struct {
	path string
}

// NewFileSource creates a source over a local directory CSV.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Entries reads and parses the file.
func (s *FileSource) Entries(_ context.Context) ([]domain.CatalogEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return parseDirectory(data)
}

// Path returns the watched file path.
func (s *FileSource) Path() string {
	return s.path
}

// Watch blocks until ctx is done, invoking onChange after every write
// or re-creation of the file. The catalog store is append-only, so each
// re-ingestion accumulates entries; callers own that trade-off.
//
// The parent directory is watched rather than the file itself so that
// editors which replace the file (rename-over) keep triggering events.
func (s *FileSource) Watch(ctx context.Context, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	target, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", s.path, err)
	}

	logger.Info("watching %s for changes", s.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("%s changed (%s), re-ingesting", s.path, event.Op)
			if err := onChange(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}
