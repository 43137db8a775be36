package library

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lyrebird/internal/config"
	"lyrebird/internal/logging"
	"lyrebird/internal/services"
)

// Walker produces the candidate tracks under the configured library root.
type Walker struct {
	cfg        *config.Config
	classifier *Classifier
	logger     *slog.Logger
}

// NewWalker builds a walker over the configured library root.
func NewWalker(cfg *config.Config, logger *slog.Logger) *Walker {
	return &Walker{
		cfg:        cfg,
		classifier: NewClassifier(cfg),
		logger:     logging.NewComponentLogger(logger, "walker"),
	}
}

// Walk traverses the library root and returns every track candidate found.
// Hidden directories are pruned. Unreadable entries are logged and skipped;
// only an unreadable root or context cancellation aborts the walk.
func (w *Walker) Walk(ctx context.Context) ([]Candidate, error) {
	root := w.cfg.Library.Root
	if _, err := os.Stat(root); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "walker", "walk", "library root unavailable", err)
	}

	var candidates []Candidate
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			w.logger.Warn("skipping unreadable entry",
				logging.String("path", path),
				logging.Error(walkErr))
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if candidate, ok := w.classifier.Classify(root, path); ok {
			candidates = append(candidates, candidate)
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, services.Wrap(services.ErrClassification, "walker", "walk", "library traversal failed", err)
	}
	return candidates, nil
}
