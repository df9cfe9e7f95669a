// Package filesystem provides a data source over a local directory
// tree: items are files under a root directory, optionally filtered by
// extension and recursion depth. It is a thin I/O wrapper; ordering,
// ranking, and fuzzy matching are deliberately out of scope.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spotkit/spotkit/internal/core/domain"
	"github.com/spotkit/spotkit/internal/core/ports/driven"
	"github.com/spotkit/spotkit/internal/logger"
)

// DefaultMaxItems caps a single walk so a huge tree cannot wedge the
// overlay.
const DefaultMaxItems = 10000

// Config holds the parameters for a filesystem source.
type Config struct {
	// Root is the directory to enumerate. Must exist.
	Root string

	// Extensions filters files by extension (e.g. ".md", ".txt").
	// Empty means all files.
	Extensions []string

	// MaxDepth limits recursion below Root. Zero or negative means
	// unlimited.
	MaxDepth int

	// IncludeHidden includes dot-files and dot-directories.
	IncludeHidden bool

	// MaxItems caps how many items one walk may return. Zero means
	// DefaultMaxItems.
	MaxItems int

	// WatchDebounce is the quiet period before a filesystem event
	// burst produces one change notification. Zero means 500ms.
	WatchDebounce time.Duration
}

// Ensure Source implements the data source and watcher interfaces.
var (
	_ driven.DataSource = (*Source)(nil)
	_ driven.Watcher    = (*Source)(nil)
)

// Source enumerates files under a root directory.
type Source struct {
	cfg  Config
	root string
	exts map[string]bool
}

// New creates a filesystem source rooted at cfg.Root.
func New(cfg Config) (*Source, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("checking root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	exts := make(map[string]bool, len(cfg.Extensions))
	for _, e := range cfg.Extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts[strings.ToLower(e)] = true
	}

	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultMaxItems
	}

	return &Source{cfg: cfg, root: root, exts: exts}, nil
}

// Root returns the absolute root directory.
func (s *Source) Root() string {
	return s.root
}

// ListAll walks the tree and returns every matching file.
func (s *Source) ListAll(ctx context.Context) ([]domain.Item, error) {
	return s.walk(ctx, "")
}

// Search walks the tree and returns files whose name contains the
// query, case-insensitively. Empty queries return no items.
func (s *Source) Search(ctx context.Context, query string) ([]domain.Item, error) {
	if query == "" {
		return []domain.Item{}, nil
	}
	return s.walk(ctx, strings.ToLower(query))
}

// walk enumerates files under the root, honouring the depth, hidden,
// and extension filters. A non-empty needle additionally filters file
// names by case-insensitive substring match.
func (s *Source) walk(ctx context.Context, needle string) ([]domain.Item, error) {
	var items []domain.Item

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			logger.Warn("Skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if path == s.root {
			return nil
		}

		name := d.Name()
		hidden := strings.HasPrefix(name, ".")

		if d.IsDir() {
			if hidden && !s.cfg.IncludeHidden {
				return fs.SkipDir
			}
			if s.cfg.MaxDepth > 0 && s.depth(path) >= s.cfg.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if hidden && !s.cfg.IncludeHidden {
			return nil
		}
		if len(s.exts) > 0 && !s.exts[strings.ToLower(filepath.Ext(name))] {
			return nil
		}
		if needle != "" && !strings.Contains(strings.ToLower(name), needle) {
			return nil
		}

		items = append(items, newFileItem(s.root, path))
		if len(items) >= s.cfg.MaxItems {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.root, err)
	}

	return items, nil
}

// depth returns how many directories deep path sits below the root.
func (s *Source) depth(path string) int {
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
