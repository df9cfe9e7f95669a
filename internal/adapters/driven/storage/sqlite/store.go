package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/spotkit/spotkit/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/spotkit/spotkit/internal/core/domain"
	"github.com/spotkit/spotkit/internal/core/ports/driven"
)

// DefaultMaxEntries is how many recent selections are retained before
// the oldest rows are pruned.
const DefaultMaxEntries = 200

// Ensure Store implements the data source and recorder interfaces.
var (
	_ driven.DataSource        = (*Store)(nil)
	_ driven.SelectionRecorder = (*Store)(nil)
)

// Store is a SQLite-backed selection history. Each committed item is
// upserted by its identity; repeat selections bump a hit counter and
// refresh the recency timestamp.
type Store struct {
	db         *sql.DB
	path       string
	maxEntries int
}

// Option configures a Store.
type Option func(*Store)

// WithMaxEntries overrides the retention cap. Non-positive values are
// ignored.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.spotkit/data/recents.db.
func NewStore(dataDir string, opts ...Option) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".spotkit", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "recents.db")

	// WAL mode so the overlay can read while a commit is recorded.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:         db,
		path:       dbPath,
		maxEntries: DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Record stores a selection. Repeat selections of the same item update
// the existing row. Rows beyond the retention cap are pruned oldest
// first.
func (s *Store) Record(ctx context.Context, item domain.Item, sectionID string) error {
	if item == nil {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recents (id, item_id, title, subtitle, icon_symbol, section_id, hits, last_selected)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			title = excluded.title,
			subtitle = excluded.subtitle,
			icon_symbol = excluded.icon_symbol,
			section_id = excluded.section_id,
			hits = hits + 1,
			last_selected = excluded.last_selected
	`, uuid.NewString(), item.ID(), item.Title(), item.Subtitle(),
		item.Icon().Symbol, sectionID, now)
	if err != nil {
		return fmt.Errorf("recording selection: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM recents WHERE id NOT IN (
			SELECT id FROM recents ORDER BY last_selected DESC LIMIT ?
		)
	`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("pruning recents: %w", err)
	}
	return nil
}

// ListAll returns recorded selections, most recent first.
func (s *Store) ListAll(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, title, subtitle, icon_symbol, section_id, hits, last_selected
		FROM recents
		ORDER BY last_selected DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying recents: %w", err)
	}
	defer rows.Close()

	return scanRecents(rows)
}

// Search returns recorded selections whose title contains the query,
// case-insensitively, most recent first. Empty queries return no
// items.
func (s *Store) Search(ctx context.Context, query string) ([]domain.Item, error) {
	if query == "" {
		return []domain.Item{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT item_id, title, subtitle, icon_symbol, section_id, hits, last_selected
		FROM recents
		WHERE title LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY last_selected DESC
	`, query)
	if err != nil {
		return nil, fmt.Errorf("searching recents: %w", err)
	}
	defer rows.Close()

	return scanRecents(rows)
}

// Clear removes every recorded selection.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM recents"); err != nil {
		return fmt.Errorf("clearing recents: %w", err)
	}
	return nil
}

// scanRecents scans recent entry rows.
func scanRecents(rows *sql.Rows) ([]domain.Item, error) {
	var items []domain.Item //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e RecentItem
		if err := rows.Scan(&e.ItemID, &e.Name, &e.Detail, &e.IconSymbol,
			&e.SectionID, &e.Hits, &e.LastSelected); err != nil {
			return nil, fmt.Errorf("scanning recent entry: %w", err)
		}
		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recents: %w", err)
	}

	return items, nil
}
