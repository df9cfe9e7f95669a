package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/spotkit/spotkit/internal/core/domain"
)

// FileConfig is the on-disk configuration document.
type FileConfig struct {
	Overlay    OverlaySettings    `toml:"overlay"`
	Filesystem FilesystemSettings `toml:"filesystem"`
	Recents    RecentsSettings    `toml:"recents"`
}

// OverlaySettings configures the overlay itself.
type OverlaySettings struct {
	// Title is the window title shown above the search field.
	Title string `toml:"title"`

	// Placeholder is the hint shown in the empty search field.
	Placeholder string `toml:"placeholder"`

	// DebounceMs is the query debounce interval in milliseconds.
	DebounceMs int `toml:"debounce_ms"`

	// MaxResults caps how many results are retained per query.
	MaxResults int `toml:"max_results"`

	// MaxListHeight caps how many result rows are rendered at once.
	MaxListHeight int `toml:"max_list_height"`

	// ShowDividers draws separators between result rows.
	ShowDividers bool `toml:"show_dividers"`
}

// FilesystemSettings configures the filesystem data source.
type FilesystemSettings struct {
	// Root is the directory to index. Empty means the home directory.
	Root string `toml:"root"`

	// Extensions filters files by extension. Empty means all files.
	Extensions []string `toml:"extensions"`

	// MaxDepth limits recursion below the root. Zero means unlimited.
	MaxDepth int `toml:"max_depth"`

	// IncludeHidden includes dot-files and dot-directories.
	IncludeHidden bool `toml:"include_hidden"`

	// Watch rescans the tree when files change.
	Watch bool `toml:"watch"`
}

// RecentsSettings configures the selection history section.
type RecentsSettings struct {
	// Enabled adds a Recents section backed by the history store.
	Enabled bool `toml:"enabled"`

	// MaxEntries caps how many selections are retained.
	MaxEntries int `toml:"max_entries"`
}

// defaultFileConfig returns the configuration used when no file exists.
func defaultFileConfig() FileConfig {
	return FileConfig{
		Overlay: OverlaySettings{
			Title:         "Search",
			Placeholder:   "Type to search",
			DebounceMs:    150,
			MaxResults:    50,
			MaxListHeight: 10,
			ShowDividers:  true,
		},
		Filesystem: FilesystemSettings{
			Watch: true,
		},
		Recents: RecentsSettings{
			Enabled:    true,
			MaxEntries: 200,
		},
	}
}

// ConfigStore is a file-based configuration store using TOML.
// Configuration is stored in a TOML file within the spotkit config
// directory.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	cfg      FileConfig
}

// NewConfigStore creates a TOML-based config store.
// If configDir is empty, defaults to ~/.spotkit/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".spotkit")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		cfg:      defaultFileConfig(),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Load reads configuration from the TOML file. A missing file leaves
// the defaults in place.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.cfg = defaultFileConfig()
			return nil
		}
		return err
	}

	// Absent keys keep their default values.
	cfg := defaultFileConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	s.cfg = cfg
	return nil
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := toml.Marshal(s.cfg)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Config returns a copy of the current configuration document.
func (s *ConfigStore) Config() FileConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update applies fn to the configuration under the write lock and
// persists the result.
func (s *ConfigStore) Update(fn func(*FileConfig)) error {
	s.mu.Lock()
	fn(&s.cfg)
	data, err := toml.Marshal(s.cfg)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// OverlayConfig translates the overlay settings into the core config.
func (s *ConfigStore) OverlayConfig() domain.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := domain.Config{
		Title:         s.cfg.Overlay.Title,
		Placeholder:   s.cfg.Overlay.Placeholder,
		MaxResults:    s.cfg.Overlay.MaxResults,
		MaxListHeight: s.cfg.Overlay.MaxListHeight,
		ShowDividers:  s.cfg.Overlay.ShowDividers,
	}
	if s.cfg.Overlay.DebounceMs > 0 {
		cfg.DebounceInterval = time.Duration(s.cfg.Overlay.DebounceMs) * time.Millisecond
	}
	return cfg.WithDefaults()
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
