package domain

import "time"

// Default tunables applied by Config.WithDefaults.
const (
	// DefaultDebounceInterval is how long the query text must settle
	// before a search fires.
	DefaultDebounceInterval = 150 * time.Millisecond

	// DefaultMaxResults caps how many results the overlay displays.
	DefaultMaxResults = 50

	// DefaultMaxListHeight is the maximum result list height in rows.
	DefaultMaxListHeight = 10

	// DefaultAnimationInterval drives the loading spinner cadence.
	DefaultAnimationInterval = 120 * time.Millisecond
)

// Config is the immutable-after-construction parameter bag for an
// overlay instance. The core reads it passively; it carries no
// behaviour of its own.
type Config struct {
	// Title labels the overlay and the synthesized home section.
	Title string

	// Icon is the symbolic icon name of the home section.
	Icon string

	// Placeholder is shown in the empty search input.
	Placeholder string

	// DebounceInterval is the settle time between the last keystroke
	// and the query firing.
	DebounceInterval time.Duration

	// MaxResults caps the displayed result count.
	MaxResults int

	// MaxListHeight caps the rendered result list height in rows.
	MaxListHeight int

	// AnimationInterval is the spinner tick interval while loading.
	AnimationInterval time.Duration

	// ShowDividers toggles divider rules between overlay regions.
	ShowDividers bool

	// OnSelect is the selection callback of the home section.
	OnSelect func(Item)
}

// WithDefaults returns a copy of the config with zero-valued tunables
// replaced by their defaults.
func (c Config) WithDefaults() Config {
	if c.DebounceInterval <= 0 {
		c.DebounceInterval = DefaultDebounceInterval
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.MaxListHeight <= 0 {
		c.MaxListHeight = DefaultMaxListHeight
	}
	if c.AnimationInterval <= 0 {
		c.AnimationInterval = DefaultAnimationInterval
	}
	if c.Title == "" {
		c.Title = "Search"
	}
	if c.Placeholder == "" {
		c.Placeholder = "Type to search..."
	}
	return c
}
