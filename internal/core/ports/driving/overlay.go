package driving

import (
	"github.com/spotkit/spotkit/internal/core/domain"
)

// Overlay is the inbound surface of the spotlight core: commands from
// the UI collaborator plus the read-only observable state it renders
// from. All methods must be called from a single logical UI execution
// context; the implementation serializes internal mutation.
type Overlay interface {
	// SetQueryText records a keystroke-level mutation of the query
	// text and (re)arms the debounce pipeline. Setting the empty
	// string short-circuits immediately: results clear, state becomes
	// idle, and no query is dispatched.
	SetQueryText(text string)

	// NavigateUp moves the result selection up. Reports handled.
	NavigateUp() bool

	// NavigateDown moves the result selection down. Reports handled.
	NavigateDown() bool

	// NavigateLeft selects the previous section. Only handled while
	// the overlay is idle.
	NavigateLeft() bool

	// NavigateRight selects the next section. Only handled while the
	// overlay is idle.
	NavigateRight() bool

	// HandleEvent maps a discrete input event to a state transition
	// and reports whether it was handled, so the UI knows whether to
	// suppress its default key handling.
	HandleEvent(ev domain.InputEvent) bool

	// ActivateSection makes the identified section current and focuses
	// it. Only handled while the overlay is idle.
	ActivateSection(id string) bool

	// SelectCurrent commits the current choice: the active section's
	// callback receives the selected item exactly once, then the
	// overlay fully resets. No-op when nothing is selectable.
	SelectCurrent() bool

	// Reset returns the overlay to its initial idle state, discarding
	// query text, results, and any in-flight work.
	Reset()

	// Reload refreshes the cached item snapshot from the data source.
	Reload()

	// Close releases timers and in-flight work. The overlay must not
	// be used afterwards.
	Close()

	// AddSection appends a section to the registry. The reserved home
	// id is rejected with domain.ErrReservedID.
	AddSection(s domain.Section) error

	// RemoveSection removes every section matching id and returns how
	// many were removed. The home section is never removed.
	RemoveSection(id string) int

	// VisibleSections lists sections whose visibility predicate
	// currently evaluates true, re-evaluated on every call.
	VisibleSections() []domain.Section

	// Sections returns the full ordered registry.
	Sections() []domain.Section

	// Subscribe registers an observer invoked after every observable
	// state mutation.
	Subscribe(fn func())

	// Observable state surface.
	QueryText() string
	Results() []domain.Item
	SelectedResultIndex() int
	SelectedSectionIndex() int
	UIState() domain.UIState
	IsLoading() bool
}
