package driven

import (
	"context"

	"github.com/spotkit/spotkit/internal/core/domain"
)

// DataSource supplies searchable items to the overlay core. The core
// imposes no ordering, ranking, or fuzzy-matching contract: returned
// sequences are displayed verbatim.
//
// Implementations must be safe to call from the overlay's execution
// context and must not mutate state the core can observe.
type DataSource interface {
	// ListAll returns the full item universe. Called once at
	// construction and on explicit reload, always off the synchronous
	// path; it may be arbitrarily slow.
	ListAll(ctx context.Context) ([]domain.Item, error)

	// Search returns matching items for a non-empty query. An empty
	// query must return an empty sequence; the core never calls this
	// path with an empty query.
	Search(ctx context.Context, query string) ([]domain.Item, error)
}

// Watcher is an optional capability of data sources whose underlying
// universe changes behind the overlay's back. The returned channel
// fires (coalesced) whenever a reload is warranted; it is closed when
// the context is canceled.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// SelectionRecorder persists committed selections, typically to back a
// "recents" section.
type SelectionRecorder interface {
	// Record stores one committed selection for the given section.
	Record(ctx context.Context, item domain.Item, sectionID string) error
}
