// Package memory provides an in-memory data source backed by a static
// item slice. Useful for fixed command palettes and for tests.
package memory

import (
	"context"
	"strings"

	"github.com/spotkit/spotkit/internal/core/domain"
	"github.com/spotkit/spotkit/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.DataSource = (*Source)(nil)

// Source serves a fixed set of items. It is immutable after
// construction and safe for concurrent use.
type Source struct {
	items []domain.Item
}

// New creates an in-memory source over the given items.
func New(items ...domain.Item) *Source {
	return &Source{items: append([]domain.Item(nil), items...)}
}

// ListAll returns the full item set.
func (s *Source) ListAll(_ context.Context) ([]domain.Item, error) {
	return append([]domain.Item(nil), s.items...), nil
}

// Search returns items whose display name contains the query,
// case-insensitively. Empty queries return no items.
func (s *Source) Search(_ context.Context, query string) ([]domain.Item, error) {
	if query == "" {
		return []domain.Item{}, nil
	}

	needle := strings.ToLower(query)
	matched := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Title()), needle) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}
