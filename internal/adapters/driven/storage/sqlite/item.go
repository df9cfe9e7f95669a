package sqlite

import (
	"time"

	"github.com/spotkit/spotkit/internal/core/domain"
)

// RecentItem is a previously committed selection served back as a
// searchable item. Identity matches the original item so re-selecting
// a recent entry updates the same row.
type RecentItem struct {
	ItemID       string
	Name         string
	Detail       string
	IconSymbol   string
	SectionID    string
	Hits         int
	LastSelected time.Time
}

// Ensure RecentItem implements Item.
var _ domain.Item = RecentItem{}

// ID returns the original item identity.
func (r RecentItem) ID() string { return r.ItemID }

// Title returns the display name.
func (r RecentItem) Title() string { return r.Name }

// Subtitle returns the secondary line.
func (r RecentItem) Subtitle() string { return r.Detail }

// Icon returns the icon recorded at selection time.
func (r RecentItem) Icon() domain.Icon {
	return domain.Icon{Symbol: r.IconSymbol}
}
