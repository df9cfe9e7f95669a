// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/spotkit/spotkit/internal/core/domain"
)

// StateUpdated signals that the overlay mutated observable state and
// the views should re-read it.
type StateUpdated struct{}

// ItemSelected carries a committed selection out of the overlay.
type ItemSelected struct {
	Item      domain.Item
	SectionID string
}

// WatchFired signals that the data source reported a change on disk.
type WatchFired struct{}

// WatchClosed signals that the change feed ended.
type WatchClosed struct{}

// Quit signals the application should exit.
type Quit struct{}
