// Package list provides the result list component for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/spotkit/spotkit/internal/adapters/driving/tui/styles"
	"github.com/spotkit/spotkit/internal/core/domain"
)

// ResultList renders search results in a scrolling window. Selection
// lives in the overlay core; the list only displays the index it is
// given.
type ResultList struct {
	items        []domain.Item
	selected     int
	styles       *styles.Styles
	width        int
	maxHeight    int
	showDividers bool
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles, maxHeight int, showDividers bool) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if maxHeight < 1 {
		maxHeight = 10
	}

	return &ResultList{
		styles:       s,
		width:        80,
		maxHeight:    maxHeight,
		showDividers: showDividers,
	}
}

// SetItems replaces the displayed items.
func (r *ResultList) SetItems(items []domain.Item) {
	r.items = items
	if r.selected >= len(items) {
		r.selected = 0
	}
}

// SetSelected sets the highlighted index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.items) {
		r.selected = index
	}
}

// Selected returns the highlighted index.
func (r *ResultList) Selected() int {
	return r.selected
}

// Count returns the number of displayed items.
func (r *ResultList) Count() int {
	return len(r.items)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.items) == 0
}

// SetWidth sets the component width.
func (r *ResultList) SetWidth(width int) {
	r.width = width
}

// View renders the visible window of the result list.
func (r *ResultList) View() string {
	if len(r.items) == 0 {
		return r.styles.Muted.Render("No results")
	}

	// Window the list around the selection.
	visible := r.maxHeight
	if visible > len(r.items) {
		visible = len(r.items)
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.items) {
		end = len(r.items)
	}

	divider := r.styles.Divider.Render(strings.Repeat("─", r.dividerWidth()))

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, r.renderItem(i, r.items[i]))
		if r.showDividers && i < end-1 {
			lines = append(lines, divider)
		}
	}

	if end < len(r.items) {
		lines = append(lines, r.styles.Muted.Render(fmt.Sprintf("  … %d more", len(r.items)-end)))
	}

	return strings.Join(lines, "\n")
}

// renderItem formats a single result row.
func (r *ResultList) renderItem(index int, item domain.Item) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	symbol := item.Icon().Symbol
	if symbol != "" {
		symbol += " "
	}

	title := item.Title()
	if title == "" {
		title = "(untitled)"
	}
	maxTitleLen := r.width - ansi.StringWidth(symbol) - 6
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title = ansi.Truncate(title, maxTitleLen, "...")

	row := indicator + symbol + title
	if index == r.selected {
		row = r.styles.Selected.Render(row)
	} else {
		row = r.styles.Normal.Render(row)
	}

	subtitle := item.Subtitle()
	if subtitle == "" {
		return row
	}
	maxSubLen := r.width - 6
	if maxSubLen < 10 {
		maxSubLen = 10
	}
	subtitle = ansi.Truncate(subtitle, maxSubLen, "...")
	return row + "\n" + r.styles.Muted.Render("    "+subtitle)
}

// dividerWidth keeps separators narrower than the component.
func (r *ResultList) dividerWidth() int {
	w := r.width - 4
	if w < 10 {
		w = 10
	}
	return w
}
