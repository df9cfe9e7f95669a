// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spotkit/spotkit/internal/adapters/driving/tui/styles"
	"github.com/spotkit/spotkit/internal/core/domain"
)

// StatusBar shows the overlay state, the result count, and a spinner
// while a query is in flight.
type StatusBar struct {
	spinner spinner.Model
	styles  *styles.Styles
	state   domain.UIState
	count   int
	loading bool
	width   int
}

// NewStatusBar creates a new status bar component.
func NewStatusBar(s *styles.Styles) *StatusBar {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	return &StatusBar{
		spinner: sp,
		styles:  s,
		width:   80,
	}
}

// Init starts the spinner tick.
func (b *StatusBar) Init() tea.Cmd {
	return b.spinner.Tick
}

// Update advances the spinner.
func (b *StatusBar) Update(msg tea.Msg) (*StatusBar, tea.Cmd) {
	var cmd tea.Cmd
	b.spinner, cmd = b.spinner.Update(msg)
	return b, cmd
}

// SetState records the overlay state to display.
func (b *StatusBar) SetState(state domain.UIState, count int, loading bool) {
	b.state = state
	b.count = count
	b.loading = loading
}

// SetWidth sets the component width.
func (b *StatusBar) SetWidth(width int) {
	b.width = width
}

// View renders the status bar.
func (b *StatusBar) View() string {
	var left string
	switch {
	case b.loading:
		left = b.spinner.View() + " searching"
	case b.state == domain.StateShowingResults:
		left = fmt.Sprintf("%d results", b.count)
	case b.state == domain.StateSearching:
		left = "no matches"
	default:
		left = b.state.String()
	}

	return b.styles.StatusBar.Width(b.width).Render(left)
}
