package domain

// UIState is the coarse state of the overlay state machine.
type UIState int

const (
	// StateIdle is the initial state: no query text, browsing sections.
	StateIdle UIState = iota

	// StateSearching covers an in-flight or settled query that has not
	// produced any results. A non-empty query with zero hits stays in
	// this state rather than a dedicated "no results" state.
	StateSearching

	// StateShowingResults means a settled query produced results that
	// are currently displayed.
	StateShowingResults

	// StateShowingSections is the expanded section browser.
	StateShowingSections

	// StateFocusSection means a non-default section has been drilled
	// into without committing a selection.
	StateFocusSection
)

// String returns the string representation of the state.
func (s UIState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateShowingResults:
		return "showing_results"
	case StateShowingSections:
		return "showing_sections"
	case StateFocusSection:
		return "focus_section"
	default:
		return "unknown"
	}
}
