package domain

// EventKind enumerates the discrete input events the state machine
// understands. Unrecognized kinds are always ignored.
type EventKind int

const (
	// EventMoveUp moves the result selection up.
	EventMoveUp EventKind = iota

	// EventMoveDown moves the result selection down.
	EventMoveDown

	// EventMoveLeft selects the previous section.
	EventMoveLeft

	// EventMoveRight selects the next section.
	EventMoveRight

	// EventConfirm commits the current selection, or drills into a
	// non-default section.
	EventConfirm

	// EventCancel fully resets the overlay.
	EventCancel

	// EventActivateSection activates the section named by SectionID.
	EventActivateSection
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventMoveUp:
		return "move_up"
	case EventMoveDown:
		return "move_down"
	case EventMoveLeft:
		return "move_left"
	case EventMoveRight:
		return "move_right"
	case EventConfirm:
		return "confirm"
	case EventCancel:
		return "cancel"
	case EventActivateSection:
		return "activate_section"
	default:
		return "unknown"
	}
}

// InputEvent is a discrete input event fed into the state machine by
// the UI collaborator. The handled/ignored return of HandleEvent tells
// the UI whether to suppress its default key handling.
type InputEvent struct {
	// Kind identifies the event.
	Kind EventKind

	// SectionID is the target for EventActivateSection.
	SectionID string
}
