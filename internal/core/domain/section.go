package domain

// HomeSectionID is the reserved identifier of the section synthesized
// from the overlay configuration at construction time. It always sits
// at index 0 of the registry, cannot be removed, and user sections may
// not claim it.
const HomeSectionID = "spotkit.home"

// Modifier is a bit set of keyboard modifiers for section shortcuts.
type Modifier uint8

const (
	// ModCtrl is the control key.
	ModCtrl Modifier = 1 << iota
	// ModAlt is the alt/option key.
	ModAlt
	// ModShift is the shift key.
	ModShift
)

// Shortcut is an optional keyboard shortcut that activates a section
// directly. The zero value means no shortcut.
type Shortcut struct {
	// Key is the shortcut rune (e.g. '1', 'r').
	Key rune

	// Mods is the required modifier set.
	Mods Modifier
}

// IsZero reports whether no shortcut is configured.
func (s Shortcut) IsZero() bool {
	return s.Key == 0 && s.Mods == 0
}

// Section is a named search scope over items. Sections are supplied at
// construction or added dynamically; the registry keeps them ordered,
// with the synthesized home section always first.
type Section struct {
	// ID identifies the section for removal and activation. User ids
	// are not uniqueness-enforced; removal by id removes all matches.
	ID string

	// Title is the optional display title.
	Title string

	// Icon is an optional symbolic icon name.
	Icon string

	// OnSelect is invoked with the chosen item when a selection is
	// committed while this section is active.
	OnSelect func(Item)

	// Shortcut optionally activates this section directly.
	Shortcut Shortcut

	// Visible controls whether the section is currently listed. It is
	// re-evaluated on every VisibleSections call and must therefore be
	// cheap and side-effect free. nil means always visible.
	Visible func() bool

	// Content optionally supplies custom rendered content shown in
	// place of the result list when the section has focus.
	Content func() string
}

// IsVisible evaluates the visibility predicate.
func (s Section) IsVisible() bool {
	return s.Visible == nil || s.Visible()
}

// HasContent reports whether the section renders custom content
// instead of a result list.
func (s Section) HasContent() bool {
	return s.Content != nil
}
