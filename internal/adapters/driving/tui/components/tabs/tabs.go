// Package tabs provides the section strip component for the TUI.
package tabs

import (
	"strings"

	"github.com/spotkit/spotkit/internal/adapters/driving/tui/styles"
	"github.com/spotkit/spotkit/internal/core/domain"
)

// SectionTabs renders the horizontal strip of visible sections. The
// active index lives in the overlay core; the strip only displays it.
type SectionTabs struct {
	sections []domain.Section
	active   int
	styles   *styles.Styles
}

// NewSectionTabs creates a new section strip component.
func NewSectionTabs(s *styles.Styles) *SectionTabs {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &SectionTabs{styles: s}
}

// SetSections replaces the displayed sections.
func (t *SectionTabs) SetSections(sections []domain.Section) {
	t.sections = sections
	if t.active >= len(sections) {
		t.active = 0
	}
}

// SetActive sets the highlighted section index. A negative index
// clears the highlight.
func (t *SectionTabs) SetActive(index int) {
	if index < len(t.sections) {
		t.active = index
	}
}

// Active returns the highlighted section index.
func (t *SectionTabs) Active() int {
	return t.active
}

// Count returns the number of displayed sections.
func (t *SectionTabs) Count() int {
	return len(t.sections)
}

// View renders the section strip. A single section renders nothing;
// the strip only earns space when there is a choice to make.
func (t *SectionTabs) View() string {
	if len(t.sections) < 2 {
		return ""
	}

	parts := make([]string, 0, len(t.sections))
	for i, section := range t.sections {
		label := section.Title
		if section.Icon != "" {
			label = section.Icon + " " + label
		}
		if hint := shortcutHint(section.Shortcut); hint != "" {
			label += " " + hint
		}

		if i == t.active {
			parts = append(parts, t.styles.SectionActive.Render("["+label+"]"))
		} else {
			parts = append(parts, t.styles.SectionInactive.Render(" "+label+" "))
		}
	}

	return strings.Join(parts, " ")
}

// shortcutHint formats a section shortcut for display, e.g. "(⌥R)".
func shortcutHint(sc domain.Shortcut) string {
	if sc.Key == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("(")
	if sc.Mods&domain.ModCtrl != 0 {
		b.WriteString("^")
	}
	if sc.Mods&domain.ModAlt != 0 {
		b.WriteString("⌥")
	}
	if sc.Mods&domain.ModShift != 0 {
		b.WriteString("⇧")
	}
	b.WriteRune(sc.Key)
	b.WriteString(")")
	return b.String()
}
