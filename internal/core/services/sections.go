package services

import (
	"github.com/spotkit/spotkit/internal/core/domain"
	"github.com/spotkit/spotkit/internal/logger"
)

// AddSection appends a section to the registry. User section ids are
// not uniqueness-enforced, but the reserved home id is rejected so it
// can never collide with a user-supplied section.
func (vm *ViewModel) AddSection(s domain.Section) error {
	if s.ID == domain.HomeSectionID {
		return domain.ErrReservedID
	}

	vm.mu.Lock()
	vm.sections = append(vm.sections, s)
	vm.mu.Unlock()

	logger.Debug("Section added: %q (%d total)", s.ID, vm.sectionCount())
	vm.notify()
	return nil
}

// RemoveSection removes every section whose id matches and returns the
// number removed. Removal may match zero, one, or many sections; the
// home section at index 0 is never removed. The section selection
// keeps tracking the same section when earlier entries are removed;
// removing the selected section itself falls back to home and drops
// any section focus.
func (vm *ViewModel) RemoveSection(id string) int {
	if id == domain.HomeSectionID {
		return 0
	}

	vm.mu.Lock()
	kept := vm.sections[:1]
	removed := 0
	displaced := false
	newIndex := vm.sectionIndex
	for i, s := range vm.sections[1:] {
		at := i + 1
		if s.ID == id {
			removed++
			switch {
			case at == vm.sectionIndex:
				displaced = true
			case at < vm.sectionIndex:
				newIndex--
			}
			continue
		}
		kept = append(kept, s)
	}
	vm.sections = kept
	if displaced {
		newIndex = 0
		if vm.state == domain.StateFocusSection {
			vm.state = domain.StateIdle
		}
	}
	if newIndex < 0 || newIndex >= len(vm.sections) {
		newIndex = 0
	}
	vm.sectionIndex = newIndex
	vm.mu.Unlock()

	if removed > 0 {
		logger.Debug("Sections removed: %d matching %q", removed, id)
		vm.notify()
	}
	return removed
}

// VisibleSections lists sections whose visibility predicate currently
// evaluates true. Predicates are re-evaluated on every call and are
// expected to be cheap and side-effect free.
func (vm *ViewModel) VisibleSections() []domain.Section {
	vm.mu.Lock()
	all := make([]domain.Section, len(vm.sections))
	copy(all, vm.sections)
	vm.mu.Unlock()

	visible := make([]domain.Section, 0, len(all))
	for _, s := range all {
		if s.IsVisible() {
			visible = append(visible, s)
		}
	}
	return visible
}

// Sections returns a copy of the full ordered registry.
func (vm *ViewModel) Sections() []domain.Section {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]domain.Section, len(vm.sections))
	copy(out, vm.sections)
	return out
}

// ActiveSection returns the currently selected section.
func (vm *ViewModel) ActiveSection() domain.Section {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	idx := vm.sectionIndex
	if idx < 0 || idx >= len(vm.sections) {
		idx = 0
	}
	return vm.sections[idx]
}

// SectionByShortcut resolves a section by its keyboard shortcut.
func (vm *ViewModel) SectionByShortcut(sc domain.Shortcut) (domain.Section, bool) {
	if sc.IsZero() {
		return domain.Section{}, false
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for _, s := range vm.sections {
		if s.Shortcut == sc {
			return s, true
		}
	}
	return domain.Section{}, false
}

func (vm *ViewModel) sectionCount() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return len(vm.sections)
}
