package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotkit/spotkit/internal/core/domain"
)

func TestAddSection(t *testing.T) {
	vm := NewViewModel(testConfig(), nil)
	defer vm.Close()

	err := vm.AddSection(domain.Section{ID: "apps", Title: "Apps"})

	require.NoError(t, err)
	sections := vm.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "apps", sections[1].ID)
}

func TestAddSection_ReservedIDRejected(t *testing.T) {
	vm := NewViewModel(testConfig(), nil)
	defer vm.Close()

	err := vm.AddSection(domain.Section{ID: domain.HomeSectionID})

	assert.ErrorIs(t, err, domain.ErrReservedID)
	assert.Len(t, vm.Sections(), 1)
}

func TestRemoveSection_Multiplicity(t *testing.T) {
	vm := NewViewModel(testConfig(), nil)
	defer vm.Close()

	require.NoError(t, vm.AddSection(domain.Section{ID: "dup", Title: "first"}))
	require.NoError(t, vm.AddSection(domain.Section{ID: "keep"}))
	require.NoError(t, vm.AddSection(domain.Section{ID: "dup", Title: "second"}))

	removed := vm.RemoveSection("dup")

	assert.Equal(t, 2, removed)
	sections := vm.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, domain.HomeSectionID, sections[0].ID)
	assert.Equal(t, "keep", sections[1].ID)
}

func TestRemoveSection_NoMatch(t *testing.T) {
	vm := NewViewModel(testConfig(), nil)
	defer vm.Close()

	assert.Equal(t, 0, vm.RemoveSection("ghost"))
}

func TestRemoveSection_HomeNeverRemoved(t *testing.T) {
	vm := NewViewModel(testConfig(), nil)
	defer vm.Close()

	assert.Equal(t, 0, vm.RemoveSection(domain.HomeSectionID))
	require.Len(t, vm.Sections(), 1)
}

func TestRemoveSection_SelectedFallsBackToHome(t *testing.T) {
	vm := NewViewModel(testConfig(), nil,
		domain.Section{ID: "a"},
		domain.Section{ID: "b"},
	)
	defer vm.Close()

	require.True(t, vm.NavigateRight())
	require.True(t, vm.NavigateRight())
	require.Equal(t, 2, vm.SelectedSectionIndex())

	vm.RemoveSection("b")

	assert.Equal(t, 0, vm.SelectedSectionIndex())
	assert.Equal(t, domain.HomeSectionID, vm.ActiveSection().ID)
}

func TestRemoveSection_FocusedSectionDropsFocus(t *testing.T) {
	vm := NewViewModel(testConfig(), nil,
		domain.Section{ID: "a"},
	)
	defer vm.Close()

	require.True(t, vm.ActivateSection("a"))
	require.Equal(t, domain.StateFocusSection, vm.UIState())

	require.Equal(t, 1, vm.RemoveSection("a"))

	assert.Equal(t, domain.StateIdle, vm.UIState())
	assert.Equal(t, 0, vm.SelectedSectionIndex())
}

func TestRemoveSection_EarlierRemovalTracksSelection(t *testing.T) {
	vm := NewViewModel(testConfig(), nil,
		domain.Section{ID: "a"},
		domain.Section{ID: "b"},
	)
	defer vm.Close()

	require.True(t, vm.ActivateSection("b"))
	require.Equal(t, 2, vm.SelectedSectionIndex())

	require.Equal(t, 1, vm.RemoveSection("a"))

	// The selection follows the same section to its new index.
	assert.Equal(t, 1, vm.SelectedSectionIndex())
	assert.Equal(t, "b", vm.ActiveSection().ID)
	assert.Equal(t, domain.StateFocusSection, vm.UIState())
}

func TestVisibleSections_PredicateRecomputed(t *testing.T) {
	visible := true
	vm := NewViewModel(testConfig(), nil,
		domain.Section{ID: "sometimes", Visible: func() bool { return visible }},
		domain.Section{ID: "always"},
	)
	defer vm.Close()

	require.Len(t, vm.VisibleSections(), 3)

	visible = false
	got := vm.VisibleSections()
	require.Len(t, got, 2)
	assert.Equal(t, domain.HomeSectionID, got[0].ID)
	assert.Equal(t, "always", got[1].ID)

	visible = true
	assert.Len(t, vm.VisibleSections(), 3)
}

func TestActiveSection(t *testing.T) {
	vm := NewViewModel(testConfig(), nil,
		domain.Section{ID: "apps", Title: "Apps"},
	)
	defer vm.Close()

	assert.Equal(t, domain.HomeSectionID, vm.ActiveSection().ID)
	require.True(t, vm.NavigateRight())
	assert.Equal(t, "apps", vm.ActiveSection().ID)
}

func TestSectionByShortcut(t *testing.T) {
	sc := domain.Shortcut{Key: 'r', Mods: domain.ModCtrl}
	vm := NewViewModel(testConfig(), nil,
		domain.Section{ID: "recents", Shortcut: sc},
	)
	defer vm.Close()

	got, ok := vm.SectionByShortcut(sc)
	require.True(t, ok)
	assert.Equal(t, "recents", got.ID)

	_, ok = vm.SectionByShortcut(domain.Shortcut{Key: 'z'})
	assert.False(t, ok)

	_, ok = vm.SectionByShortcut(domain.Shortcut{})
	assert.False(t, ok)
}
