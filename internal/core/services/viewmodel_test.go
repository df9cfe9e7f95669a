package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotkit/spotkit/internal/core/domain"
)

// MockDataSource implements driven.DataSource for testing and records
// every dispatched query.
type MockDataSource struct {
	mu          sync.Mutex
	ListAllFunc func(ctx context.Context) ([]domain.Item, error)
	SearchFunc  func(ctx context.Context, query string) ([]domain.Item, error)
	queries     []string
}

func (m *MockDataSource) ListAll(ctx context.Context) ([]domain.Item, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []domain.Item{}, nil
}

func (m *MockDataSource) Search(ctx context.Context, query string) ([]domain.Item, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	fn := m.SearchFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query)
	}
	return []domain.Item{}, nil
}

// Queries returns a copy of the dispatched queries.
func (m *MockDataSource) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queries))
	copy(out, m.queries)
	return out
}

func testItems(names ...string) []domain.Item {
	items := make([]domain.Item, 0, len(names))
	for _, n := range names {
		items = append(items, domain.StaticItem{Key: n, Name: n})
	}
	return items
}

// testConfig keeps the debounce short so temporal tests stay fast.
func testConfig() domain.Config {
	return domain.Config{
		Title:            "Test",
		DebounceInterval: 20 * time.Millisecond,
	}
}

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func TestNewViewModel_InitialState(t *testing.T) {
	vm := NewViewModel(testConfig(), nil)

	assert.Equal(t, domain.StateIdle, vm.UIState())
	assert.Equal(t, "", vm.QueryText())
	assert.Empty(t, vm.Results())
	assert.Equal(t, 0, vm.SelectedResultIndex())
	assert.Equal(t, 0, vm.SelectedSectionIndex())
	assert.False(t, vm.IsLoading())
}

func TestNewViewModel_SynthesizesHomeSection(t *testing.T) {
	vm := NewViewModel(domain.Config{Title: "Files", Icon: "folder"}, nil,
		domain.Section{ID: "extra"},
	)

	sections := vm.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, domain.HomeSectionID, sections[0].ID)
	assert.Equal(t, "Files", sections[0].Title)
	assert.Equal(t, "folder", sections[0].Icon)
	assert.Equal(t, "extra", sections[1].ID)
}

func TestNewViewModel_DropsReservedUserSection(t *testing.T) {
	vm := NewViewModel(testConfig(), nil,
		domain.Section{ID: domain.HomeSectionID, Title: "impostor"},
	)

	sections := vm.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, "Test", sections[0].Title)
}

func TestDebounce_CoalescesRapidMutations(t *testing.T) {
	source := &MockDataSource{
		SearchFunc: func(_ context.Context, _ string) ([]domain.Item, error) {
			return testItems("hit"), nil
		},
	}
	vm := NewViewModel(testConfig(), source)
	defer vm.Close()

	vm.SetQueryText("a")
	vm.SetQueryText("ab")
	vm.SetQueryText("abc")

	require.Eventually(t, func() bool {
		return vm.UIState() == domain.StateShowingResults
	}, waitFor, tick)

	// Only the settled value fires, exactly once.
	time.Sleep(3 * vm.Config().DebounceInterval)
	assert.Equal(t, []string{"abc"}, source.Queries())
	assert.Equal(t, 0, vm.SelectedResultIndex())
}

func TestDebounce_DuplicateSettledValueSuppressed(t *testing.T) {
	source := &MockDataSource{
		SearchFunc: func(_ context.Context, _ string) ([]domain.Item, error) {
			return testItems("hit"), nil
		},
	}
	vm := NewViewModel(testConfig(), source)
	defer vm.Close()

	vm.SetQueryText("abc")
	require.Eventually(t, func() bool {
		return len(source.Queries()) == 1
	}, waitFor, tick)

	// Mutate away and back within one debounce window: the settled
	// value equals the last issued one, so no redundant query fires.
	vm.SetQueryText("ab")
	vm.SetQueryText("abc")
	time.Sleep(4 * vm.Config().DebounceInterval)
	assert.Equal(t, []string{"abc"}, source.Queries())

	// After a reset the same text queries again.
	vm.Reset()
	vm.SetQueryText("abc")
	require.Eventually(t, func() bool {
		return len(source.Queries()) == 2
	}, waitFor, tick)
}

func TestSetQueryText_EmptyShortCircuit(t *testing.T) {
	source := &MockDataSource{
		SearchFunc: func(_ context.Context, _ string) ([]domain.Item, error) {
			return testItems("a", "b"), nil
		},
	}
	vm := NewViewModel(testConfig(), source)
	defer vm.Close()

	vm.SetQueryText("abc")
	require.Eventually(t, func() bool {
		return vm.UIState() == domain.StateShowingResults
	}, waitFor, tick)

	vm.SetQueryText("")

	// Immediate, no debounce wait, no query dispatched for "".
	assert.Equal(t, domain.StateIdle, vm.UIState())
	assert.Empty(t, vm.Results())
	assert.Equal(t, 0, vm.SelectedResultIndex())
	assert.False(t, vm.IsLoading())
	assert.Equal(t, []string{"abc"}, source.Queries())
}

func TestStaleQuery_NeverApplies(t *testing.T) {
	foo := testItems("foo-result")
	bar := testItems("bar-result")

	source := &MockDataSource{
		SearchFunc: func(_ context.Context, query string) ([]domain.Item, error) {
			if query == "foo" {
				// Slow query, superseded before it resolves.
				time.Sleep(120 * time.Millisecond)
				return foo, nil
			}
			return bar, nil
		},
	}
	vm := NewViewModel(testConfig(), source)
	defer vm.Close()

	vm.SetQueryText("foo")
	require.Eventually(t, vm.IsLoading, waitFor, tick)

	vm.SetQueryText("bar")
	require.Eventually(t, func() bool {
		results := vm.Results()
		return len(results) == 1 && results[0].ID() == "bar-result"
	}, waitFor, tick)

	// Let the stale foo query resolve; its results must not appear.
	time.Sleep(200 * time.Millisecond)
	results := vm.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "bar-result", results[0].ID())
	assert.Equal(t, domain.StateShowingResults, vm.UIState())
}

func TestQuery_EmptyResultSet_StaysSearching(t *testing.T) {
	source := &MockDataSource{}
	vm := NewViewModel(testConfig(), source)
	defer vm.Close()

	vm.SetQueryText("nothing-matches")

	require.Eventually(t, func() bool {
		return len(source.Queries()) == 1 && !vm.IsLoading()
	}, waitFor, tick)
	assert.Equal(t, domain.StateSearching, vm.UIState())
	assert.Empty(t, vm.Results())
}

func TestQuery_SourceErrorTreatedAsZeroResults(t *testing.T) {
	source := &MockDataSource{
		SearchFunc: func(_ context.Context, _ string) ([]domain.Item, error) {
			return nil, errors.New("disk on fire")
		},
	}
	vm := NewViewModel(testConfig(), source)
	defer vm.Close()

	vm.SetQueryText("abc")

	require.Eventually(t, func() bool {
		return len(source.Queries()) == 1 && !vm.IsLoading()
	}, waitFor, tick)
	assert.Equal(t, domain.StateSearching, vm.UIState())
	assert.Empty(t, vm.Results())
}

func TestQuery_ResultsTruncatedToMaxResults(t *testing.T) {
	source := &MockDataSource{
		SearchFunc: func(_ context.Context, _ string) ([]domain.Item, error) {
			return testItems("a", "b", "c", "d", "e"), nil
		},
	}
	cfg := testConfig()
	cfg.MaxResults = 3
	vm := NewViewModel(cfg, source)
	defer vm.Close()

	vm.SetQueryText("x")

	require.Eventually(t, func() bool {
		return vm.UIState() == domain.StateShowingResults
	}, waitFor, tick)
	assert.Len(t, vm.Results(), 3)
}

func TestSnapshotFallback_NoDataSource(t *testing.T) {
	vm := NewViewModel(testConfig(), nil).WithItems(
		domain.StaticItem{Key: "1", Name: "Apple"},
		domain.StaticItem{Key: "2", Name: "Banana"},
		domain.StaticItem{Key: "3", Name: "Pineapple"},
	)
	defer vm.Close()

	vm.SetQueryText("apple")

	require.Eventually(t, func() bool {
		return vm.UIState() == domain.StateShowingResults
	}, waitFor, tick)

	results := vm.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "Apple", results[0].Title())
	assert.Equal(t, "Pineapple", results[1].Title())
}

func TestNavigate_IndexClampInvariant(t *testing.T) {
	source := &MockDataSource{
		SearchFunc: func(_ context.Context, _ string) ([]domain.Item, error) {
			return testItems("a", "b", "c"), nil
		},
	}
	vm := NewViewModel(testConfig(), source)
	defer vm.Close()

	check := func() {
		idx := vm.SelectedResultIndex()
		n := len(vm.Results())
		if n == 0 {
			n = 1
		}
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, n)
	}

	// Empty results: up/down are no-ops at index 0.
	assert.False(t, vm.NavigateUp())
	assert.False(t, vm.NavigateDown())
	check()

	vm.SetQueryText("x")
	require.Eventually(t, func() bool {
		return vm.UIState() == domain.StateShowingResults
	}, waitFor, tick)
	check()

	assert.False(t, vm.NavigateUp()) // already at 0
	check()
	assert.True(t, vm.NavigateDown())
	assert.True(t, vm.NavigateDown())
	check()
	assert.Equal(t, 2, vm.SelectedResultIndex())
	assert.False(t, vm.NavigateDown()) // bottom boundary
	check()
	assert.True(t, vm.NavigateUp())
	check()
	assert.Equal(t, 1, vm.SelectedResultIndex())
}

func TestNavigate_SectionAxis(t *testing.T) {
	vm := NewViewModel(testConfig(), nil,
		domain.Section{ID: "recents", Title: "Recents"},
		domain.Section{ID: "apps", Title: "Apps"},
	)
	defer vm.Close()

	assert.False(t, vm.NavigateLeft()) // left boundary
	assert.True(t, vm.NavigateRight())
	assert.True(t, vm.NavigateRight())
	assert.Equal(t, 2, vm.SelectedSectionIndex())
	assert.False(t, vm.NavigateRight()) // right boundary
	assert.True(t, vm.NavigateLeft())
	assert.Equal(t, 1, vm.SelectedSectionIndex())
	assert.Equal(t, domain.StateIdle, vm.UIState())
}

func TestNavigate_SectionAxisSkipsHiddenSections(t *testing.T) {
	vm := NewViewModel(testConfig(), nil,
		domain.Section{ID: "hidden", Visible: func() bool { return false }},
		domain.Section{ID: "apps", Title: "Apps"},
	)
	defer vm.Close()

	// Right steps over the hidden section straight onto "apps".
	assert.True(t, vm.NavigateRight())
	assert.Equal(t, 2, vm.SelectedSectionIndex())
	assert.Equal(t, "apps", vm.ActiveSection().ID)
	assert.False(t, vm.NavigateRight())

	// And left steps back over it onto home.
	assert.True(t, vm.NavigateLeft())
	assert.Equal(t, 0, vm.SelectedSectionIndex())
}

func TestNavigate_NoVisibleSectionRightward(t *testing.T) {
	vm := NewViewModel(testConfig(), nil,
		domain.Section{ID: "hidden", Visible: func() bool { return false }},
	)
	defer vm.Close()

	assert.False(t, vm.NavigateRight())
	assert.Equal(t, 0, vm.SelectedSectionIndex())
}

func TestNavigate_SectionAxisLockedWhileSearching(t *testing.T) {
	source := &MockDataSource{
		SearchFunc: func(_ context.Context, _ string) ([]domain.Item, error) {
			return testItems("a"), nil
		},
	}
	vm := NewViewModel(testConfig(), source,
		domain.Section{ID: "recents"},
	)
	defer vm.Close()

	vm.SetQueryText("x")
	require.Eventually(t, func() bool {
		return vm.UIState() == domain.StateShowingResults
	}, waitFor, tick)

	// state != idle: the section axis must not move.
	assert.False(t, vm.NavigateRight())
	assert.False(t, vm.NavigateLeft())
	assert.False(t, vm.ActivateSection("recents"))
	assert.Equal(t, 0, vm.SelectedSectionIndex())
}

func TestActivateSection(t *testing.T) {
	vm := NewViewModel(testConfig(), nil,
		domain.Section{ID: "recents", Title: "Recents"},
	)
	defer vm.Close()

	assert.False(t, vm.ActivateSection("missing"))
	assert.True(t, vm.ActivateSection("recents"))
	assert.Equal(t, 1, vm.SelectedSectionIndex())
	assert.Equal(t, domain.StateFocusSection, vm.UIState())
}

func TestSelectCurrent_DispatchThenReset(t *testing.T) {
	source := &MockDataSource{
		SearchFunc: func(_ context.Context, _ string) ([]domain.Item, error) {
			return testItems("A", "B"), nil
		},
	}

	var (
		gotItems  []domain.Item
		stateSeen domain.UIState
		querySeen string
	)
	var vm *ViewModel
	cfg := testConfig()
	cfg.OnSelect = func(item domain.Item) {
		gotItems = append(gotItems, item)
		// The callback observes the pre-reset state.
		stateSeen = vm.UIState()
		querySeen = vm.QueryText()
	}
	vm = NewViewModel(cfg, source)
	defer vm.Close()

	vm.SetQueryText("ab")
	require.Eventually(t, func() bool {
		return vm.UIState() == domain.StateShowingResults
	}, waitFor, tick)
	require.True(t, vm.NavigateDown())

	require.True(t, vm.SelectCurrent())

	require.Len(t, gotItems, 1)
	assert.Equal(t, "B", gotItems[0].ID())
	assert.Equal(t, domain.StateShowingResults, stateSeen)
	assert.Equal(t, "ab", querySeen)

	// Full reset after dispatch.
	assert.Equal(t, "", vm.QueryText())
	assert.Empty(t, vm.Results())
	assert.Equal(t, domain.StateIdle, vm.UIState())
	assert.Equal(t, 0, vm.SelectedResultIndex())
	assert.Equal(t, 0, vm.SelectedSectionIndex())
}

func TestSelectCurrent_EmptyResultsNoOp(t *testing.T) {
	called := false
	cfg := testConfig()
	cfg.OnSelect = func(domain.Item) { called = true }
	vm := NewViewModel(cfg, nil)
	defer vm.Close()

	assert.False(t, vm.SelectCurrent())
	assert.False(t, called)
}

func TestSelectCurrent_NilSectionCallbackFallsBack(t *testing.T) {
	source := &MockDataSource{
		SearchFunc: func(_ context.Context, _ string) ([]domain.Item, error) {
			return testItems("hit"), nil
		},
	}

	var committed []domain.Item
	cfg := testConfig()
	cfg.OnSelect = func(item domain.Item) { committed = append(committed, item) }
	vm := NewViewModel(cfg, source,
		domain.Section{ID: "apps"}, // no callback of its own
	)
	defer vm.Close()

	require.True(t, vm.NavigateRight()) // onto "apps"
	vm.SetQueryText("x")
	require.Eventually(t, func() bool {
		return vm.UIState() == domain.StateShowingResults
	}, waitFor, tick)

	require.True(t, vm.SelectCurrent())
	require.Len(t, committed, 1)
	assert.Equal(t, "hit", committed[0].ID())
}

func TestConfirm_DrillsIntoNonDefaultSection(t *testing.T) {
	source := &MockDataSource{
		SearchFunc: func(_ context.Context, _ string) ([]domain.Item, error) {
			return testItems("hit"), nil
		},
	}

	var committed []domain.Item
	vm := NewViewModel(testConfig(), source,
		domain.Section{
			ID:       "apps",
			OnSelect: func(item domain.Item) { committed = append(committed, item) },
		},
	)
	defer vm.Close()

	require.True(t, vm.NavigateRight()) // onto "apps"
	vm.SetQueryText("x")
	require.Eventually(t, func() bool {
		return vm.UIState() == domain.StateShowingResults
	}, waitFor, tick)

	// First confirm drills in without committing.
	require.True(t, vm.HandleEvent(domain.InputEvent{Kind: domain.EventConfirm}))
	assert.Equal(t, domain.StateFocusSection, vm.UIState())
	assert.Empty(t, committed)

	// Second confirm commits to the focused section.
	require.True(t, vm.HandleEvent(domain.InputEvent{Kind: domain.EventConfirm}))
	require.Len(t, committed, 1)
	assert.Equal(t, "hit", committed[0].ID())
	assert.Equal(t, domain.StateIdle, vm.UIState())
}

func TestHandleEvent(t *testing.T) {
	source := &MockDataSource{
		SearchFunc: func(_ context.Context, _ string) ([]domain.Item, error) {
			return testItems("a", "b"), nil
		},
	}
	vm := NewViewModel(testConfig(), source,
		domain.Section{ID: "recents"},
	)
	defer vm.Close()

	vm.SetQueryText("x")
	require.Eventually(t, func() bool {
		return vm.UIState() == domain.StateShowingResults
	}, waitFor, tick)

	assert.True(t, vm.HandleEvent(domain.InputEvent{Kind: domain.EventMoveDown}))
	assert.True(t, vm.HandleEvent(domain.InputEvent{Kind: domain.EventMoveUp}))
	assert.False(t, vm.HandleEvent(domain.InputEvent{Kind: domain.EventMoveLeft}))

	// Unrecognized events are always ignored.
	assert.False(t, vm.HandleEvent(domain.InputEvent{Kind: domain.EventKind(99)}))

	assert.True(t, vm.HandleEvent(domain.InputEvent{Kind: domain.EventCancel}))
	assert.Equal(t, domain.StateIdle, vm.UIState())
	assert.Equal(t, "", vm.QueryText())

	assert.True(t, vm.HandleEvent(domain.InputEvent{
		Kind:      domain.EventActivateSection,
		SectionID: "recents",
	}))
	assert.Equal(t, domain.StateFocusSection, vm.UIState())
}

func TestReload_RefreshesSnapshot(t *testing.T) {
	var (
		mu    sync.Mutex
		items = testItems("one")
	)
	source := &MockDataSource{
		ListAllFunc: func(_ context.Context) ([]domain.Item, error) {
			mu.Lock()
			defer mu.Unlock()
			return items, nil
		},
	}
	vm := NewViewModel(testConfig(), source)
	defer vm.Close()

	require.Eventually(t, func() bool {
		return vm.SnapshotSize() == 1
	}, waitFor, tick)

	mu.Lock()
	items = testItems("one", "two")
	mu.Unlock()

	vm.Reload()
	require.Eventually(t, func() bool {
		return vm.SnapshotSize() == 2
	}, waitFor, tick)
}

func TestSubscribe_NotifiedOnMutation(t *testing.T) {
	vm := NewViewModel(testConfig(), nil)
	defer vm.Close()

	var (
		mu    sync.Mutex
		calls int
	)
	vm.Subscribe(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	vm.SetQueryText("a")

	mu.Lock()
	n := calls
	mu.Unlock()
	assert.Positive(t, n)
}
