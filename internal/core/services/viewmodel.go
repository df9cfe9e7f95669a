package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/spotkit/spotkit/internal/core/domain"
	"github.com/spotkit/spotkit/internal/core/ports/driven"
	"github.com/spotkit/spotkit/internal/core/ports/driving"
	"github.com/spotkit/spotkit/internal/logger"
)

// Ensure ViewModel implements the driving port.
var _ driving.Overlay = (*ViewModel)(nil)

// ViewModel is the spotlight overlay core. It owns the navigation
// state exclusively and serializes every mutation behind one mutex, so
// callers form a single logical execution context regardless of which
// goroutine delivers an event.
//
// Searching is single-flight: arming a new query cancels the previous
// one, and a completed query only applies its results if its
// generation is still current. Debouncing is last-writer-wins: only
// the final settled query text fires.
type ViewModel struct {
	mu sync.Mutex

	cfg    domain.Config
	source driven.DataSource
	ctx    context.Context

	// sections is the ordered registry; index 0 is the synthesized
	// home section.
	sections []domain.Section

	queryText    string
	results      []domain.Item
	resultIndex  int
	sectionIndex int
	state        domain.UIState
	loading      bool

	// allItems is the cached full snapshot, used as the fallback
	// filter source when no data source is configured for search.
	allItems []domain.Item

	// lastIssued is the last settled value that triggered a query,
	// used for duplicate suppression. Cleared on reset and on empty
	// text so retyping the same query after a clear fires again.
	lastIssued string

	// debounceGen invalidates superseded debounce timers; a timer that
	// fires with a stale generation does nothing.
	debounceGen   uint64
	debounceTimer *time.Timer

	// searchGen invalidates superseded queries; results only apply
	// when the completing query's generation is still current.
	searchGen    uint64
	cancelSearch context.CancelFunc

	// reloadGen invalidates superseded snapshot reloads.
	reloadGen uint64

	observers []func()
}

// NewViewModel creates an overlay core from the given configuration,
// optional data source, and initial user sections. The home section is
// synthesized from the configuration and prepended at index 0. When a
// data source is present the full snapshot is loaded asynchronously.
func NewViewModel(cfg domain.Config, source driven.DataSource, sections ...domain.Section) *ViewModel {
	cfg = cfg.WithDefaults()

	vm := &ViewModel{
		cfg:    cfg,
		source: source,
		ctx:    context.Background(),
		state:  domain.StateIdle,
	}

	home := domain.Section{
		ID:       domain.HomeSectionID,
		Title:    cfg.Title,
		Icon:     cfg.Icon,
		OnSelect: cfg.OnSelect,
	}
	vm.sections = append(vm.sections, home)

	for _, s := range sections {
		if s.ID == domain.HomeSectionID {
			logger.Warn("Dropping section with reserved id %q", s.ID)
			continue
		}
		vm.sections = append(vm.sections, s)
	}

	if source != nil {
		vm.Reload()
	}

	return vm
}

// WithContext sets the base context for asynchronous work. Queries and
// reloads derive their cancelable contexts from it.
func (vm *ViewModel) WithContext(ctx context.Context) *ViewModel {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.ctx = ctx
	return vm
}

// WithItems seeds the cached snapshot directly. This is how overlays
// without a data source get a searchable universe; the snapshot filter
// then serves every query.
func (vm *ViewModel) WithItems(items ...domain.Item) *ViewModel {
	vm.mu.Lock()
	vm.allItems = append([]domain.Item(nil), items...)
	vm.mu.Unlock()
	return vm
}

// Subscribe registers an observer invoked after every observable state
// mutation. Observers run outside the internal lock and may call back
// into the view model.
func (vm *ViewModel) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.observers = append(vm.observers, fn)
}

// notify invokes all observers. Must be called without the lock held.
func (vm *ViewModel) notify() {
	vm.mu.Lock()
	obs := make([]func(), len(vm.observers))
	copy(obs, vm.observers)
	vm.mu.Unlock()

	for _, fn := range obs {
		fn()
	}
}

// SetQueryText records a query text mutation and (re)arms the debounce
// timer. The empty string short-circuits immediately: pending and
// in-flight work is discarded, results clear, and the state machine
// returns to idle without dispatching a query.
func (vm *ViewModel) SetQueryText(text string) {
	vm.mu.Lock()

	if text == vm.queryText {
		vm.mu.Unlock()
		return
	}
	vm.queryText = text

	// Supersede any pending debounce timer.
	vm.debounceGen++
	if vm.debounceTimer != nil {
		vm.debounceTimer.Stop()
		vm.debounceTimer = nil
	}

	if text == "" {
		vm.clearSearchLocked()
		vm.mu.Unlock()
		vm.notify()
		return
	}

	gen := vm.debounceGen
	vm.debounceTimer = time.AfterFunc(vm.cfg.DebounceInterval, func() {
		vm.settle(gen, text)
	})

	vm.mu.Unlock()
	vm.notify()
}

// clearSearchLocked cancels in-flight work and returns the search axis
// to idle. Caller holds the lock.
func (vm *ViewModel) clearSearchLocked() {
	vm.cancelInFlightLocked()
	vm.lastIssued = ""
	vm.results = nil
	vm.resultIndex = 0
	vm.loading = false
	vm.state = domain.StateIdle
}

// cancelInFlightLocked invalidates the current query, if any. The
// canceled task observes either its context or its stale generation
// and exits without mutating state. Caller holds the lock.
func (vm *ViewModel) cancelInFlightLocked() {
	vm.searchGen++
	if vm.cancelSearch != nil {
		vm.cancelSearch()
		vm.cancelSearch = nil
	}
}

// settle runs when a debounce timer elapses. A stale generation means
// the timer was superseded by a later keystroke; a settled value equal
// to the last issued one is suppressed as a duplicate.
func (vm *ViewModel) settle(gen uint64, text string) {
	vm.mu.Lock()

	if gen != vm.debounceGen {
		vm.mu.Unlock()
		return
	}
	if text == vm.lastIssued {
		logger.Debug("Suppressing duplicate query %q", text)
		vm.mu.Unlock()
		return
	}

	vm.cancelInFlightLocked()
	vm.lastIssued = text
	vm.loading = true
	vm.state = domain.StateSearching

	searchGen := vm.searchGen
	ctx, cancel := context.WithCancel(vm.ctx)
	vm.cancelSearch = cancel

	vm.mu.Unlock()
	vm.notify()

	go vm.runQuery(ctx, searchGen, text)
}

// runQuery executes one cancelable query task. Cancellation is
// cooperative: the fetch itself is not forcibly stopped, but a stale
// task applies nothing on return.
func (vm *ViewModel) runQuery(ctx context.Context, gen uint64, text string) {
	items, err := vm.fetch(ctx, text)

	vm.mu.Lock()
	if gen != vm.searchGen || ctx.Err() != nil {
		// Superseded while fetching; a later query owns the state now.
		vm.mu.Unlock()
		return
	}
	if err != nil {
		logger.Warn("Query %q failed: %v", text, err)
		items = nil
	}
	if len(items) > vm.cfg.MaxResults {
		items = items[:vm.cfg.MaxResults]
	}

	vm.results = items
	vm.resultIndex = 0
	vm.loading = false
	vm.cancelSearch = nil
	if len(items) > 0 {
		vm.state = domain.StateShowingResults
	} else {
		vm.state = domain.StateSearching
	}
	vm.mu.Unlock()
	vm.notify()
}

// fetch resolves the query against the data source, or against the
// cached snapshot when no source is configured.
func (vm *ViewModel) fetch(ctx context.Context, text string) ([]domain.Item, error) {
	vm.mu.Lock()
	source := vm.source
	vm.mu.Unlock()

	if source != nil {
		return source.Search(ctx, text)
	}
	return vm.filterSnapshot(text), nil
}

// filterSnapshot applies a case-insensitive substring match on the
// display name over the cached full snapshot.
func (vm *ViewModel) filterSnapshot(text string) []domain.Item {
	needle := strings.ToLower(text)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	var matched []domain.Item
	for _, item := range vm.allItems {
		if strings.Contains(strings.ToLower(item.Title()), needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

// Reload refreshes the cached full snapshot from the data source,
// off the calling goroutine. Superseded reloads are discarded.
func (vm *ViewModel) Reload() {
	vm.mu.Lock()
	if vm.source == nil {
		vm.mu.Unlock()
		return
	}
	vm.reloadGen++
	gen := vm.reloadGen
	source := vm.source
	ctx := vm.ctx
	vm.mu.Unlock()

	go func() {
		items, err := source.ListAll(ctx)
		if err != nil {
			logger.Warn("Snapshot reload failed: %v", err)
			return
		}

		vm.mu.Lock()
		if gen != vm.reloadGen {
			vm.mu.Unlock()
			return
		}
		vm.allItems = items
		vm.mu.Unlock()

		logger.Debug("Snapshot reloaded: %d items", len(items))
		vm.notify()
	}()
}

// Reset returns the overlay to its initial idle state: query text,
// results, indices, and in-flight work are all discarded.
func (vm *ViewModel) Reset() {
	vm.mu.Lock()
	vm.resetLocked()
	vm.mu.Unlock()
	vm.notify()
}

func (vm *ViewModel) resetLocked() {
	vm.debounceGen++
	if vm.debounceTimer != nil {
		vm.debounceTimer.Stop()
		vm.debounceTimer = nil
	}
	vm.queryText = ""
	vm.sectionIndex = 0
	vm.clearSearchLocked()
}

// Close discards timers and in-flight work. The view model must not be
// used afterwards.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.debounceGen++
	if vm.debounceTimer != nil {
		vm.debounceTimer.Stop()
		vm.debounceTimer = nil
	}
	vm.cancelInFlightLocked()
}

// NavigateUp moves the result selection up by one.
func (vm *ViewModel) NavigateUp() bool {
	vm.mu.Lock()
	if vm.resultIndex <= 0 {
		vm.mu.Unlock()
		return false
	}
	vm.resultIndex--
	vm.mu.Unlock()
	vm.notify()
	return true
}

// NavigateDown moves the result selection down by one.
func (vm *ViewModel) NavigateDown() bool {
	vm.mu.Lock()
	if vm.resultIndex >= len(vm.results)-1 {
		vm.mu.Unlock()
		return false
	}
	vm.resultIndex++
	vm.mu.Unlock()
	vm.notify()
	return true
}

// NavigateLeft selects the previous visible section, skipping any the
// visibility predicate currently hides. The section axis is locked
// while a search is active: only handled in the idle state.
func (vm *ViewModel) NavigateLeft() bool {
	vm.mu.Lock()
	if vm.state != domain.StateIdle {
		vm.mu.Unlock()
		return false
	}
	target := -1
	for i := vm.sectionIndex - 1; i >= 0; i-- {
		if vm.sections[i].IsVisible() {
			target = i
			break
		}
	}
	if target < 0 {
		vm.mu.Unlock()
		return false
	}
	vm.sectionIndex = target
	vm.mu.Unlock()
	vm.notify()
	return true
}

// NavigateRight selects the next visible section. Only handled in the
// idle state.
func (vm *ViewModel) NavigateRight() bool {
	vm.mu.Lock()
	if vm.state != domain.StateIdle {
		vm.mu.Unlock()
		return false
	}
	target := -1
	for i := vm.sectionIndex + 1; i < len(vm.sections); i++ {
		if vm.sections[i].IsVisible() {
			target = i
			break
		}
	}
	if target < 0 {
		vm.mu.Unlock()
		return false
	}
	vm.sectionIndex = target
	vm.mu.Unlock()
	vm.notify()
	return true
}

// ActivateSection makes the identified section current and focuses it.
// Like left/right navigation it is only handled while idle, so the
// section axis never moves mid-query.
func (vm *ViewModel) ActivateSection(id string) bool {
	vm.mu.Lock()
	if vm.state != domain.StateIdle {
		vm.mu.Unlock()
		return false
	}
	target := -1
	for i, s := range vm.sections {
		if s.ID == id {
			target = i
			break
		}
	}
	if target < 0 {
		vm.mu.Unlock()
		return false
	}
	vm.sectionIndex = target
	vm.state = domain.StateFocusSection
	vm.mu.Unlock()
	vm.notify()
	return true
}

// HandleEvent maps a discrete input event to a state transition and
// reports whether it was handled.
func (vm *ViewModel) HandleEvent(ev domain.InputEvent) bool {
	switch ev.Kind {
	case domain.EventMoveUp:
		return vm.NavigateUp()
	case domain.EventMoveDown:
		return vm.NavigateDown()
	case domain.EventMoveLeft:
		return vm.NavigateLeft()
	case domain.EventMoveRight:
		return vm.NavigateRight()
	case domain.EventConfirm:
		return vm.confirm()
	case domain.EventCancel:
		vm.Reset()
		return true
	case domain.EventActivateSection:
		return vm.ActivateSection(ev.SectionID)
	default:
		return false
	}
}

// confirm commits when the home section is active or a section is
// already focused; otherwise it drills into the active section without
// committing.
func (vm *ViewModel) confirm() bool {
	vm.mu.Lock()
	if vm.sectionIndex == 0 || vm.state == domain.StateFocusSection {
		vm.mu.Unlock()
		return vm.SelectCurrent()
	}
	vm.state = domain.StateFocusSection
	vm.mu.Unlock()
	vm.notify()
	return true
}

// SelectCurrent resolves the current choice, dispatches the owning
// section's callback exactly once (falling back to the configured
// default when the section has none), and then fully resets. The callback
// runs with the pre-reset state intact for the duration of its own
// synchronous body. No-op when the selection is empty or out of range.
func (vm *ViewModel) SelectCurrent() bool {
	vm.mu.Lock()
	if len(vm.results) == 0 || vm.resultIndex < 0 || vm.resultIndex >= len(vm.results) {
		vm.mu.Unlock()
		return false
	}
	item := vm.results[vm.resultIndex]

	idx := vm.sectionIndex
	if idx < 0 || idx >= len(vm.sections) {
		idx = 0
	}
	callback := vm.sections[idx].OnSelect
	if callback == nil {
		callback = vm.cfg.OnSelect
	}
	vm.mu.Unlock()

	if callback != nil {
		callback(item)
	}

	vm.Reset()
	return true
}

// QueryText returns the current raw query text.
func (vm *ViewModel) QueryText() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.queryText
}

// Results returns a copy of the currently displayed results.
func (vm *ViewModel) Results() []domain.Item {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]domain.Item, len(vm.results))
	copy(out, vm.results)
	return out
}

// SelectedResultIndex returns the current result selection index.
func (vm *ViewModel) SelectedResultIndex() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.resultIndex
}

// SelectedSectionIndex returns the current section index.
func (vm *ViewModel) SelectedSectionIndex() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.sectionIndex
}

// UIState returns the current coarse state.
func (vm *ViewModel) UIState() domain.UIState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// IsLoading reports whether a query is in flight.
func (vm *ViewModel) IsLoading() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.loading
}

// Config returns the overlay configuration.
func (vm *ViewModel) Config() domain.Config {
	return vm.cfg
}

// SnapshotSize returns the size of the cached full snapshot.
func (vm *ViewModel) SnapshotSize() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return len(vm.allItems)
}
