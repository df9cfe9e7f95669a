// Package tui renders the spotlight overlay as a Bubbletea program.
// The overlay core owns all navigation and search state; this package
// translates key presses into core commands and repaints whenever the
// core reports a mutation.
package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spotkit/spotkit/internal/adapters/driving/tui/components/input"
	"github.com/spotkit/spotkit/internal/adapters/driving/tui/components/list"
	"github.com/spotkit/spotkit/internal/adapters/driving/tui/components/status"
	"github.com/spotkit/spotkit/internal/adapters/driving/tui/components/tabs"
	"github.com/spotkit/spotkit/internal/adapters/driving/tui/keymap"
	"github.com/spotkit/spotkit/internal/adapters/driving/tui/messages"
	"github.com/spotkit/spotkit/internal/adapters/driving/tui/styles"
	"github.com/spotkit/spotkit/internal/core/domain"
	"github.com/spotkit/spotkit/internal/core/ports/driving"
)

// App is the overlay TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// overlay is the core driving port; all state lives there.
	overlay driving.Overlay

	// cfg is the overlay configuration used for rendering.
	cfg domain.Config

	// styles holds the TUI styles.
	styles *styles.Styles

	// keys holds the keybindings.
	keys *keymap.KeyMap

	// searchInput is the query field component.
	searchInput *input.SearchInput

	// resultList is the result list component.
	resultList *list.ResultList

	// sectionTabs is the section strip component.
	sectionTabs *tabs.SectionTabs

	// statusBar is the status bar component.
	statusBar *status.StatusBar

	// updates carries core mutation signals into the Bubbletea loop.
	updates chan struct{}

	// selections carries committed selections into the Bubbletea loop.
	selections chan messages.ItemSelected

	// watch is an optional data source change feed.
	watch <-chan struct{}

	// selected holds the committed selection once the program exits.
	selected *messages.ItemSelected

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// Option configures an App.
type Option func(*App)

// WithTheme overrides the default colour theme.
func WithTheme(theme *styles.Theme) Option {
	return func(a *App) {
		a.styles = styles.NewStyles(theme)
	}
}

// WithWatch attaches a data source change feed. Each signal triggers a
// snapshot reload.
func WithWatch(ch <-chan struct{}) Option {
	return func(a *App) {
		a.watch = ch
	}
}

// NewApp creates the overlay TUI on top of the given core. It
// subscribes to the core so every state mutation schedules a repaint.
func NewApp(overlay driving.Overlay, opts ...Option) *App {
	cfg := domain.Config{}.WithDefaults()
	if provider, ok := overlay.(interface{ Config() domain.Config }); ok {
		cfg = provider.Config()
	}

	a := &App{
		overlay:    overlay,
		cfg:        cfg,
		styles:     styles.DefaultStyles(),
		keys:       keymap.DefaultKeyMap(),
		updates:    make(chan struct{}, 1),
		selections: make(chan messages.ItemSelected, 1),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.searchInput = input.NewSearchInput(a.styles, cfg.Placeholder)
	a.resultList = list.NewResultList(a.styles, cfg.MaxListHeight, cfg.ShowDividers)
	a.sectionTabs = tabs.NewSectionTabs(a.styles)
	a.statusBar = status.NewStatusBar(a.styles)

	// Coalescing signal: an unconsumed repaint absorbs later ones.
	overlay.Subscribe(func() {
		select {
		case a.updates <- struct{}{}:
		default:
		}
	})

	return a
}

// NotifySelected hands a committed selection to the program. Wire this
// into section callbacks so confirming a result closes the overlay.
func (a *App) NotifySelected(item domain.Item, sectionID string) {
	select {
	case a.selections <- messages.ItemSelected{Item: item, SectionID: sectionID}:
	default:
	}
}

// Selected returns the committed selection, or nil if the overlay was
// dismissed without one.
func (a *App) Selected() *messages.ItemSelected {
	return a.selected
}

// waitForUpdate blocks until the core reports a mutation.
func (a *App) waitForUpdate() tea.Msg {
	<-a.updates
	return messages.StateUpdated{}
}

// waitForSelection blocks until a selection is committed.
func (a *App) waitForSelection() tea.Msg {
	return <-a.selections
}

// waitForWatch blocks until the data source reports a change.
func (a *App) waitForWatch() tea.Msg {
	if _, ok := <-a.watch; !ok {
		return messages.WatchClosed{}
	}
	return messages.WatchFired{}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle(a.cfg.Title),
		a.searchInput.Init(),
		a.statusBar.Init(),
		a.waitForUpdate,
		a.waitForSelection,
	}
	if a.watch != nil {
		cmds = append(cmds, a.waitForWatch)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.searchInput.SetWidth(msg.Width)
		a.resultList.SetWidth(msg.Width)
		a.statusBar.SetWidth(msg.Width)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.StateUpdated:
		a.syncFromOverlay()
		return a, a.waitForUpdate

	case messages.ItemSelected:
		a.selected = &msg
		return a, tea.Quit

	case messages.WatchFired:
		a.overlay.Reload()
		return a, a.waitForWatch

	case messages.WatchClosed:
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.statusBar, cmd = a.statusBar.Update(msg)
		return a, cmd
	}

	return a.forwardToInput(msg)
}

// handleKey routes a key press: bound keys become core commands, and
// everything else edits the query text.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keys.Quit):
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keys.Up):
		a.overlay.HandleEvent(domain.InputEvent{Kind: domain.EventMoveUp})
		return a, nil

	case keymap.Matches(keyStr, a.keys.Down):
		a.overlay.HandleEvent(domain.InputEvent{Kind: domain.EventMoveDown})
		return a, nil

	case keymap.Matches(keyStr, a.keys.PrevSection):
		if !a.overlay.HandleEvent(domain.InputEvent{Kind: domain.EventMoveLeft}) {
			// The core locked the section axis; let the text field
			// move its cursor instead.
			return a.forwardToInput(msg)
		}
		return a, nil

	case keymap.Matches(keyStr, a.keys.NextSection):
		if !a.overlay.HandleEvent(domain.InputEvent{Kind: domain.EventMoveRight}) {
			return a.forwardToInput(msg)
		}
		return a, nil

	case keymap.Matches(keyStr, a.keys.Confirm):
		a.overlay.HandleEvent(domain.InputEvent{Kind: domain.EventConfirm})
		return a, nil

	case keymap.Matches(keyStr, a.keys.Cancel):
		// Cancel on an already-idle empty overlay dismisses it.
		if a.overlay.UIState() == domain.StateIdle && a.overlay.QueryText() == "" {
			return a, tea.Quit
		}
		a.overlay.HandleEvent(domain.InputEvent{Kind: domain.EventCancel})
		a.searchInput.Reset()
		return a, nil
	}

	if id, ok := a.sectionForKey(keyStr); ok {
		a.overlay.HandleEvent(domain.InputEvent{Kind: domain.EventActivateSection, SectionID: id})
		return a, nil
	}

	return a.forwardToInput(msg)
}

// forwardToInput lets the text field consume the message, then pushes
// any resulting text change into the core.
func (a *App) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)

	if value := a.searchInput.Value(); value != a.overlay.QueryText() {
		a.overlay.SetQueryText(value)
	}
	return a, cmd
}

// sectionForKey resolves a key string against the registered section
// shortcuts.
func (a *App) sectionForKey(keyStr string) (string, bool) {
	for _, section := range a.overlay.Sections() {
		if section.Shortcut.Key == 0 {
			continue
		}
		if shortcutKeyString(section.Shortcut) == keyStr {
			return section.ID, true
		}
	}
	return "", false
}

// shortcutKeyString renders a section shortcut the way Bubbletea names
// key presses, e.g. "alt+r".
func shortcutKeyString(sc domain.Shortcut) string {
	var b strings.Builder
	if sc.Mods&domain.ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if sc.Mods&domain.ModAlt != 0 {
		b.WriteString("alt+")
	}
	if sc.Mods&domain.ModShift != 0 {
		b.WriteRune(unicode.ToUpper(sc.Key))
	} else {
		b.WriteRune(unicode.ToLower(sc.Key))
	}
	return b.String()
}

// syncFromOverlay re-reads the observable core state into the view
// components.
func (a *App) syncFromOverlay() {
	a.resultList.SetItems(a.overlay.Results())
	a.resultList.SetSelected(a.overlay.SelectedResultIndex())

	// The core selection indexes the full registry; the strip shows
	// only visible sections, so the highlight is remapped into the
	// visible slice. A hidden selection clears the highlight.
	sections := a.overlay.Sections()
	selected := a.overlay.SelectedSectionIndex()
	visible := make([]domain.Section, 0, len(sections))
	active := -1
	for i, s := range sections {
		if !s.IsVisible() {
			continue
		}
		if i == selected {
			active = len(visible)
		}
		visible = append(visible, s)
	}
	a.sectionTabs.SetSections(visible)
	a.sectionTabs.SetActive(active)
	a.statusBar.SetState(a.overlay.UIState(), len(a.overlay.Results()), a.overlay.IsLoading())

	// A core-side reset clears the text field too.
	if a.overlay.QueryText() == "" && a.searchInput.Value() != "" {
		a.searchInput.Reset()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(a.cfg.Title))
	b.WriteString("\n\n")
	b.WriteString(a.searchInput.View())
	b.WriteString("\n")

	if strip := a.sectionTabs.View(); strip != "" {
		b.WriteString(strip)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(a.viewBody())
	b.WriteString("\n\n")
	b.WriteString(a.statusBar.View())
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("↑/↓ navigate · ←/→ sections · enter select · esc dismiss"))
	return b.String()
}

// viewBody renders the centre of the overlay according to the core
// state.
func (a *App) viewBody() string {
	state := a.overlay.UIState()

	if state == domain.StateFocusSection {
		if section := a.activeSection(); section != nil && section.HasContent() {
			return section.Content()
		}
	}

	switch state {
	case domain.StateIdle, domain.StateShowingSections:
		return a.styles.Muted.Render(a.cfg.Placeholder)
	default:
		return a.resultList.View()
	}
}

// activeSection returns the currently selected section, if any.
func (a *App) activeSection() *domain.Section {
	sections := a.overlay.Sections()
	idx := a.overlay.SelectedSectionIndex()
	if idx < 0 || idx >= len(sections) {
		return nil
	}
	return &sections[idx]
}

// Run starts the overlay program and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchInput.SetWidth(width)
	a.resultList.SetWidth(width)
	a.statusBar.SetWidth(width)
}
