package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/spotkit/spotkit/internal/adapters/driven/config/file"
	"github.com/spotkit/spotkit/internal/adapters/driven/datasource/filesystem"
	"github.com/spotkit/spotkit/internal/adapters/driven/storage/sqlite"
	"github.com/spotkit/spotkit/internal/adapters/driving/tui"
	"github.com/spotkit/spotkit/internal/core/domain"
	"github.com/spotkit/spotkit/internal/core/services"
	"github.com/spotkit/spotkit/internal/logger"
)

var (
	overlayRoot    string
	overlayExts    []string
	overlayDepth   int
	overlayHidden  bool
	overlayNoWatch bool
	overlayNoRec   bool
)

var overlayCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Launch the interactive search overlay",
	Long: `Launch the interactive search overlay over a directory tree.

Controls:
  (type)   Search file names
  ↑/↓      Navigate results
  ←/→      Switch sections
  enter    Select
  esc      Clear, then dismiss
  ctrl+c   Quit`,
	RunE: runOverlay,
}

func init() {
	for _, cmd := range []*cobra.Command{overlayCmd, rootCmd} {
		cmd.Flags().StringVar(&overlayRoot, "root", "", "directory to search (default from config)")
		cmd.Flags().StringSliceVar(&overlayExts, "ext", nil, "file extensions to include")
		cmd.Flags().IntVar(&overlayDepth, "depth", 0, "maximum directory depth (0 = unlimited)")
		cmd.Flags().BoolVar(&overlayHidden, "hidden", false, "include hidden files")
		cmd.Flags().BoolVar(&overlayNoWatch, "no-watch", false, "disable filesystem watching")
		cmd.Flags().BoolVar(&overlayNoRec, "no-recents", false, "disable the recents section")
	}
	rootCmd.AddCommand(overlayCmd)
}

func runOverlay(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the overlay requires an interactive terminal")
	}

	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	fileCfg := store.Config()

	fsCfg := filesystemConfig(cmd, fileCfg.Filesystem)
	source, err := filesystem.New(fsCfg)
	if err != nil {
		return fmt.Errorf("opening search root: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The app is created after the view model, so the selection
	// callbacks close over this pointer.
	var app *tui.App

	overlayCfg := store.OverlayConfig()
	overlayCfg.Icon = "search"
	overlayCfg.OnSelect = func(item domain.Item) {
		app.NotifySelected(item, domain.HomeSectionID)
	}

	var sections []domain.Section
	var recents *sqlite.Store
	if fileCfg.Recents.Enabled && !overlayNoRec {
		recents, err = sqlite.NewStore("", sqlite.WithMaxEntries(fileCfg.Recents.MaxEntries))
		if err != nil {
			logger.Warn("Recents unavailable: %v", err)
		} else {
			defer recents.Close()
			sections = append(sections, recentsSection(ctx, recents, func(item domain.Item) {
				app.NotifySelected(item, "recents")
			}))
		}
	}

	vm := services.NewViewModel(overlayCfg, source, sections...).WithContext(ctx)
	defer vm.Close()

	var opts []tui.Option
	if fileCfg.Filesystem.Watch && !overlayNoWatch {
		changes, watchErr := source.Watch(ctx)
		if watchErr != nil {
			logger.Warn("Filesystem watching disabled: %v", watchErr)
		} else {
			opts = append(opts, tui.WithWatch(changes))
		}
	}

	app = tui.NewApp(vm, opts...)
	if err := app.Run(); err != nil {
		return fmt.Errorf("running overlay: %w", err)
	}

	sel := app.Selected()
	if sel == nil {
		return nil
	}

	if recents != nil {
		recordCtx, recordCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer recordCancel()
		if err := recents.Record(recordCtx, sel.Item, sel.SectionID); err != nil {
			logger.Warn("Recording selection failed: %v", err)
		}
	}

	// The selected identity goes to stdout so the overlay composes
	// with shell pipelines.
	fmt.Fprintln(cmd.OutOrStdout(), sel.Item.ID())
	return nil
}

// filesystemConfig merges config file settings with flag overrides.
func filesystemConfig(cmd *cobra.Command, settings configfile.FilesystemSettings) filesystem.Config {
	cfg := filesystem.Config{
		Root:          settings.Root,
		Extensions:    settings.Extensions,
		MaxDepth:      settings.MaxDepth,
		IncludeHidden: settings.IncludeHidden,
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = overlayRoot
	}
	if flags.Changed("ext") {
		cfg.Extensions = overlayExts
	}
	if flags.Changed("depth") {
		cfg.MaxDepth = overlayDepth
	}
	if flags.Changed("hidden") {
		cfg.IncludeHidden = overlayHidden
	}

	if cfg.Root == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Root = home
		} else {
			cfg.Root = "."
		}
	}
	return cfg
}

// recentsSection builds the selection history section. Its content
// pane lists the latest recorded selections.
func recentsSection(ctx context.Context, store *sqlite.Store, onSelect func(domain.Item)) domain.Section {
	return domain.Section{
		ID:       "recents",
		Title:    "Recents",
		Icon:     "clock",
		OnSelect: onSelect,
		Shortcut: domain.Shortcut{Key: 'r', Mods: domain.ModAlt},
		Content: func() string {
			listCtx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()

			items, err := store.ListAll(listCtx)
			if err != nil {
				return "recents unavailable"
			}
			if len(items) == 0 {
				return "No recent selections"
			}

			const shown = 10
			if len(items) > shown {
				items = items[:shown]
			}
			var b strings.Builder
			for _, item := range items {
				b.WriteString("  ")
				b.WriteString(item.Title())
				if sub := item.Subtitle(); sub != "" {
					b.WriteString("  ")
					b.WriteString(sub)
				}
				b.WriteString("\n")
			}
			return strings.TrimRight(b.String(), "\n")
		},
	}
}
