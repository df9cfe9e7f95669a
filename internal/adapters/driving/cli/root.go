// Package cli wires the overlay, its data sources, and the one-shot
// search command into a cobra command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/spotkit/spotkit/internal/logger"
)

// version is the build version, overridden at link time.
var version = "dev"

var (
	verbose   bool
	configDir string
)

var rootCmd = &cobra.Command{
	Use:   "spotkit",
	Short: "Spotlight-style search overlay for the terminal",
	Long: `spotkit is a spotlight-style search overlay.

Type to search, navigate with the arrow keys, and press enter to
select. Sections group additional scopes next to the main search;
switch between them with left/right or their shortcuts.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE:          runOverlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.spotkit)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	version = v
}
