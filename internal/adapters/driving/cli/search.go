package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/spotkit/spotkit/internal/adapters/driven/config/file"
	"github.com/spotkit/spotkit/internal/adapters/driven/datasource/filesystem"
	"github.com/spotkit/spotkit/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the configured directory without the overlay",
	Long: `Performs a one-shot file name search over the configured root
and prints the matches, newest flags winning over the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&overlayRoot, "root", "", "directory to search (default from config)")
	searchCmd.Flags().StringSliceVar(&overlayExts, "ext", nil, "file extensions to include")
	searchCmd.Flags().IntVar(&overlayDepth, "depth", 0, "maximum directory depth (0 = unlimited)")
	searchCmd.Flags().BoolVar(&overlayHidden, "hidden", false, "include hidden files")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	source, err := filesystem.New(filesystemConfig(cmd, store.Config().Filesystem))
	if err != nil {
		return fmt.Errorf("opening search root: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	items, err := source.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if searchLimit > 0 && len(items) > searchLimit {
		items = items[:searchLimit]
	}

	if searchJSON {
		return outputSearchJSON(cmd, items)
	}
	return outputSearchTable(cmd, items)
}

// searchResult is the JSON shape of one match.
type searchResult struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

func outputSearchJSON(cmd *cobra.Command, items []domain.Item) error {
	results := make([]searchResult, len(items))
	for i, item := range items {
		results[i] = searchResult{
			ID:       item.ID(),
			Title:    item.Title(),
			Subtitle: item.Subtitle(),
		}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, items []domain.Item) error {
	if len(items) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, item := range items {
		cmd.Printf("  [%d] %s\n", i+1, item.Title())
		if sub := item.Subtitle(); sub != "" {
			cmd.Printf("      %s\n", sub)
		}
	}
	return nil
}
