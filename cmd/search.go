package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/meera-dev/stylescrap/internal/crawl"
	"github.com/meera-dev/stylescrap/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search a term and print the first results page",
	Long:  "Runs one search and extracts records from the first results page without writing any output files.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().String("format", "json", "Output format: json, table")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	initSites()

	term := args[0]
	format, _ := cmd.Flags().GetString("format")

	deps, err := openSession(cfg.DefaultSite)
	if err != nil {
		return err
	}
	defer deps.session.Close()

	orch := crawl.New(deps.session, deps.profile, nil, crawl.Options{
		WaitTimeout: cfg.WaitTimeout,
		Delay:       deps.delay,
		Limiter:     deps.limiter,
		UserAgent:   deps.userAgent,
		Logger:      log.WithPrefix("search"),
	})

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Searching %q on %s...", term, cfg.DefaultSite))
	ctx := crawl.WithProgress(context.Background(), spin.Update)
	records, err := orch.ListingOnce(ctx, term)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	switch format {
	case "table":
		printRecordsTable(records)
	default:
		if err := printJSON(os.Stdout, records); err != nil {
			return fmt.Errorf("encode records: %w", err)
		}
	}

	return nil
}
