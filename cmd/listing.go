package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/meera-dev/stylescrap/internal/crawl"
	"github.com/meera-dev/stylescrap/internal/sink"
	"github.com/meera-dev/stylescrap/internal/ui"
)

var listingCmd = &cobra.Command{
	Use:   "listing [terms...]",
	Short: "Shallow crawl: extract records straight from paginated listing pages",
	Long: "Resolves each term's results URL, then walks result pages extracting " +
		"fields directly from listing cards. Each page is appended to the output " +
		"before the next is fetched, so a crash loses at most one page.",
	RunE: runListing,
}

func init() {
	listingCmd.Flags().Int("pages", 0, "Pages per term (0 = until an empty page)")
	listingCmd.Flags().String("out", "", "Output filename stem (default from config)")
	rootCmd.AddCommand(listingCmd)
}

func runListing(cmd *cobra.Command, args []string) error {
	initSites()

	terms := args
	if len(terms) == 0 {
		terms = defaultTerms
	}

	var maxPages *int
	if n, _ := cmd.Flags().GetInt("pages"); n > 0 {
		maxPages = &n
	}
	stem := cfg.OutputStem
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		stem = v
	}

	deps, err := openSession(cfg.DefaultSite)
	if err != nil {
		return err
	}
	defer deps.session.Close()

	out, err := sink.NewDualSink(stem+".csv", stem+".jsonl")
	if err != nil {
		return err
	}
	defer out.Close()

	orch := crawl.New(deps.session, deps.profile, out, crawl.Options{
		WaitTimeout: cfg.WaitTimeout,
		MaxPages:    maxPages,
		RecordSearchURLs: func(urls map[string]string) error {
			return sink.WriteSearchURLs(stem+"_search_urls.json", urls)
		},
		Delay:     deps.delay,
		Limiter:   deps.limiter,
		Robots:    deps.robots,
		UserAgent: deps.userAgent,
		Logger:    log.WithPrefix("listing"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Crawling %s listings...", cfg.DefaultSite))
	summary, runErr := orch.RunShallow(crawl.WithProgress(ctx, spin.Update), terms)
	spin.Stop()

	printSummary(summary, stem)

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted; partial results kept.")
			return nil
		}
		return fmt.Errorf("listing session: %w", runErr)
	}
	return nil
}
