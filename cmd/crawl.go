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

var crawlCmd = &cobra.Command{
	Use:   "crawl [terms...]",
	Short: "Deep crawl: visit every product's detail page per search term",
	Long: "Searches each term, collects product links from the results page and " +
		"visits every product page for full fields (image, sizes, reviews, breadcrumb). " +
		"Records are appended to <out>.csv and <out>.jsonl after each product.",
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().Int("max-products", 0, "Max products per term (default from config)")
	crawlCmd.Flags().String("out", "", "Output filename stem (default from config)")
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	initSites()

	terms := args
	if len(terms) == 0 {
		terms = defaultTerms
	}

	maxProducts := cfg.MaxProducts
	if n, _ := cmd.Flags().GetInt("max-products"); n > 0 {
		maxProducts = n
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
		MaxProducts: maxProducts,
		WaitTimeout: cfg.WaitTimeout,
		Delay:       deps.delay,
		Limiter:     deps.limiter,
		Robots:      deps.robots,
		Probe:       deps.probe,
		UserAgent:   deps.userAgent,
		Logger:      log.WithPrefix("crawl"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Crawling %s...", cfg.DefaultSite))
	summary, runErr := orch.RunDeep(crawl.WithProgress(ctx, spin.Update), terms)
	spin.Stop()

	printSummary(summary, stem)

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted; partial results kept.")
			return nil
		}
		return fmt.Errorf("crawl session: %w", runErr)
	}
	return nil
}

func printSummary(s crawl.Summary, stem string) {
	fmt.Printf("\nSession complete: %d terms (%d failed), %d pages, %d products, %d skipped\n",
		s.Terms, s.FailedTerms, s.Pages, s.Products, s.Skipped)
	fmt.Printf("Output: %s.csv, %s.jsonl\n", stem, stem)
}
