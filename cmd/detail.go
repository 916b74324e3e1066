package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/meera-dev/stylescrap/internal/crawl"
	"github.com/meera-dev/stylescrap/internal/models"
	"github.com/meera-dev/stylescrap/internal/ui"
)

var detailCmd = &cobra.Command{
	Use:   "detail [product-url]",
	Short: "Scrape a single product page",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetail,
}

func init() {
	detailCmd.Flags().String("format", "json", "Output format: json, table")
	rootCmd.AddCommand(detailCmd)
}

func runDetail(cmd *cobra.Command, args []string) error {
	initSites()

	productURL := args[0]
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
		Probe:       deps.probe,
		UserAgent:   deps.userAgent,
		Logger:      log.WithPrefix("detail"),
	})

	spin := ui.NewSpinner()
	spin.Start("Scraping product page...")
	ctx := crawl.WithProgress(context.Background(), spin.Update)
	rec, err := orch.ProductDetail(ctx, productURL)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("scrape product: %w", err)
	}

	switch format {
	case "table":
		printRecordsTable([]models.ProductRecord{rec})
	default:
		if err := printJSON(os.Stdout, rec); err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
	}

	return nil
}
