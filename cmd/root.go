package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/meera-dev/stylescrap/config"
	"github.com/meera-dev/stylescrap/internal/driver"
	"github.com/meera-dev/stylescrap/internal/httputil"
	"github.com/meera-dev/stylescrap/internal/site"
	"github.com/meera-dev/stylescrap/internal/stealth"
)

var cfg *config.Config

// defaultTerms is the stock search-term list used when none are given.
var defaultTerms = []string{
	"white shirt",
	"black dress",
	"denim jeans",
	"summer kurti",
	"co-ord set",
	"oversized t-shirt",
	"sneakers",
	"blue linen pants",
	"pink blazer for women",
	"yellow maxi dress",
}

var rootCmd = &cobra.Command{
	Use:   "stylescrap",
	Short: "StyleScrap - Fashion storefront scraping CLI & MCP server",
	Long:  "A Go-based CLI tool and MCP server for extracting product data from JavaScript-heavy fashion storefronts.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("site", "myntra", "Target storefront site")
	rootCmd.PersistentFlags().Bool("headless", true, "Run the browser headless")
	rootCmd.PersistentFlags().String("delay-profile", "normal", "Pacing profile: cautious, normal, aggressive")
	rootCmd.PersistentFlags().Bool("respect-robots", true, "Respect robots.txt rules")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Flags set on the command line beat env values in either direction;
	// unset flags leave the env/default config alone.
	flags := rootCmd.PersistentFlags()
	if flags.Changed("site") {
		cfg.DefaultSite, _ = flags.GetString("site")
	}
	if flags.Changed("headless") {
		cfg.Headless, _ = flags.GetBool("headless")
	}
	if flags.Changed("delay-profile") {
		cfg.DelayProfile, _ = flags.GetString("delay-profile")
	}
	if flags.Changed("respect-robots") {
		cfg.RespectRobots, _ = flags.GetBool("respect-robots")
	}
}

// initSites registers all storefront profiles.
func initSites() {
	site.Register(site.Myntra())
	site.Register(site.NykaaFashion())
}

// buildProbeClient creates the stealth-wrapped HTTP client used outside the
// browser (robots.txt, static page probe).
func buildProbeClient(fingerprints *stealth.FingerprintPool) *http.Client {
	transport := &stealth.Transport{
		Base: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
		},
		Fingerprint: fingerprints,
		Delay:       stealth.NewHumanDelay(stealth.DelayProfile(cfg.DelayProfile)),
		RateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
	}
	return httputil.NewClient(transport)
}

// sessionDeps bundles everything a crawl run needs besides the orchestrator
// options themselves.
type sessionDeps struct {
	session   *driver.Session
	profile   *site.Profile
	robots    *stealth.RobotsChecker
	probe     *site.StaticProbe
	delay     *stealth.HumanDelay
	limiter   *rate.Limiter
	userAgent string
}

// openSession acquires the browser and supporting collaborators for the
// configured site. The caller owns releasing deps.session.
func openSession(siteName string) (*sessionDeps, error) {
	profile, err := site.Get(siteName)
	if err != nil {
		return nil, err
	}

	fingerprints := stealth.NewFingerprintPool()
	fp := fingerprints.Next()

	opts := driver.DefaultOptions()
	opts.Headless = cfg.Headless
	opts.UserAgent = fp.UserAgent

	session, err := driver.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open browser session: %w", err)
	}

	probeClient := buildProbeClient(fingerprints)
	return &sessionDeps{
		session:   session,
		profile:   profile,
		robots:    stealth.NewRobotsChecker(probeClient, cfg.RespectRobots),
		probe:     &site.StaticProbe{Client: probeClient},
		delay:     stealth.NewHumanDelay(stealth.DelayProfile(cfg.DelayProfile)),
		limiter:   rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		userAgent: fp.UserAgent,
	}, nil
}
