package cmd

import (
	"fmt"
	"os"
	"time"

	cfgpkg "github.com/impactmap/impactmap-cli/internal/config"
	"github.com/impactmap/impactmap-cli/internal/useeio"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile string
	debug   bool
	// API/HTTP flags (override config if set)
	flagBaseURL          string
	flagHTTPTimeoutSec   int
	flagRetryMaxAttempts int
	flagRetryBaseDelayMs int
	flagRetryMaxDelayMs  int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "impactmap",
	Short: "impactmap: render environmental-impact heatmaps from USEEIO-style APIs",
	Long: `impactmap pulls sectors, indicators, and a precomputed result matrix from a
USEEIO-style API, ranks the most relevant sectors, normalizes each cell
against its indicator's range, and renders the result as a heatmap table.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.impactmap/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxAttempts, "retry-max", 0, "max retry attempts on 429/5xx (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryBaseDelayMs, "retry-base-ms", 0, "base retry backoff in ms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxDelayMs, "retry-max-ms", 0, "max retry backoff cap in ms (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("base-url") && flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("retry-max") && flagRetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = flagRetryMaxAttempts
	}
	if f.Changed("retry-base-ms") && flagRetryBaseDelayMs > 0 {
		cfg.RetryBaseDelayMs = flagRetryBaseDelayMs
	}
	if f.Changed("retry-max-ms") && flagRetryMaxDelayMs > 0 {
		cfg.RetryMaxDelayMs = flagRetryMaxDelayMs
	}
}

// newClient builds the API client from the effective configuration.
func newClient() (*useeio.Client, error) {
	if cfg == nil {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("API base URL is not set; use --base-url, IMPACTMAP_BASE_URL, or 'impactmap config set base_url <url>'")
	}
	return useeio.NewClient(
		cfg.BaseURL,
		cfg.APIKey,
		time.Duration(cfg.HTTPTimeoutSec)*time.Second,
		cfg.RetryMaxAttempts,
		time.Duration(cfg.RetryBaseDelayMs)*time.Millisecond,
		time.Duration(cfg.RetryMaxDelayMs)*time.Millisecond,
	), nil
}

func debugf(format string, args ...any) {
	if debug {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}
