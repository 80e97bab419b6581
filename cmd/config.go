package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/impactmap/impactmap-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set impactmap configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("base_url: %s\n", cfg.BaseURL)
		if cfg.APIKey != "" {
			fmt.Printf("api_key: %s\n", mask(cfg.APIKey))
		}
		fmt.Printf("matrix_name: %s\n", cfg.MatrixName)
		fmt.Printf("indicator_codes: %s\n", strings.Join(cfg.IndicatorCodes, ","))
		fmt.Printf("max_rows: %d\n", cfg.MaxRows)
		fmt.Printf("snapshots_dir: %s\n", cfg.SnapshotsDir)
		fmt.Printf("http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Printf("retry_max_attempts: %d\n", cfg.RetryMaxAttempts)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "base_url":
			cfg.BaseURL = strings.TrimRight(val, "/")
		case "api_key":
			cfg.APIKey = val
		case "matrix_name":
			cfg.MatrixName = val
		case "indicator_codes":
			cfg.IndicatorCodes = splitCodes(val)
		case "snapshots_dir":
			cfg.SnapshotsDir = val
		case "max_rows":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid max_rows: %s", val)
			}
			cfg.MaxRows = n
		case "http_timeout_sec":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid http_timeout_sec: %s", val)
			}
			cfg.HTTPTimeoutSec = n
		case "retry_max_attempts":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid retry_max_attempts: %s", val)
			}
			cfg.RetryMaxAttempts = n
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

// mask hides all but the last 4 characters of a secret.
func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
