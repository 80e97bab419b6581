package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultIndicatorCodes is the allow-list of indicator columns shown when
// the user configures none, matching the USEEIO indicator set most heatmap
// deployments display.
var DefaultIndicatorCodes = []string{
	"ACID", "CCDD", "CMSW", "CRHW", "ENRG", "ETOX", "EUTR", "GHG",
	"HRSP", "HTOX", "LAND", "MNRL", "OZON", "SMOG", "WATR",
}

// Global configuration structure.
type Global struct {
	BaseURL        string   `mapstructure:"base_url" yaml:"base_url"`
	APIKey         string   `mapstructure:"api_key" yaml:"api_key"`
	MatrixName     string   `mapstructure:"matrix_name" yaml:"matrix_name"`
	IndicatorCodes []string `mapstructure:"indicator_codes" yaml:"indicator_codes"`
	MaxRows        int      `mapstructure:"max_rows" yaml:"max_rows"`
	SnapshotsDir   string   `mapstructure:"snapshots_dir" yaml:"snapshots_dir"`

	// HTTP/Retry configuration
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.impactmap/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".impactmap")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("IMPACTMAP")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("base_url", "")
	v.SetDefault("matrix_name", "U")
	v.SetDefault("indicator_codes", DefaultIndicatorCodes)
	v.SetDefault("max_rows", 25)
	// HTTP/retry defaults
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".impactmap")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve snapshots_dir default: ~/.impactmap/snapshots
	if c.SnapshotsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.SnapshotsDir = filepath.Join(home, ".impactmap", "snapshots")
	}
	return &c, nil
}
