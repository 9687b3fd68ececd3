package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/txscope/internal/common"
	"github.com/Veraticus/txscope/internal/pipeline"
)

// Default values for configuration keys.
const (
	DefaultAPITimeout   = 30 * time.Second
	DefaultExplorerURL  = "https://etherscan.io/tx/%s"
	DefaultTheme        = "default"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	defaultDataDirName  = "txscope"
	defaultDatabaseName = "txscope.db"
)

// Config is the resolved application configuration.
type Config struct {
	API      APIConfig
	Storage  StorageConfig
	View     ViewConfig
	Explorer ExplorerConfig
	Export   ExportConfig
	Logging  LoggingConfig
}

// APIConfig locates the transaction API.
type APIConfig struct {
	BaseURL string
	Key     string
	Timeout time.Duration
}

// StorageConfig locates the snapshot cache.
type StorageConfig struct {
	Path string
}

// ViewConfig holds interactive browser preferences.
type ViewConfig struct {
	Theme        string
	ItemsPerPage int
}

// ExplorerConfig builds block explorer links.
type ExplorerConfig struct {
	// TxURL is a format string with one %s for the transaction hash.
	TxURL string
}

// ExportConfig controls where exports are written.
type ExportConfig struct {
	Dir string
}

// LoggingConfig configures slog.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.timeout", DefaultAPITimeout)
	v.SetDefault("storage.path", DefaultDatabasePath())
	v.SetDefault("view.items_per_page", pipeline.DefaultItemsPerPage)
	v.SetDefault("view.theme", DefaultTheme)
	v.SetDefault("explorer.tx_url", DefaultExplorerURL)
	v.SetDefault("export.dir", ".")
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimSpace(v.GetString("api.base_url")),
			Key:     v.GetString("api.key"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Storage: StorageConfig{
			Path: ExpandPath(v.GetString("storage.path")),
		},
		View: ViewConfig{
			Theme:        v.GetString("view.theme"),
			ItemsPerPage: v.GetInt("view.items_per_page"),
		},
		Explorer: ExplorerConfig{
			TxURL: v.GetString("explorer.tx_url"),
		},
		Export: ExportConfig{
			Dir: ExpandPath(v.GetString("export.dir")),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout cannot be negative", common.ErrInvalidConfig)
	}
	if c.View.ItemsPerPage != 0 && !pipeline.ValidPageSize(c.View.ItemsPerPage) {
		return fmt.Errorf("%w: view.items_per_page must be one of %v, got %d",
			common.ErrInvalidConfig, pipeline.PageSizes, c.View.ItemsPerPage)
	}
	if c.Explorer.TxURL != "" && strings.Count(c.Explorer.TxURL, "%s") != 1 {
		return fmt.Errorf("%w: explorer.tx_url must contain exactly one %%s", common.ErrInvalidConfig)
	}
	return nil
}

// RequireAPI reports a missing API base URL as a user-facing error.
func (c *Config) RequireAPI() error {
	if c.API.BaseURL == "" {
		return common.NewUserError(
			"no transaction API configured; set api.base_url in the config file or TXSCOPE_API_BASE_URL",
			common.ErrMissingConfig)
	}
	return nil
}

// ExplorerLink returns the explorer URL for hash, or "" when no template is set.
func (c *Config) ExplorerLink(hash string) string {
	if c.Explorer.TxURL == "" || hash == "" {
		return ""
	}
	return fmt.Sprintf(c.Explorer.TxURL, hash)
}

// DataDir returns the XDG data directory for txscope.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, defaultDataDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataDirName
	}
	return filepath.Join(home, ".local", "share", defaultDataDirName)
}

// DefaultDatabasePath returns the default snapshot cache location.
func DefaultDatabasePath() string {
	return filepath.Join(DataDir(), defaultDatabaseName)
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, defaultDataDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataDirName
	}
	return filepath.Join(home, ".config", defaultDataDirName)
}
