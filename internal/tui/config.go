package tui

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/benbjohnson/clock"

	"github.com/Veraticus/txscope/internal/debounce"
	"github.com/Veraticus/txscope/internal/pipeline"
	"github.com/Veraticus/txscope/internal/service"
	"github.com/Veraticus/txscope/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Source      service.TransactionSource
	Creator     service.TransactionCreator
	Cache       service.SnapshotStore
	Clock       clock.Clock
	Logger      *slog.Logger
	Clipboard   func(string) error
	ExplorerURL func(hash string) string
	// SourceLabel names where rows come from, e.g. "api", "cache" or "demo".
	SourceLabel  string
	ExportDir    string
	ItemsPerPage int
	Width        int
	Height       int
	FetchTimeout time.Duration
	SearchDelay  time.Duration
	ToastTTL     time.Duration
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:        themes.Default,
		Clock:        clock.New(),
		Logger:       slog.Default(),
		Clipboard:    clipboard.WriteAll,
		SourceLabel:  "api",
		ExportDir:    ".",
		ItemsPerPage: pipeline.DefaultItemsPerPage,
		Width:        120,
		Height:       32,
		FetchTimeout: 30 * time.Second,
		SearchDelay:  debounce.DefaultDelay,
		ToastTTL:     4 * time.Second,
	}
}

// WithSource sets where transactions are fetched from.
func WithSource(source service.TransactionSource) Option {
	return func(c *Config) {
		c.Source = source
	}
}

// WithCreator enables the creation form.
func WithCreator(creator service.TransactionCreator) Option {
	return func(c *Config) {
		c.Creator = creator
	}
}

// WithAPI sets both the source and the creator.
func WithAPI(api service.TransactionAPI) Option {
	return func(c *Config) {
		c.Source = api
		c.Creator = api
	}
}

// WithCache stores every successful fetch and serves as fallback when a fetch fails.
func WithCache(cache service.SnapshotStore) Option {
	return func(c *Config) {
		c.Cache = cache
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clk clock.Clock) Option {
	return func(c *Config) {
		c.Clock = clk
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(c *Config) {
		c.Clipboard = write
	}
}

// WithExplorer sets the block explorer link builder.
func WithExplorer(link func(hash string) string) Option {
	return func(c *Config) {
		c.ExplorerURL = link
	}
}

// WithExportDir sets the directory exports are written to.
func WithExportDir(dir string) Option {
	return func(c *Config) {
		c.ExportDir = dir
	}
}

// WithItemsPerPage sets the initial page size.
func WithItemsPerPage(n int) Option {
	return func(c *Config) {
		c.ItemsPerPage = n
	}
}

// WithSourceLabel sets the label shown next to the title.
func WithSourceLabel(label string) Option {
	return func(c *Config) {
		c.SourceLabel = label
	}
}

// WithSearchDelay sets the search debounce window.
func WithSearchDelay(d time.Duration) Option {
	return func(c *Config) {
		c.SearchDelay = d
	}
}

// WithFetchTimeout bounds each fetch of the transaction source.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.FetchTimeout = d
	}
}
