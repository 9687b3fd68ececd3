package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/txscope/internal/common"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultAPITimeout, cfg.API.Timeout)
	assert.Equal(t, "/data/txscope/txscope.db", cfg.Storage.Path)
	assert.Equal(t, 15, cfg.View.ItemsPerPage)
	assert.Equal(t, DefaultTheme, cfg.View.Theme)
	assert.Equal(t, "https://etherscan.io/tx/0xabc", cfg.ExplorerLink("0xabc"))
	assert.Equal(t, "", cfg.ExplorerLink(""))
}

func TestLoad_Overrides(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	v := newViper()
	v.Set("api.base_url", " https://api.example.com ")
	v.Set("api.timeout", "5s")
	v.Set("storage.path", "~/cache/tx.db")
	v.Set("view.items_per_page", 50)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, filepath.Join(home, "cache", "tx.db"), cfg.Storage.Path)
	assert.Equal(t, 50, cfg.View.ItemsPerPage)
	assert.NoError(t, cfg.RequireAPI())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{key: "view.items_per_page", value: 12},
		{key: "api.timeout", value: "-1s"},
		{key: "explorer.tx_url", value: "https://explorer/tx/"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestRequireAPI(t *testing.T) {
	cfg := &Config{}

	err := cfg.RequireAPI()

	require.ErrorIs(t, err, common.ErrMissingConfig)
	assert.Contains(t, common.UserMessage(err), "api.base_url")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("TXSCOPE_TEST_DIR", "/tmp/tx")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "a"), ExpandPath("~/a"))
	assert.Equal(t, "/tmp/tx/out", ExpandPath("$TXSCOPE_TEST_DIR/out"))
	assert.Equal(t, "~other/cache.db", ExpandPath("~other/cache.db"))
	assert.Equal(t, ":memory:", ExpandPath(":memory:"))
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "env-sheet")

	v := newViper()
	_, err := LoadSheetsConfig(v)
	require.Error(t, err)

	v.Set("sheets.service_account_path", "/keys/sa.json")
	v.Set("sheets.batch_size", 250)
	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
	assert.Equal(t, "env-sheet", cfg.SpreadsheetID)
	assert.Equal(t, 250, cfg.BatchSize)
}
