package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceAccountConfig() Config {
	c := DefaultConfig()
	c.ServiceAccountPath = "/keys/sa.json"
	return c
}

func oauthConfigFixture() Config {
	c := DefaultConfig()
	c.ClientID = "client"
	c.ClientSecret = "secret"
	c.RefreshToken = "refresh"
	return c
}

func TestConfigAuthMethod(t *testing.T) {
	assert.Equal(t, AuthNone, DefaultConfig().AuthMethod())
	assert.Equal(t, AuthServiceAccount, serviceAccountConfig().AuthMethod())
	assert.Equal(t, AuthOAuth, oauthConfigFixture().AuthMethod())

	partial := DefaultConfig()
	partial.ClientID = "client"
	partial.RefreshToken = "refresh"
	assert.Equal(t, AuthNone, partial.AuthMethod())

	both := oauthConfigFixture()
	both.ServiceAccountPath = "/keys/sa.json"
	assert.Equal(t, AuthNone, both.AuthMethod())

	assert.Equal(t, "service account", AuthServiceAccount.String())
	assert.Equal(t, "oauth2", AuthOAuth.String())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   []error
	}{
		{name: "service account", mutate: func(*Config) {}},
		{
			name: "oauth",
			mutate: func(c *Config) {
				*c = oauthConfigFixture()
			},
		},
		{
			name: "existing spreadsheet without name",
			mutate: func(c *Config) {
				c.SpreadsheetID = "sheet-1"
				c.SpreadsheetName = ""
			},
		},
		{
			name: "no credentials",
			mutate: func(c *Config) {
				c.ServiceAccountPath = ""
			},
			want: []error{ErrNoCredentials},
		},
		{
			name: "both credential kinds",
			mutate: func(c *Config) {
				c.ClientID, c.ClientSecret, c.RefreshToken = "client", "secret", "refresh"
			},
			want: []error{ErrAmbiguousAuth},
		},
		{
			name: "no target",
			mutate: func(c *Config) {
				c.SpreadsheetName = ""
			},
			want: []error{ErrNoSpreadsheetTarget},
		},
		{
			name: "negative retry delay",
			mutate: func(c *Config) {
				c.RetryDelay = -time.Second
			},
			want: []error{ErrInvalidRetry},
		},
		{
			name: "several problems at once",
			mutate: func(c *Config) {
				c.ServiceAccountPath = ""
				c.BatchSize = 0
			},
			want: []error{ErrNoCredentials, ErrInvalidBatchSize},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := serviceAccountConfig()
			tt.mutate(&c)

			err := c.Validate()
			if len(tt.want) == 0 {
				require.NoError(t, err)
				return
			}
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.True(t, c.EnableFormatting)
	assert.Equal(t, 500, c.BatchSize)
	assert.Equal(t, "UTC", c.TimeZone)
	assert.ErrorIs(t, c.Validate(), ErrNoCredentials)
}
