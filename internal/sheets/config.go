// Package sheets publishes transaction exports to Google Sheets.
package sheets

import (
	"errors"
	"time"
)

// AuthMethod identifies how the publisher authenticates against Google.
type AuthMethod int

const (
	AuthNone AuthMethod = iota
	AuthOAuth
	AuthServiceAccount
)

func (a AuthMethod) String() string {
	switch a {
	case AuthOAuth:
		return "oauth2"
	case AuthServiceAccount:
		return "service account"
	default:
		return "none"
	}
}

// Configuration errors.
var (
	ErrNoCredentials       = errors.New("google sheets credentials are not configured")
	ErrAmbiguousAuth       = errors.New("both oauth2 and service account credentials are configured")
	ErrNoSpreadsheetTarget = errors.New("a spreadsheet id or spreadsheet name is required")
	ErrInvalidBatchSize    = errors.New("batch size must be positive")
	ErrInvalidRetry        = errors.New("retry settings cannot be negative")
)

// Config describes where exports are published and with which credentials.
// OAuth2 needs all of ClientID, ClientSecret and RefreshToken.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	// SpreadsheetID targets an existing spreadsheet. When empty a spreadsheet named
	// SpreadsheetName is created on every publish.
	SpreadsheetID    string
	SpreadsheetName  string
	TimeZone         string
	BatchSize        int
	RetryAttempts    int
	RetryDelay       time.Duration
	EnableFormatting bool
}

// DefaultConfig returns a Config without credentials.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  "txscope transactions",
		TimeZone:         "UTC",
		BatchSize:        500,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
		EnableFormatting: true,
	}
}

// AuthMethod reports the configured credential kind. It returns AuthNone when the
// credentials are missing or ambiguous.
func (c Config) AuthMethod() AuthMethod {
	oauth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	switch {
	case oauth && c.ServiceAccountPath != "":
		return AuthNone
	case oauth:
		return AuthOAuth
	case c.ServiceAccountPath != "":
		return AuthServiceAccount
	default:
		return AuthNone
	}
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error

	oauth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	switch {
	case oauth && c.ServiceAccountPath != "":
		errs = append(errs, ErrAmbiguousAuth)
	case !oauth && c.ServiceAccountPath == "":
		errs = append(errs, ErrNoCredentials)
	}

	if c.SpreadsheetID == "" && c.SpreadsheetName == "" {
		errs = append(errs, ErrNoSpreadsheetTarget)
	}
	if c.BatchSize <= 0 {
		errs = append(errs, ErrInvalidBatchSize)
	}
	if c.RetryAttempts < 0 || c.RetryDelay < 0 {
		errs = append(errs, ErrInvalidRetry)
	}

	return errors.Join(errs...)
}
