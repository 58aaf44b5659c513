package digest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/penwyp/go-feed-digest/internal/core/constants"
)

const (
	// TokenEnv and DSNEnv are consulted when the matching flag is empty.
	TokenEnv = "FEED_DIGEST_TOKEN"
	DSNEnv   = "FEED_DIGEST_DSN"

	// AccountTimezone asks the provider for the account's timezone.
	AccountTimezone = "account"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config contains configuration for a digest run
type Config struct {
	// Feed source, exactly one of these
	FeedPath string
	BaseURL  string
	DSN      string

	Token string

	// Window settings
	Timezone string
	Now      func() time.Time

	// Pagination
	PageSize int
	Depth    int

	// Output
	OutputFormat string
	Output       io.Writer

	// BestEffortOrder accepts pages whose items are not newest-first.
	BestEffortOrder bool

	// Watch settings
	Debounce time.Duration
}

// Validate fills defaults and checks that exactly one feed source is set.
func (c *Config) Validate() error {
	if c.Token == "" {
		c.Token = os.Getenv(TokenEnv)
	}
	if c.DSN == "" && c.FeedPath == "" && c.BaseURL == "" {
		c.DSN = os.Getenv(DSNEnv)
	}

	sources := 0
	for _, s := range []string{c.FeedPath, c.BaseURL, c.DSN} {
		if s != "" {
			sources++
		}
	}
	switch {
	case sources == 0:
		return fmt.Errorf("%w: one of --feed, --url or --dsn is required", ErrInvalidConfig)
	case sources > 1:
		return fmt.Errorf("%w: --feed, --url and --dsn are mutually exclusive", ErrInvalidConfig)
	}

	if c.Timezone == AccountTimezone && c.BaseURL == "" {
		return fmt.Errorf("%w: --timezone account needs --url", ErrInvalidConfig)
	}
	return c.applyDefaults()
}

// applyDefaults fills unset fields. It does not require a feed source.
func (c *Config) applyDefaults() error {
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.PageSize == 0 {
		c.PageSize = constants.MaxTimelineCount
	}
	if c.PageSize < 0 || c.PageSize > constants.MaxTimelineCount {
		return fmt.Errorf("%w: page size must be between 1 and %d", ErrInvalidConfig, constants.MaxTimelineCount)
	}
	if c.Depth == 0 {
		c.Depth = constants.HomeTimelineDepth
	}
	if c.OutputFormat == "" {
		c.OutputFormat = "table"
	}
	if c.Output == nil {
		c.Output = os.Stdout
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative", ErrInvalidConfig)
	}
	if c.Debounce == 0 {
		c.Debounce = 500 * time.Millisecond
	}
	return nil
}
