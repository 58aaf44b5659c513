package digest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-feed-digest/internal/core/model"
	"github.com/penwyp/go-feed-digest/internal/core/publication"
	"github.com/penwyp/go-feed-digest/internal/data/provider"
	"github.com/penwyp/go-feed-digest/internal/presentation/formatter"
	"github.com/penwyp/go-feed-digest/internal/util"
)

// Service builds publications from one configured feed.
type Service struct {
	config    *Config
	provider  provider.Provider
	formatter formatter.Formatter
}

// NewService validates config and opens the feed it names.
func NewService(ctx context.Context, config *Config) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		p   provider.Provider
		err error
	)
	switch {
	case config.FeedPath != "":
		p = provider.NewFileProvider(config.FeedPath, config.PageSize, config.Depth)
	case config.BaseURL != "":
		p, err = provider.NewHTTPProvider(provider.HTTPConfig{
			BaseURL:  config.BaseURL,
			Token:    config.Token,
			PageSize: config.PageSize,
		})
	default:
		p, err = provider.OpenPostgres(ctx, config.DSN, config.PageSize)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}

	return NewServiceWithProvider(config, p)
}

// NewServiceWithProvider builds a service around an already opened provider.
func NewServiceWithProvider(config *Config, p provider.Provider) (*Service, error) {
	if err := config.applyDefaults(); err != nil {
		return nil, err
	}

	f, err := formatter.New(config.OutputFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &Service{config: config, provider: p, formatter: f}, nil
}

// Location resolves the configured timezone, asking the provider when the
// timezone is "account".
func (s *Service) Location(ctx context.Context) (*time.Location, error) {
	name := s.config.Timezone
	if name == AccountTimezone {
		source, ok := s.provider.(provider.TimeZoneSource)
		if !ok {
			return nil, provider.ErrNoTimeZone
		}
		tz, err := source.FetchTimeZone(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch account timezone: %w", err)
		}
		util.LogDebugf("Using account timezone %s", tz)
		name = tz
	}
	return util.LoadTimezone(name)
}

// Publish computes the current window and aggregates the feed over it.
func (s *Service) Publish(ctx context.Context) (model.Result, *time.Location, error) {
	loc, err := s.Location(ctx)
	if err != nil {
		return model.Result{}, nil, err
	}

	window := publication.ComputeWindow(s.config.Now(), loc)
	util.LogInfof("Publishing %s for window %s (%s)", s.provider.Name(), window, loc)

	start := time.Now()
	result, err := publication.Aggregate(ctx, s.provider.Fetch, window,
		publication.WithOrderCheck(!s.config.BestEffortOrder))
	if err != nil {
		util.LogErrorf("Aggregation of %s failed: %v", s.provider.Name(), err)
		return model.Result{}, loc, err
	}

	util.LogInfo("Published",
		util.F("provider", s.provider.Name()),
		util.F("items", len(result.Items)),
		util.F("fetches", result.Fetches),
		util.F("warning", result.Warning.String()),
		util.F("elapsed", time.Since(start)))
	return result, loc, nil
}

// Run publishes once and writes the formatted result.
func (s *Service) Run(ctx context.Context) error {
	result, loc, err := s.Publish(ctx)
	if err != nil {
		return err
	}
	return s.Render(s.config.Output, result, loc)
}

// Render writes result with the configured formatter.
func (s *Service) Render(w io.Writer, result model.Result, loc *time.Location) error {
	return s.formatter.Format(w, formatter.NewPublication(result, loc))
}

// Close releases the provider's resources.
func (s *Service) Close() error {
	if c, ok := s.provider.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
