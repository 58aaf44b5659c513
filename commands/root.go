package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-feed-digest/internal/application/digest"
	"github.com/penwyp/go-feed-digest/internal/data/provider"
	"github.com/penwyp/go-feed-digest/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Feed source
	feedPath string
	baseURL  string
	token    string
	dsn      string

	// Window related
	timezone string
	nowFlag  string

	// Pagination
	pageSize int
	depth    int

	// Output related
	outputFormat string
	strictOrder  bool

	rootCmd = &cobra.Command{
		Use:   "go-feed-digest [flags]",
		Short: "Daily publication digest of a timeline feed",
		Long: `go-feed-digest builds a daily publication from a newest-first timeline feed.

The publication window is the calendar day ending at 06:00 in the chosen
timezone. The feed is paged backwards until the window is covered, items are
deduplicated and filtered to the window, and a warning is printed when the
feed could not reach one of the window's boundaries.

Examples:
  go-feed-digest --feed timeline.jsonl                       # Publish from a JSONL file
  go-feed-digest --feed timeline.jsonl --timezone Asia/Tokyo  # Use a Tokyo publication day
  go-feed-digest --url https://api.twitter.com/1.1 --timezone account
  go-feed-digest --dsn postgres://localhost/feed -o json      # Publish from PostgreSQL as JSON
  go-feed-digest window --timezone Europe/London              # Show the current window
  go-feed-digest watch --feed timeline.jsonl                  # Republish when the file changes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:         runPublish,
	}
)

const (
	defaultLogFile = "~/.go-feed-digest/logs/app.log"

	// Exit statuses
	exitFailure     = 1
	exitUsage       = 2
	exitRateLimited = 3
)

func init() {
	// Feed source, shared with watch
	rootCmd.PersistentFlags().StringVar(&feedPath, "feed", "",
		"JSONL feed file, one item per line, newest first or unsorted")
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "",
		"Timeline API base URL (e.g., https://api.twitter.com/1.1)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "",
		"Bearer token for --url (default $"+digest.TokenEnv+")")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "",
		"PostgreSQL connection string (default $"+digest.DSNEnv+")")

	// Window
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Publication timezone (IANA name, Local, or account)")
	rootCmd.PersistentFlags().StringVar(&nowFlag, "now", "",
		"Evaluate the window at this RFC3339 instant instead of the current time")

	// Pagination
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 200,
		"Items requested per page (1-200)")
	rootCmd.PersistentFlags().IntVar(&depth, "depth", 800,
		"Most recent items a file feed serves (-1 = unlimited)")

	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv, summary)")
	rootCmd.PersistentFlags().BoolVar(&strictOrder, "strict-order", true,
		"Fail when a page is not ordered newest first")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

func runPublish(cmd *cobra.Command, args []string) error {
	config, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	svc, err := digest.NewService(ctx, config)
	if err != nil {
		return err
	}
	defer svc.Close()

	return svc.Run(ctx)
}

// setup initialises logging and builds the digest config from flags.
func setup(cmd *cobra.Command) (*digest.Config, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(util.LoggerOptions{Level: logLevel, File: logFile, Console: debug}); err != nil {
		return nil, fmt.Errorf("failed to initialise logging: %w", err)
	}

	clock, err := parseNow(nowFlag)
	if err != nil {
		return nil, err
	}

	config := &digest.Config{
		BaseURL:         baseURL,
		Token:           token,
		DSN:             dsn,
		Timezone:        timezone,
		Now:             clock,
		PageSize:        pageSize,
		Depth:           depth,
		OutputFormat:    outputFormat,
		Output:          cmd.OutOrStdout(),
		BestEffortOrder: !strictOrder,
	}
	if feedPath != "" {
		config.FeedPath = expandPath(feedPath)
	}
	return config, nil
}

// parseNow returns a clock frozen at value, or time.Now when value is empty.
func parseNow(value string) (func() time.Time, error) {
	if value == "" {
		return time.Now, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("%w: --now must be RFC3339 (e.g., 2024-03-10T12:00:00Z): %v", digest.ErrInvalidConfig, err)
	}
	return func() time.Time { return t }, nil
}

// signalContext is cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case provider.IsRateLimited(err):
		return exitRateLimited
	case errors.Is(err, digest.ErrInvalidConfig):
		return exitUsage
	default:
		return exitFailure
	}
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
