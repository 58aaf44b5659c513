package commands

import (
	"time"

	"github.com/penwyp/go-feed-digest/internal/application/digest"
	"github.com/spf13/cobra"
)

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Republish whenever the feed file changes",
	Long: `Publish from a --feed file, then publish again each time the file changes,
until interrupted. Bursts of writes are coalesced.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 500,
		"Milliseconds to wait for the file to settle before republishing")
}

func runWatch(cmd *cobra.Command, args []string) error {
	config, err := setup(cmd)
	if err != nil {
		return err
	}
	config.Debounce = time.Duration(watchDebounce) * time.Millisecond

	ctx, cancel := signalContext()
	defer cancel()

	svc, err := digest.NewService(ctx, config)
	if err != nil {
		return err
	}
	defer svc.Close()

	return svc.Watch(ctx)
}
