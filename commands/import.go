package commands

import (
	"fmt"
	"os"

	"github.com/penwyp/go-feed-digest/internal/application/digest"
	"github.com/penwyp/go-feed-digest/internal/data/provider"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a JSONL feed file into PostgreSQL",
	Long: `Create the timeline_items table if needed and upsert every item of a --feed
file into the database named by --dsn. The table can then be published with
go-feed-digest --dsn.`,
	Example: `  go-feed-digest import --feed timeline.jsonl --dsn postgres://localhost/feed?sslmode=disable`,
	Args:    cobra.NoArgs,
	RunE:    runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if _, err := setup(cmd); err != nil {
		return err
	}

	target := dsn
	if target == "" {
		target = os.Getenv(digest.DSNEnv)
	}
	if feedPath == "" || target == "" {
		return fmt.Errorf("%w: import needs --feed and --dsn (or $%s)", digest.ErrInvalidConfig, digest.DSNEnv)
	}

	ctx, cancel := signalContext()
	defer cancel()

	store, err := provider.OpenPostgres(ctx, target, pageSize)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := digest.ImportFeed(ctx, store, expandPath(feedPath))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items into timeline_items\n", n)
	return err
}
