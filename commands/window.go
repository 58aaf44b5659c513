package commands

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-feed-digest/internal/application/digest"
	"github.com/penwyp/go-feed-digest/internal/core/constants"
	"github.com/penwyp/go-feed-digest/internal/core/publication"
	"github.com/penwyp/go-feed-digest/internal/util"
	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Print the current publication window",
	Long: `Print the publication window for the chosen timezone without reading a feed.

The window ends at the most recent 06:00 local time and starts at 06:00 on the
previous calendar day, so it is 23 or 25 hours long across DST changes.`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

type windowView struct {
	Timezone string    `json:"timezone"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Hours    float64   `json:"hours"`
}

func init() {
	rootCmd.AddCommand(windowCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	clock, err := parseNow(nowFlag)
	if err != nil {
		return err
	}
	if timezone == digest.AccountTimezone {
		return fmt.Errorf("%w: --timezone account is only supported when publishing from --url", digest.ErrInvalidConfig)
	}

	tp, err := util.NewTimeProvider(timezone, clock)
	if err != nil {
		return err
	}
	window := publication.ComputeWindow(tp.Now(), tp.Location())

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		data, err := sonic.ConfigDefault.MarshalIndent(windowView{
			Timezone: tp.Location().String(),
			Start:    window.Start,
			End:      window.End,
			Hours:    window.Duration().Hours(),
		}, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	length := window.Duration().String()
	if window.Duration() != constants.NominalWindowDuration {
		length += " (daylight saving transition)"
	}

	const layout = "2006-01-02 15:04 MST"
	_, err = fmt.Fprintf(out, "Timezone: %s\nStart:    %s (%s)\nEnd:      %s (%s)\nLength:   %s\n",
		tp.Location(),
		tp.Format(window.Start, layout), window.Start.Format(time.RFC3339),
		tp.Format(window.End, layout), window.End.Format(time.RFC3339),
		length)
	return err
}
