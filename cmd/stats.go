package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/activity-tray/internal/feed"
)

// statsOutputWriter is the writer used by the stats command. Can be changed for testing.
var statsOutputWriter io.Writer = os.Stdout

// NewStatsCmd creates the stats command with explicit dependencies.
func NewStatsCmd(client feed.LogLister) *cobra.Command {
	if client == nil {
		panic("NewStatsCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate activity counts",
		Long: `Show aggregate activity counts.

USAGE:
    activity-tray stats

OPTIONS:
    -h, --help           Show this help`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := client.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			if _, err := fmt.Fprintf(statsOutputWriter, "Total activities: %d\n", stats.TotalActivities); err != nil {
				return err
			}
			for _, ac := range stats.ByAction {
				if _, err := fmt.Fprintf(statsOutputWriter, "  %-16s %d\n", ac.Action, ac.Count); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// statsCmd represents the stats command
var statsCmd = NewStatsCmd(apiClient)

func init() {
	RootCmd.AddCommand(statsCmd)
}
