package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/activity-tray/internal/format"
)

// statusOutputWriter is the writer used by the status command. Can be changed for testing.
var statusOutputWriter io.Writer = os.Stdout

type unreadCounter interface {
	Count() int
}

// NewStatusCmd creates the status command with explicit dependencies.
// Status reads only the local unread cache; it never touches the network,
// so it stays fast enough for shell prompts and status bars.
func NewStatusCmd(cache unreadCounter) *cobra.Command {
	if cache == nil {
		panic("NewStatusCmd: cache dependency cannot be nil")
	}

	var statusCount bool

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the unread badge",
		Long: `Show the unread badge from the local cache.

USAGE:
    activity-tray status [OPTIONS]

OPTIONS:
    --count              Print the bare number only
    -h, --help           Show this help`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if statusCount {
				_, err := fmt.Fprintln(statusOutputWriter, cache.Count())
				return err
			}
			_, err := fmt.Fprintln(statusOutputWriter, format.Badge(cache.Count()))
			return err
		},
	}

	statusCmd.Flags().BoolVar(&statusCount, "count", false, "Print the bare number only")

	return statusCmd
}

// statusCmd represents the status command
var statusCmd = NewStatusCmd(unreadCache)

func init() {
	RootCmd.AddCommand(statusCmd)
}
