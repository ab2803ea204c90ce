package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/activity-tray/internal/colors"
	"github.com/cristianoliveira/activity-tray/internal/reconcile"
)

// NewMarkReadCmd creates the mark-read command with explicit dependencies.
func NewMarkReadCmd(store reconcile.LogStore, cache reconcile.UnreadMarker, rows reconcile.Rows) *cobra.Command {
	var markActor string

	markReadCmd := &cobra.Command{
		Use:   "mark-read <id>...",
		Short: "Mark one or more activity logs as read",
		Long: `Mark one or more activity logs as read by ID. More than one ID
uses the batch endpoint; either every row is marked or none is.

USAGE:
    activity-tray mark-read <id>...

OPTIONS:
    --actor <id>         Acting admin ID (default: from config)
    -h, --help           Show this help`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor := resolveActor(markActor)
			r := reconcile.New(store, cache, rows)

			var err error
			if len(args) == 1 {
				err = r.MarkOne(cmd.Context(), args[0], actor)
			} else {
				err = r.MarkBatch(cmd.Context(), args, actor)
			}
			if err != nil {
				return err
			}

			if len(args) == 1 {
				colors.Success(fmt.Sprintf("Activity %s marked as read", args[0]))
			} else {
				colors.Success(fmt.Sprintf("%d activities marked as read", len(args)))
			}
			return nil
		},
	}

	markReadCmd.Flags().StringVar(&markActor, "actor", "", "Acting admin ID")

	return markReadCmd
}

// markReadCmd represents the mark-read command
var markReadCmd = NewMarkReadCmd(apiClient, unreadCache, cliRows{cache: unreadCache})

func init() {
	RootCmd.AddCommand(markReadCmd)
}
