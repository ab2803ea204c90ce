package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/activity-tray/internal/colors"
	"github.com/cristianoliveira/activity-tray/internal/reconcile"
)

// NewMarkAllCmd creates the mark-all command with explicit dependencies.
func NewMarkAllCmd(store reconcile.LogStore, cache reconcile.UnreadMarker, rows reconcile.Rows) *cobra.Command {
	var markAllActor string
	var markAllForce bool

	markAllCmd := &cobra.Command{
		Use:   "mark-all",
		Short: "Mark every activity log as read",
		Long: `Mark every activity log as read, server-wide, and clear the
local unread cache. Refuses when nothing is unread unless --force.

USAGE:
    activity-tray mark-all [OPTIONS]

OPTIONS:
    --actor <id>         Acting admin ID (default: from config)
    --force              Mark all even when nothing is locally unread
    -h, --help           Show this help`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := reconcile.New(store, cache, rows)
			if !markAllForce && !r.HasUnreadLoaded() {
				return fmt.Errorf("mark-all: nothing unread (use --force to mark anyway)")
			}
			if err := r.MarkAll(cmd.Context(), resolveActor(markAllActor)); err != nil {
				return err
			}
			colors.Success("All activities marked as read")
			return nil
		},
	}

	markAllCmd.Flags().StringVar(&markAllActor, "actor", "", "Acting admin ID")
	markAllCmd.Flags().BoolVar(&markAllForce, "force", false, "Mark all even when nothing is locally unread")

	return markAllCmd
}

// markAllCmd represents the mark-all command
var markAllCmd = NewMarkAllCmd(apiClient, unreadCache, cliRows{cache: unreadCache})

func init() {
	RootCmd.AddCommand(markAllCmd)
}
