package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/activity-tray/internal/config"
	"github.com/cristianoliveira/activity-tray/internal/domain"
	"github.com/cristianoliveira/activity-tray/internal/feed"
	"github.com/cristianoliveira/activity-tray/internal/format"
)

const listCommandLong = `List activity logs with filters.

USAGE:
    activity-tray list [OPTIONS]

OPTIONS:
    --page <n>           Page to fetch (default: 1)
    --limit <n>          Rows per page (default: from config, 20)
    --action <action>    Server-side action filter: BOOK_BORROWED, BOOK_RETURNED, PENALTY_PAID
    --search <pattern>   Local substring search over actor, action, details
    --unread-only        Show only rows not yet read
    -h, --help           Show this help`

// listOutputWriter is the writer used by the list command. Can be changed for testing.
var listOutputWriter io.Writer = os.Stdout

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(client feed.LogLister) *cobra.Command {
	if client == nil {
		panic("NewListCmd: client dependency cannot be nil")
	}

	var listPage int
	var listLimit int
	var listAction string
	var listSearch string
	var listUnreadOnly bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List activity logs with filters",
		Long:  listCommandLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listAction != "" && !domain.Action(listAction).IsValid() {
				return fmt.Errorf("invalid action filter: %s (must be BOOK_BORROWED, BOOK_RETURNED, PENALTY_PAID)", listAction)
			}

			limit := listLimit
			if limit <= 0 {
				limit = config.GetInt("page_limit", domain.DefaultLimit)
			}
			controller := feed.NewController(client, limit)
			controller.SetActionFilter(domain.Action(listAction))
			controller.SetSearch(listSearch)
			controller.SetUnreadOnly(listUnreadOnly)

			if err := controller.FetchPage(cmd.Context()); err != nil {
				return err
			}
			if listPage > 1 && controller.SetPage(listPage) {
				if err := controller.FetchPage(cmd.Context()); err != nil {
					return err
				}
			}
			return printListPage(cmd.Context(), controller, listOutputWriter)
		},
	}

	listCmd.Flags().IntVar(&listPage, "page", 1, "Page to fetch")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Rows per page (default: from config)")
	listCmd.Flags().StringVar(&listAction, "action", "", "Server-side action filter")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Local substring search")
	listCmd.Flags().BoolVar(&listUnreadOnly, "unread-only", false, "Show only unread rows")

	return listCmd
}

func printListPage(_ context.Context, controller *feed.Controller, w io.Writer) error {
	visible := controller.Visible()
	if len(visible) == 0 {
		_, err := fmt.Fprintln(w, "No activity found")
		return err
	}
	if err := format.NewTableFormatter().FormatEntries(visible, w); err != nil {
		return err
	}
	p := controller.Pagination()
	_, err := fmt.Fprintf(w, "\nPage %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
	return err
}

// listCmd represents the list command
var listCmd = NewListCmd(apiClient)

func init() {
	RootCmd.AddCommand(listCmd)
}
