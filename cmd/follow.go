package cmd

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/activity-tray/internal/colors"
	"github.com/cristianoliveira/activity-tray/internal/config"
	"github.com/cristianoliveira/activity-tray/internal/domain"
	"github.com/cristianoliveira/activity-tray/internal/feed"
	"github.com/cristianoliveira/activity-tray/internal/logging"
	"github.com/cristianoliveira/activity-tray/internal/push"
	"github.com/cristianoliveira/activity-tray/internal/reconcile"
	"github.com/cristianoliveira/activity-tray/internal/toast"
	"github.com/cristianoliveira/activity-tray/internal/tui"
	"github.com/cristianoliveira/activity-tray/internal/unread"
)

// followCmd represents the follow command
var followCmd = &cobra.Command{
	Use:   "follow",
	Short: "Follow activity in a live view",
	Long: `Follow activity in a live view: a table of logs, transient
toasts for push events, and the unread badge. The unread cache is
re-polled on a fixed interval so concurrently running instances
converge.

USAGE:
    activity-tray follow [OPTIONS]

OPTIONS:
    --actor <id>       Acting admin ID (default: from config)
    --limit <n>        Rows per page (default: from config, 20)
    -h, --help         Show this help`,
	RunE: runFollow,
}

var (
	followActor string
	followLimit int
)

func runFollow(cmd *cobra.Command, args []string) error {
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	defer func() { _ = logging.ShutdownGlobal() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limit := followLimit
	if limit <= 0 {
		limit = config.GetInt("page_limit", domain.DefaultLimit)
	}
	controller := feed.NewController(apiClient, limit)
	reconciler := reconcile.New(apiClient, unreadCache, controller)

	// External signals funnel into one channel the bubbletea model drains.
	// Sends never block: a dropped unread signal is healed by the poller,
	// and a dropped toast snapshot is replaced by the next one.
	events := make(chan tea.Msg, 64)
	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		default:
		}
	}

	visibleFor, exitFor := toastDurations()
	queue := toast.NewQueue(
		toast.WithDurations(visibleFor, exitFor),
		toast.WithOnChange(func(ts []toast.Toast) { send(tui.ToastsUpdatedMsg{Toasts: ts}) }),
	)
	defer queue.Shutdown()

	unsubscribe := unreadBus.Subscribe(func(unread.Change) { send(tui.UnreadChangedMsg{}) })
	defer unsubscribe()

	bridge := push.NewBridge(config.Get("ws_url", "ws://localhost:8000/ws"), logging.GetGlobal())
	for _, action := range []domain.Action{
		domain.ActionBookBorrowed,
		domain.ActionBookReturned,
		domain.ActionPenaltyPaid,
	} {
		off := bridge.On(action.String(), func(evt push.Event) { send(tui.PushEventMsg{Event: evt}) })
		defer off()
	}
	if err := bridge.Connect(); err != nil {
		// The view still works from REST and the poller; toasts resume if
		// a later reconnect succeeds.
		colors.Warning(fmt.Sprintf("push connection unavailable: %v", err))
	}
	defer func() { _ = bridge.Close() }()

	pollInterval := time.Duration(config.GetInt("poll_interval_ms", 2000)) * time.Millisecond
	poller := unread.NewPoller(unreadCache, pollInterval)
	go poller.Run(ctx)

	model := tui.NewModel(controller, reconciler, unreadCache, queue, resolveActor(followActor), events)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		// Killed by signal is a normal shutdown.
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("follow: %w", err)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(followCmd)

	followCmd.Flags().StringVar(&followActor, "actor", "", "Acting admin ID")
	followCmd.Flags().IntVar(&followLimit, "limit", 0, "Rows per page (default: from config)")
}
