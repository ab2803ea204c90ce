package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/activity-tray/internal/domain"
	"github.com/cristianoliveira/activity-tray/internal/feed"
	"github.com/cristianoliveira/activity-tray/internal/format"
	"github.com/cristianoliveira/activity-tray/internal/reconcile"
	"github.com/cristianoliveira/activity-tray/internal/toast"
	"github.com/cristianoliveira/activity-tray/internal/unread"
)

const (
	headerFooterLines     = 6
	defaultViewportWidth  = 100
	defaultViewportHeight = 24
	statusClearDuration   = 5 * time.Second
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	badgeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Faint(true)

	toastVisibleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("6")).
				Padding(0, 1)
	toastExitingStyle = toastVisibleStyle.Faint(true)
)

// statusClearMsg clears a transient status line after its display window.
type statusClearMsg struct{ seq int }

// Model is the bubbletea model for the follow view. It composes the feed
// controller, the reconciler, the unread cache, and the toast queue; all
// external signals arrive as messages through the events channel.
type Model struct {
	feed       *feed.Controller
	reconciler *reconcile.Reconciler
	cache      *unread.Cache
	queue      *toast.Queue
	actorID    string

	events <-chan tea.Msg

	table      table.Model
	toasts     []toast.Toast
	unread     int
	unreadOnly bool
	status     string
	statusSeq  int
	width      int
	height     int
	quitting   bool
}

// NewModel creates the follow view. The events channel carries push
// events, toast snapshots, and unread-change signals produced by the
// wiring outside the bubbletea loop.
func NewModel(
	controller *feed.Controller,
	reconciler *reconcile.Reconciler,
	cache *unread.Cache,
	queue *toast.Queue,
	actorID string,
	events <-chan tea.Msg,
) *Model {
	if controller == nil || reconciler == nil || cache == nil || queue == nil {
		panic("tui.NewModel: all dependencies must be non-nil")
	}

	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Date", Width: 19},
		{Title: "Action", Width: 14},
		{Title: "Actor", Width: 22},
		{Title: "Status", Width: 9},
		{Title: "Read", Width: 6},
		{Title: "Details", Width: 30},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(defaultViewportHeight-headerFooterLines),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	t.SetStyles(styles)

	m := &Model{
		feed:       controller,
		reconciler: reconciler,
		cache:      cache,
		queue:      queue,
		actorID:    actorID,
		events:     events,
		table:      t,
		unread:     cache.Count(),
		width:      defaultViewportWidth,
		height:     defaultViewportHeight,
	}
	m.syncRows()
	return m
}

// Init starts the external-event listener and triggers the first fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.refreshCmd())
}

// listen waits for the next external signal. Re-armed after every
// delivery; when the channel closes the view shuts down.
func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.events
		if !ok {
			return tea.Quit()
		}
		return msg
	}
}

func (m *Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return LogsRefreshedMsg{Err: m.feed.Refresh(ctx)}
	}
}

func (m *Model) markOneCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return MarkDoneMsg{Err: m.reconciler.MarkOne(ctx, id, m.actorID)}
	}
}

func (m *Model) markAllCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return MarkDoneMsg{Err: m.reconciler.MarkAll(ctx, m.actorID)}
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(3, msg.Height-headerFooterLines))
		return m, nil

	case PushEventMsg:
		// Queue the toast and record the row unread; the table catches up
		// on the refetch.
		m.queue.Push(msg.Event.ID, msg.Event.Type, msg.Event.Message, msg.Event.Timestamp)
		_ = m.cache.Add(msg.Event.LogID())
		return m, tea.Batch(m.refreshCmd(), m.listen())

	case ToastsUpdatedMsg:
		m.toasts = msg.Toasts
		return m, m.listen()

	case UnreadChangedMsg:
		m.unread = m.cache.Count()
		return m, m.listen()

	case LogsRefreshedMsg:
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("refresh failed: %v", msg.Err))
		}
		m.syncRows()
		return m, nil

	case MarkDoneMsg:
		if msg.Err != nil {
			return m, m.setStatus(fmt.Sprintf("mark read failed: %v", msg.Err))
		}
		m.syncRows()
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "r":
		if entry, ok := m.selectedEntry(); ok && !entry.IsRead {
			return m, m.markOneCmd(entry.ID)
		}
		return m, nil

	case "a":
		if !m.reconciler.HasUnreadLoaded() && m.unread == 0 {
			return m, m.setStatus("nothing unread")
		}
		return m, m.markAllCmd()

	case "left", "h":
		if m.feed.SetPage(m.feed.Pagination().Page - 1) {
			return m, m.refreshCmd()
		}
		return m, nil

	case "right", "l":
		if m.feed.SetPage(m.feed.Pagination().Page + 1) {
			return m, m.refreshCmd()
		}
		return m, nil

	case "u":
		m.unreadOnly = !m.unreadOnly
		m.feed.SetUnreadOnly(m.unreadOnly)
		m.syncRows()
		return m, nil

	case "R":
		return m, m.refreshCmd()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusClearDuration, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// syncRows rebuilds the table from the feed's visible rows.
func (m *Model) syncRows() {
	visible := m.feed.Visible()
	rows := make([]table.Row, 0, len(visible))
	for _, e := range visible {
		read := "NEW"
		if e.IsRead {
			read = "read"
		}
		rows = append(rows, table.Row{
			e.ID,
			domain.FormatLocal(e.CreatedAt),
			string(e.Action),
			e.Actor(),
			string(e.Status),
			read,
			e.Details,
		})
	}
	m.table.SetRows(rows)
	m.unread = m.cache.Count()
}

func (m *Model) selectedEntry() (domain.Entry, bool) {
	visible := m.feed.Visible()
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(visible) {
		return domain.Entry{}, false
	}
	return visible[idx], true
}

// View renders the header, the table, the toast stack, and the footer.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	p := m.feed.Pagination()
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleStyle.Render("Activity"),
		"  ",
		badgeStyle.Render(format.Badge(m.unread)),
		"  ",
		helpStyle.Render(fmt.Sprintf("page %d/%d (%d total)", p.Page, max(1, p.TotalPages), p.Total)),
	)

	sections := []string{header, m.table.View()}

	for _, t := range m.toasts {
		style := toastVisibleStyle
		if t.State == toast.StateExiting {
			style = toastExitingStyle
		}
		sections = append(sections, style.Render(t.Message))
	}

	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, helpStyle.Render("r mark read • a mark all • u unread only • ←/→ page • R refresh • q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
