package push

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// pushServer is a test websocket endpoint that records connections and
// lets the test push frames to the newest one.
type pushServer struct {
	t        *testing.T
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns []*websocket.Conn
}

func newPushServer(t *testing.T) (*pushServer, *httptest.Server, string) {
	ps := &pushServer{t: t}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := ps.upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		ps.mu.Lock()
		ps.conns = append(ps.conns, conn)
		ps.mu.Unlock()
	}))
	t.Cleanup(server.Close)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	return ps, server, wsURL
}

func (ps *pushServer) send(frame string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	require.NotEmpty(ps.t, ps.conns)
	conn := ps.conns[len(ps.conns)-1]
	require.NoError(ps.t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
}

func (ps *pushServer) connectionCount() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.conns)
}

func waitForEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case evt := <-ch:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestConnectDeliversNormalizedEvents(t *testing.T) {
	ps, _, wsURL := newPushServer(t)

	bridge := NewBridge(wsURL, nil)
	events := make(chan Event, 1)
	bridge.On("BOOK_BORROWED", func(evt Event) { events <- evt })

	require.NoError(t, bridge.Connect())
	defer bridge.Close()

	ps.send(`{"type": "BOOK_BORROWED", "data": {"user_name": "J. Cruz", "total_items": 2}}`)

	evt := waitForEvent(t, events)
	require.Equal(t, "BOOK_BORROWED", evt.Type)
	require.Equal(t, "J. Cruz borrowed 2 item(s)", evt.Message)
	require.Equal(t, "J. Cruz", evt.Data["user_name"])
	require.False(t, evt.Timestamp.IsZero())
	require.NotEmpty(t, evt.ID)
}

func TestConnectIsIdempotent(t *testing.T) {
	ps, _, wsURL := newPushServer(t)

	bridge := NewBridge(wsURL, nil)
	require.NoError(t, bridge.Connect())
	defer bridge.Close()
	require.NoError(t, bridge.Connect())
	require.NoError(t, bridge.Connect())

	require.Equal(t, 1, ps.connectionCount())
}

func TestEventIDsAreDistinctForSameMillisecond(t *testing.T) {
	bridge := NewBridge("ws://unused", nil)
	fixed := time.Date(2025, 11, 28, 2, 53, 40, 0, time.UTC)
	bridge.now = func() time.Time { return fixed }

	f := frame{Type: "BOOK_BORROWED", Data: map[string]interface{}{}}
	first := bridge.normalize(f)
	second := bridge.normalize(f)

	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, first.Timestamp, second.Timestamp)
}

func TestOffStopsDelivery(t *testing.T) {
	ps, _, wsURL := newPushServer(t)

	bridge := NewBridge(wsURL, nil)
	first := make(chan Event, 4)
	second := make(chan Event, 4)
	offFirst := bridge.On("PENALTY_PAID", func(evt Event) { first <- evt })
	bridge.On("PENALTY_PAID", func(evt Event) { second <- evt })

	require.NoError(t, bridge.Connect())
	defer bridge.Close()

	ps.send(`{"type": "PENALTY_PAID", "data": {"user_name": "A. Reyes"}}`)
	waitForEvent(t, first)
	waitForEvent(t, second)

	offFirst()
	ps.send(`{"type": "PENALTY_PAID", "data": {"user_name": "A. Reyes"}}`)
	waitForEvent(t, second)

	select {
	case <-first:
		t.Fatal("unsubscribed handler still received an event")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSlowHandlerDoesNotStallOthers(t *testing.T) {
	ps, _, wsURL := newPushServer(t)

	bridge := NewBridge(wsURL, nil)
	release := make(chan struct{})
	fast := make(chan Event, 4)
	bridge.On("BOOK_RETURNED", func(Event) { <-release })
	bridge.On("BOOK_RETURNED", func(evt Event) { fast <- evt })

	require.NoError(t, bridge.Connect())
	defer bridge.Close()
	defer close(release)

	ps.send(`{"type": "BOOK_RETURNED", "data": {}}`)
	ps.send(`{"type": "BOOK_RETURNED", "data": {}}`)

	// both deliveries reach the fast handler while the slow one blocks
	waitForEvent(t, fast)
	waitForEvent(t, fast)
}

func TestMalformedFrameIsDiscarded(t *testing.T) {
	ps, _, wsURL := newPushServer(t)

	bridge := NewBridge(wsURL, nil)
	events := make(chan Event, 1)
	bridge.On("BOOK_BORROWED", func(evt Event) { events <- evt })

	require.NoError(t, bridge.Connect())
	defer bridge.Close()

	ps.send(`{{{not json`)
	ps.send(`{"type": "BOOK_BORROWED", "data": {"user_name": "J. Cruz"}}`)

	evt := waitForEvent(t, events)
	require.Equal(t, "J. Cruz borrowed 1 item(s)", evt.Message)
}

func TestCloseThenReconnect(t *testing.T) {
	ps, _, wsURL := newPushServer(t)

	bridge := NewBridge(wsURL, nil)
	require.NoError(t, bridge.Connect())
	require.NoError(t, bridge.Close())
	require.NoError(t, bridge.Connect())
	defer bridge.Close()

	require.Equal(t, 2, ps.connectionCount())
}
