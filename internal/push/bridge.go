// Package push owns the lifecycle of the push connection to the log
// store and fans inbound events out to subscribed handlers.
package push

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cristianoliveira/activity-tray/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

// Event is the canonical notification shape delivered to handlers.
type Event struct {
	// ID is unique per delivery within this process; derived from a
	// monotonic counter, not the arrival timestamp, so two events in the
	// same millisecond never collide.
	ID        string
	Type      string
	Data      map[string]interface{}
	Message   string
	Timestamp time.Time
}

// LogID returns the backend log row id carried in the payload, falling
// back to the delivery id when the payload omits it.
func (e Event) LogID() string {
	if id := stringField(e.Data, "log_id"); id != "" {
		return id
	}
	return e.ID
}

// Handler consumes a normalized event.
type Handler func(Event)

// frame is the wire shape of a push message.
type frame struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// Bridge manages one websocket connection and a per-type handler
// registry. Delivery is at-most-once: a dropped connection simply loses
// the events sent while it was down, and the next REST fetch surfaces
// the rows anyway.
type Bridge struct {
	url string
	log logging.Logger

	mu       sync.Mutex
	conn     *websocket.Conn
	done     chan struct{}
	nextSub  int
	nextID   uint64
	handlers map[string]map[int]Handler

	// now is the clock used to stamp events; overridable in tests.
	now func() time.Time
}

// NewBridge creates a bridge for the given websocket URL.
func NewBridge(url string, log logging.Logger) *Bridge {
	if log == nil {
		log = logging.GetGlobal()
	}
	return &Bridge{
		url:      url,
		log:      log,
		handlers: make(map[string]map[int]Handler),
		now:      time.Now,
	}
}

// Connect establishes the push connection and starts the read loop.
// Calling Connect on a connected bridge is a no-op.
func (b *Bridge) Connect() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != nil {
		return nil
	}
	conn, _, err := websocket.DefaultDialer.Dial(b.url, nil)
	if err != nil {
		return fmt.Errorf("push: dial %s: %w", b.url, err)
	}
	b.conn = conn
	b.done = make(chan struct{})
	go b.readPump(conn, b.done)
	go b.pingLoop(conn, b.done)
	b.log.Info("push connection established", "url", b.url)
	return nil
}

// Close tears down the connection and stops the read loop. Handlers stay
// registered; the owning component disposes of them.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return nil
	}
	close(b.done)
	err := b.conn.Close()
	b.conn = nil
	return err
}

// On subscribes a handler for the named event type and returns its
// unsubscribe function. Multiple handlers per type are allowed.
func (b *Bridge) On(eventType string, h Handler) (off func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[int]Handler)
	}
	id := b.nextSub
	b.nextSub++
	b.handlers[eventType][id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[eventType], id)
	}
}

// readPump reads frames until the connection drops or Close is called.
func (b *Bridge) readPump(conn *websocket.Conn, done chan struct{}) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-done:
				// deliberate Close
			default:
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					b.log.Warn("push connection lost", "error", err)
				}
				b.disconnected(conn)
			}
			return
		}

		var f frame
		if err := json.Unmarshal(raw, &f); err != nil {
			b.log.Warn("discarding malformed push frame", "error", err)
			continue
		}
		b.dispatch(b.normalize(f))
	}
}

// pingLoop keeps the connection alive.
func (b *Bridge) pingLoop(conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// disconnected clears the connection state after an unexpected drop so a
// later Connect can re-establish it.
func (b *Bridge) disconnected(conn *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == conn {
		_ = b.conn.Close()
		b.conn = nil
	}
}

// normalize maps a raw frame to the canonical event shape. Unknown types
// still produce an event with a generic message.
func (b *Bridge) normalize(f frame) Event {
	b.mu.Lock()
	b.nextID++
	id := fmt.Sprintf("%s-%d", f.Type, b.nextID)
	b.mu.Unlock()
	return Event{
		ID:        id,
		Type:      f.Type,
		Data:      f.Data,
		Message:   FormatMessage(f.Type, f.Data),
		Timestamp: b.now(),
	}
}

// dispatch hands the event to every handler of its type. Each handler
// runs in its own goroutine so a slow one cannot stall later deliveries.
func (b *Bridge) dispatch(evt Event) {
	b.mu.Lock()
	hs := make([]Handler, 0, len(b.handlers[evt.Type]))
	for _, h := range b.handlers[evt.Type] {
		hs = append(hs, h)
	}
	b.mu.Unlock()

	for _, h := range hs {
		go h(evt)
	}
}
