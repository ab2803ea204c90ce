// Package toast provides the transient notification queue. Toasts are
// never persisted: a missed push is simply not shown, the underlying log
// row still surfaces on the next fetch.
package toast

import (
	"sync"
	"time"
)

// State is the lifecycle phase of a toast.
type State string

const (
	// StateEntering plays the enter transition; purely visual.
	StateEntering State = "entering"
	// StateVisible is displayed with its expiry countdown armed.
	StateVisible State = "visible"
	// StateExiting plays the exit transition before removal.
	StateExiting State = "exiting"
	// StateRemoved is terminal; the toast is gone from the queue.
	StateRemoved State = "removed"
)

// Default display windows.
const (
	DefaultVisibleFor = 5000 * time.Millisecond
	DefaultExitFor    = 300 * time.Millisecond
)

// Toast is one transient notification.
type Toast struct {
	ID        string
	Type      string
	Message   string
	CreatedAt time.Time
	State     State
}

// timerFunc schedules fn after d and returns a stop function. The
// default uses time.AfterFunc; tests inject a manual scheduler so the
// lifecycle can be driven without wall-clock waits.
type timerFunc func(d time.Duration, fn func()) (stop func())

func defaultTimer(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Queue is an ordered collection of toasts with independent expiry
// timers. Closing one toast never affects the others' countdowns.
type Queue struct {
	mu         sync.Mutex
	visibleFor time.Duration
	exitFor    time.Duration
	timer      timerFunc
	onChange   func([]Toast)

	order  []string
	toasts map[string]*entry
}

type entry struct {
	toast      Toast
	stopExpiry func()
}

// Option configures a Queue.
type Option func(*Queue)

// WithDurations overrides the visible and exit windows.
func WithDurations(visibleFor, exitFor time.Duration) Option {
	return func(q *Queue) {
		if visibleFor > 0 {
			q.visibleFor = visibleFor
		}
		if exitFor > 0 {
			q.exitFor = exitFor
		}
	}
}

// WithTimer overrides the scheduler; used by tests.
func WithTimer(timer timerFunc) Option {
	return func(q *Queue) { q.timer = timer }
}

// WithOnChange registers a callback invoked with a snapshot after every
// state change. Renderers redraw from the snapshot.
func WithOnChange(fn func([]Toast)) Option {
	return func(q *Queue) { q.onChange = fn }
}

// NewQueue creates an empty toast queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		visibleFor: DefaultVisibleFor,
		exitFor:    DefaultExitFor,
		timer:      defaultTimer,
		toasts:     make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push adds a toast in the entering state and immediately arms its
// transition to visible. Pushing an id already present is a no-op, which
// deduplicates double deliveries of the same push event.
func (q *Queue) Push(id, toastType, message string, createdAt time.Time) {
	q.mu.Lock()
	if _, exists := q.toasts[id]; exists {
		q.mu.Unlock()
		return
	}
	q.toasts[id] = &entry{toast: Toast{
		ID:        id,
		Type:      toastType,
		Message:   message,
		CreatedAt: createdAt,
		State:     StateEntering,
	}}
	q.order = append(q.order, id)
	q.mu.Unlock()
	q.notify()

	// The enter transition is visual only; the visible countdown starts
	// right away.
	q.setVisible(id)
}

// setVisible moves an entering toast to visible and arms its expiry.
func (q *Queue) setVisible(id string) {
	q.mu.Lock()
	e, ok := q.toasts[id]
	if !ok || e.toast.State != StateEntering {
		q.mu.Unlock()
		return
	}
	e.toast.State = StateVisible
	e.stopExpiry = q.timer(q.visibleFor, func() { q.Dismiss(id) })
	q.mu.Unlock()
	q.notify()
}

// Dismiss begins removal of a toast, from either timer expiry or an
// explicit close. Dismissing a toast already exiting or removed is a
// safe no-op, so a timer firing after a user close changes nothing.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	e, ok := q.toasts[id]
	if !ok || e.toast.State == StateExiting || e.toast.State == StateRemoved {
		q.mu.Unlock()
		return
	}
	if e.stopExpiry != nil {
		e.stopExpiry()
		e.stopExpiry = nil
	}
	e.toast.State = StateExiting
	q.timer(q.exitFor, func() { q.remove(id) })
	q.mu.Unlock()
	q.notify()
}

// remove deletes the toast after its exit transition.
func (q *Queue) remove(id string) {
	q.mu.Lock()
	e, ok := q.toasts[id]
	if !ok || e.toast.State != StateExiting {
		q.mu.Unlock()
		return
	}
	e.toast.State = StateRemoved
	delete(q.toasts, id)
	for i, oid := range q.order {
		if oid == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			break
		}
	}
	q.mu.Unlock()
	q.notify()
}

// Active returns the current toasts in arrival order. Removed toasts are
// never included.
func (q *Queue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Toast, 0, len(q.order))
	for _, id := range q.order {
		if e, ok := q.toasts[id]; ok {
			out = append(out, e.toast)
		}
	}
	return out
}

// Len returns the number of toasts not yet removed.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.toasts)
}

// Shutdown stops all pending timers. Pending toasts stay in place; the
// owning view is being torn down anyway.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.toasts {
		if e.stopExpiry != nil {
			e.stopExpiry()
			e.stopExpiry = nil
		}
	}
}

func (q *Queue) notify() {
	if q.onChange != nil {
		q.onChange(q.Active())
	}
}
