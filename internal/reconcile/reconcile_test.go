package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	markReadErr  error
	markBatchErr error
	markAllErr   error

	markedOne   []string
	markedBatch [][]string
	markedAll   int
}

func (f *fakeStore) MarkRead(_ context.Context, logID, _ string) error {
	if f.markReadErr != nil {
		return f.markReadErr
	}
	f.markedOne = append(f.markedOne, logID)
	return nil
}

func (f *fakeStore) MarkBatch(_ context.Context, logIDs []string, _ string) error {
	if f.markBatchErr != nil {
		return f.markBatchErr
	}
	f.markedBatch = append(f.markedBatch, logIDs)
	return nil
}

func (f *fakeStore) MarkAll(_ context.Context, _ string) error {
	if f.markAllErr != nil {
		return f.markAllErr
	}
	f.markedAll++
	return nil
}

type fakeCache struct {
	mu        sync.Mutex
	unread    map[string]bool
	clearedAt int
}

func newFakeCache(ids ...string) *fakeCache {
	c := &fakeCache{unread: make(map[string]bool)}
	for _, id := range ids {
		c.unread[id] = true
	}
	return c
}

func (f *fakeCache) MarkRead(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.unread, id)
	return nil
}

func (f *fakeCache) MarkAllRead() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unread = make(map[string]bool)
	f.clearedAt++
	return nil
}

func (f *fakeCache) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.unread)
}

type fakeRows struct {
	read   map[string]string // id -> readBy
	loaded []string
	unread []string
}

func newFakeRows(loaded, unread []string) *fakeRows {
	return &fakeRows{read: make(map[string]string), loaded: loaded, unread: unread}
}

func (f *fakeRows) ApplyRead(ids []string, _ time.Time, readBy string) {
	for _, id := range ids {
		f.read[id] = readBy
	}
}

func (f *fakeRows) LoadedIDs() []string       { return f.loaded }
func (f *fakeRows) UnreadLoadedIDs() []string { return f.unread }

func TestMarkOneSuccess(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache("log-1", "log-2")
	rows := newFakeRows([]string{"log-1", "log-2"}, []string{"log-1", "log-2"})
	r := New(store, cache, rows)

	require.NoError(t, r.MarkOne(context.Background(), "log-1", "admin-7"))

	require.Equal(t, []string{"log-1"}, store.markedOne)
	require.Equal(t, "admin-7", rows.read["log-1"])
	require.Equal(t, 1, cache.count())
}

func TestMarkOneFailureLeavesStateUntouched(t *testing.T) {
	store := &fakeStore{markReadErr: errors.New("http 502")}
	cache := newFakeCache("log-1")
	rows := newFakeRows([]string{"log-1"}, []string{"log-1"})
	r := New(store, cache, rows)

	err := r.MarkOne(context.Background(), "log-1", "admin-7")
	require.Error(t, err)
	require.Empty(t, rows.read)
	require.Equal(t, 1, cache.count())
}

func TestMarkBatchAtomicFromCallersView(t *testing.T) {
	store := &fakeStore{markBatchErr: errors.New("http 500")}
	cache := newFakeCache("a", "b", "c")
	rows := newFakeRows([]string{"a", "b", "c"}, []string{"a", "b", "c"})
	r := New(store, cache, rows)

	err := r.MarkBatch(context.Background(), []string{"a", "b", "c"}, "admin-7")
	require.Error(t, err)
	require.Empty(t, rows.read)
	require.Equal(t, 3, cache.count())
}

func TestMarkBatchSuccessAppliesAll(t *testing.T) {
	store := &fakeStore{}
	cache := newFakeCache("a", "b", "c")
	rows := newFakeRows([]string{"a", "b", "c"}, []string{"a", "b"})
	r := New(store, cache, rows)

	require.NoError(t, r.MarkBatch(context.Background(), []string{"a", "b"}, "admin-7"))

	require.Equal(t, [][]string{{"a", "b"}}, store.markedBatch)
	require.Len(t, rows.read, 2)
	require.Equal(t, 1, cache.count())
}

func TestMarkBatchEmptyIsNoOp(t *testing.T) {
	store := &fakeStore{}
	r := New(store, newFakeCache(), newFakeRows(nil, nil))

	require.NoError(t, r.MarkBatch(context.Background(), nil, "admin-7"))
	require.Empty(t, store.markedBatch)
}

func TestMarkAllClearsEverything(t *testing.T) {
	store := &fakeStore{}
	// cache holds an id whose row is not loaded; MarkAll still clears it
	cache := newFakeCache("log-1", "log-ghost")
	rows := newFakeRows([]string{"log-1"}, []string{"log-1"})
	r := New(store, cache, rows)

	require.NoError(t, r.MarkAll(context.Background(), "admin-7"))

	require.Equal(t, 1, store.markedAll)
	require.Equal(t, "admin-7", rows.read["log-1"])
	require.Zero(t, cache.count())
}

func TestHasUnreadLoadedGuard(t *testing.T) {
	r := New(&fakeStore{}, newFakeCache(), newFakeRows([]string{"a"}, nil))
	require.False(t, r.HasUnreadLoaded())

	r = New(&fakeStore{}, newFakeCache(), newFakeRows([]string{"a"}, []string{"a"}))
	require.True(t, r.HasUnreadLoaded())
}
