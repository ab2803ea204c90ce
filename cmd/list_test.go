package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/activity-tray/internal/domain"
	"github.com/cristianoliveira/activity-tray/internal/restapi"
)

type fakeLister struct {
	lastParams restapi.ListParams
	result     restapi.ListResult
	stats      restapi.StatsResult
	listErr    error
	statsErr   error
}

func (f *fakeLister) ListLogs(_ context.Context, params restapi.ListParams) (restapi.ListResult, error) {
	f.lastParams = params
	if f.listErr != nil {
		return restapi.ListResult{}, f.listErr
	}
	return f.result, nil
}

func (f *fakeLister) Stats(context.Context) (restapi.StatsResult, error) {
	if f.statsErr != nil {
		return restapi.StatsResult{}, f.statsErr
	}
	return f.stats, nil
}

func sampleEntries(ids ...string) []domain.Entry {
	out := make([]domain.Entry, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Entry{
			ID:        id,
			Action:    domain.ActionBookBorrowed,
			ActorName: "J. Cruz",
			Details:   "Borrowed 2 item(s)",
			Status:    domain.StatusCompleted,
			CreatedAt: "2025-11-28 02:53:40",
		})
	}
	return out
}

func captureList(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := listOutputWriter
	listOutputWriter = &buf
	t.Cleanup(func() { listOutputWriter = old })
	return &buf
}

func TestListPrintsPage(t *testing.T) {
	buf := captureList(t)
	fake := &fakeLister{result: restapi.ListResult{Logs: sampleEntries("log-1", "log-2"), Total: 2, TotalPages: 1}}

	c := NewListCmd(fake)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())

	require.Contains(t, buf.String(), "log-1")
	require.Contains(t, buf.String(), "J. Cruz")
	require.Contains(t, buf.String(), "Page 1 of 1 (2 total)")
}

func TestListEmptyPage(t *testing.T) {
	buf := captureList(t)
	fake := &fakeLister{}

	c := NewListCmd(fake)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())

	require.Contains(t, buf.String(), "No activity found")
}

func TestListActionFilterSentToServer(t *testing.T) {
	captureList(t)
	fake := &fakeLister{}

	c := NewListCmd(fake)
	c.SetArgs([]string{"--action", "PENALTY_PAID"})
	require.NoError(t, c.Execute())

	require.Equal(t, "PENALTY_PAID", fake.lastParams.Action)
}

func TestListRejectsUnknownAction(t *testing.T) {
	captureList(t)
	c := NewListCmd(&fakeLister{})
	c.SetArgs([]string{"--action", "BOOK_EATEN"})
	c.SilenceUsage = true
	c.SilenceErrors = true
	require.Error(t, c.Execute())
}

func TestListUnreadOnlyFiltersLocally(t *testing.T) {
	buf := captureList(t)
	rows := sampleEntries("log-1", "log-2")
	rows[1].IsRead = true
	fake := &fakeLister{result: restapi.ListResult{Logs: rows, Total: 2, TotalPages: 1}}

	c := NewListCmd(fake)
	c.SetArgs([]string{"--unread-only"})
	require.NoError(t, c.Execute())

	require.Contains(t, buf.String(), "log-1")
	require.NotContains(t, buf.String(), "log-2")
}

func TestListPropagatesTransportError(t *testing.T) {
	captureList(t)
	fake := &fakeLister{listErr: errors.New("connection refused")}

	c := NewListCmd(fake)
	c.SetArgs([]string{})
	c.SilenceUsage = true
	c.SilenceErrors = true
	require.Error(t, c.Execute())
}
