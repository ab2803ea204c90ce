package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cristianoliveira/activity-tray/internal/domain"
)

func TestListLogs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/logs", r.URL.Path)
		require.Equal(t, "20", r.URL.Query().Get("limit"))
		require.Equal(t, "40", r.URL.Query().Get("offset"))
		require.Equal(t, "BOOK_BORROWED", r.URL.Query().Get("action"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"logs": [{
				"id": "log-1",
				"action": "BOOK_BORROWED",
				"user_name": "J. Cruz",
				"position": "Student",
				"details": "Borrowed 2 item(s)",
				"status": "completed",
				"created_at": "2025-11-28 02:53:40",
				"is_read": false
			}],
			"pagination": {"total": 95, "pages": 5}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.ListLogs(context.Background(), ListParams{Limit: 20, Offset: 40, Action: "BOOK_BORROWED"})
	require.NoError(t, err)

	require.Equal(t, 95, result.Total)
	require.Equal(t, 5, result.TotalPages)
	require.Len(t, result.Logs, 1)
	entry := result.Logs[0]
	require.Equal(t, "log-1", entry.ID)
	require.Equal(t, domain.ActionBookBorrowed, entry.Action)
	require.Equal(t, "J. Cruz (Student)", entry.Actor())
	require.Equal(t, domain.StatusCompleted, entry.Status)
	require.False(t, entry.IsRead)
}

func TestListLogsMalformedBodyDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.ListLogs(context.Background(), ListParams{Limit: 20})
	require.NoError(t, err)
	require.Empty(t, result.Logs)
	require.Zero(t, result.Total)
}

func TestListLogsServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ListLogs(context.Background(), ListParams{Limit: 20})
	require.Error(t, err)
}

func TestStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/logs/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"total_activities": 12, "by_action": [{"action": "PENALTY_PAID", "count": 3}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12, stats.TotalActivities)
	require.Equal(t, []ActionCount{{Action: "PENALTY_PAID", Count: 3}}, stats.ByAction)
}

func TestMarkReadVariants(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotBody = nil
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	require.NoError(t, client.MarkRead(ctx, "log-1", "admin-7"))
	require.Equal(t, "/logs/log-1/read", gotPath)
	require.Equal(t, "admin-7", gotBody["actorId"])

	require.NoError(t, client.MarkBatch(ctx, []string{"log-1", "log-2"}, "admin-7"))
	require.Equal(t, "/logs/read-batch", gotPath)
	require.Len(t, gotBody["ids"], 2)

	require.NoError(t, client.MarkAll(ctx, "admin-7"))
	require.Equal(t, "/logs/read-all", gotPath)
}

func TestMarkReadFailureReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.Error(t, client.MarkRead(context.Background(), "log-1", "admin-7"))
}
