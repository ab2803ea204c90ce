package restapi

import (
	"context"
	"net/http"

	"github.com/cristianoliveira/activity-tray/internal/domain"
)

// ListParams narrows a /logs page request.
type ListParams struct {
	Limit  int
	Offset int
	Action string
}

// ListResult is one page of logs plus the server-reported totals.
type ListResult struct {
	Logs       []domain.Entry
	Total      int
	TotalPages int
}

// ActionCount is one row of the per-action stats breakdown.
type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// StatsResult holds the aggregate counts, independent of pagination.
type StatsResult struct {
	TotalActivities int           `json:"total_activities"`
	ByAction        []ActionCount `json:"by_action"`
}

// logEntryDTO is the wire shape of a log row.
type logEntryDTO struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	UserName  string `json:"user_name"`
	Position  string `json:"position"`
	Details   string `json:"details"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	IsRead    bool   `json:"is_read"`
	ReadAt    string `json:"read_at"`
	ReadBy    string `json:"read_by"`
}

func (d logEntryDTO) toDomain() domain.Entry {
	return domain.Entry{
		ID:            d.ID,
		Action:        domain.Action(d.Action),
		ActorName:     d.UserName,
		ActorPosition: d.Position,
		Details:       d.Details,
		Status:        domain.ParseStatus(d.Status),
		CreatedAt:     d.CreatedAt,
		IsRead:        d.IsRead,
		ReadAt:        d.ReadAt,
		ReadBy:        d.ReadBy,
	}
}

type listResponseDTO struct {
	Logs       []logEntryDTO `json:"logs"`
	Pagination struct {
		Total int `json:"total"`
		Pages int `json:"pages"`
	} `json:"pagination"`
}

// ListLogs fetches one page of activity logs. A malformed body degrades
// to an empty result so the feed renders "no data" instead of crashing;
// transport and HTTP errors are returned to the caller.
func (c *Client) ListLogs(ctx context.Context, params ListParams) (ListResult, error) {
	var dto listResponseDTO
	if err := c.do(ctx, http.MethodGet, buildLogsQuery(params), nil, &dto); err != nil {
		if isDecodeError(err) {
			return ListResult{Logs: []domain.Entry{}}, nil
		}
		return ListResult{}, err
	}
	logs := make([]domain.Entry, 0, len(dto.Logs))
	for _, d := range dto.Logs {
		logs = append(logs, d.toDomain())
	}
	return ListResult{
		Logs:       logs,
		Total:      dto.Pagination.Total,
		TotalPages: dto.Pagination.Pages,
	}, nil
}

// Stats fetches the aggregate counts. Malformed bodies degrade to zeros.
func (c *Client) Stats(ctx context.Context) (StatsResult, error) {
	var result StatsResult
	if err := c.do(ctx, http.MethodGet, "/logs/stats", nil, &result); err != nil {
		if isDecodeError(err) {
			return StatsResult{}, nil
		}
		return StatsResult{}, err
	}
	return result, nil
}

type markReadBody struct {
	ActorID string `json:"actorId"`
}

type markBatchBody struct {
	IDs     []string `json:"ids"`
	ActorID string   `json:"actorId"`
}

// MarkRead marks a single log read on the server.
func (c *Client) MarkRead(ctx context.Context, logID, actorID string) error {
	return c.do(ctx, http.MethodPut, "/logs/"+logID+"/read", markReadBody{ActorID: actorID}, nil)
}

// MarkBatch marks the given logs read in one call. Atomicity is the
// server's: either the whole batch is recorded or the call errors.
func (c *Client) MarkBatch(ctx context.Context, logIDs []string, actorID string) error {
	return c.do(ctx, http.MethodPut, "/logs/read-batch", markBatchBody{IDs: logIDs, ActorID: actorID}, nil)
}

// MarkAll marks every log read, server-wide.
func (c *Client) MarkAll(ctx context.Context, actorID string) error {
	return c.do(ctx, http.MethodPut, "/logs/read-all", markReadBody{ActorID: actorID}, nil)
}
