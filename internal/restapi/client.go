// Package restapi provides a thin HTTP client for the log store's REST
// API. It handles JSON marshaling and the endpoints the tray consumes:
// paginated log listing, aggregate stats, and the mark-read variants.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// errMalformedBody marks responses whose body could not be decoded.
// Read paths degrade to empty results on it so the feed stays renderable.
var errMalformedBody = errors.New("malformed response body")

// isDecodeError reports whether err stems from an undecodable body.
func isDecodeError(err error) bool {
	return errors.Is(err, errMalformedBody)
}

// Client is the HTTP client for the log store.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new log store client. The baseURL should be the
// API root (e.g. http://localhost:8000/api).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do builds the request, sends it, and unmarshals the JSON response into
// result when non-nil. Non-2xx statuses are returned as errors.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, truncateBody(data))
	}
	if result == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

func truncateBody(data []byte) string {
	const max = 200
	s := string(data)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// buildLogsQuery renders the /logs query string.
func buildLogsQuery(params ListParams) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(params.Limit))
	q.Set("offset", strconv.Itoa(params.Offset))
	if params.Action != "" {
		q.Set("action", params.Action)
	}
	return "/logs?" + q.Encode()
}
