package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"grievlog/internal/logging"
)

// Client talks to the sheet endpoint: one URL, GET lists every row,
// POST appends one. Both calls carry a bounded timeout so a dead
// endpoint can never hang the UI.
type Client struct {
	apiURL string
	http   *http.Client
	log    *logging.Logger
}

func New(apiURL string, timeout time.Duration, log *logging.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if log == nil {
		log = logging.New("error", false)
	}
	return &Client{
		apiURL: apiURL,
		http:   &http.Client{Timeout: timeout},
		log:    log,
	}
}

// FetchAll retrieves every row in sheet order. An empty sheet is a
// valid, empty result. The response must be a JSON array of objects
// each carrying the Timestamp/Grievance/Status keys (any casing).
func (c *Client) FetchAll(ctx context.Context) ([]Record, error) {
	c.log.Debugf("GET %s", logging.SanitizeURL(c.apiURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, &NetworkError{Op: "fetch", Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: "fetch", Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "fetch", Err: err}
	}
	rows, err := decodeRows(body)
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	c.log.Debugf("fetched %d rows", len(rows))
	return rows, nil
}

// Submit appends one record with exactly one POST. Any 2xx is success;
// the response body is not interpreted and no refresh is triggered
// here — the follow-up fetch is the coordinator's job.
func (c *Client) Submit(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return &NetworkError{Op: "submit", Err: err}
	}
	c.log.Debugf("POST %s", logging.SanitizeURL(c.apiURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return &NetworkError{Op: "submit", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: "submit", Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NetworkError{Op: "submit", Status: resp.StatusCode}
	}
	return nil
}

func decodeRows(body []byte) ([]Record, error) {
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("expected a JSON array of objects: %w", err)
	}
	rows := make([]Record, 0, len(raw))
	for i, obj := range raw {
		ts, ok := stringField(obj, keyTimestamp)
		if !ok {
			return nil, fmt.Errorf("row %d: missing %s", i, keyTimestamp)
		}
		g, ok := stringField(obj, keyGrievance)
		if !ok {
			return nil, fmt.Errorf("row %d: missing %s", i, keyGrievance)
		}
		st, ok := stringField(obj, keyStatus)
		if !ok {
			return nil, fmt.Errorf("row %d: missing %s", i, keyStatus)
		}
		rows = append(rows, Record{Timestamp: ts, Grievance: g, Status: st})
	}
	return rows, nil
}

// stringField looks a key up case-insensitively; sheets edited by hand
// sometimes come back with lowercased headers.
func stringField(obj map[string]any, key string) (string, bool) {
	for k, v := range obj {
		if strings.EqualFold(k, key) {
			s, ok := v.(string)
			return s, ok
		}
	}
	return "", false
}
