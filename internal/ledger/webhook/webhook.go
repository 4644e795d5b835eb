// Package webhook implements the ledger ports against a pair of HTTP
// webhooks fronting the spreadsheet: one GET endpoint returning the record
// set and one POST endpoint accepting a single row.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"finbot/internal/core"
)

// Client talks to the fetch and append webhooks. Timeouts are enforced here,
// by the HTTP client; the handler layer above imposes none of its own.
type Client struct {
	httpClient *http.Client
	fetchURL   string
	appendURL  string
}

// New builds a webhook client with connection pooling and the given overall
// request timeout.
func New(fetchURL, appendURL string, timeout time.Duration) *Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		fetchURL:   fetchURL,
		appendURL:  appendURL,
	}
}

// Fetch retrieves the remote record set. The endpoint answers with either a
// bare JSON array or a {"data": [...]} wrapper; any other 2xx payload means
// no data. Transport and HTTP errors map to core.ErrRemoteUnavailable.
func (c *Client) Fetch(ctx context.Context) ([]core.RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch: %v", core.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: fetch returned status %d", core.ErrRemoteUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read fetch body: %v", core.ErrRemoteUnavailable, err)
	}

	var records []core.RawRecord
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}
	var wrapped struct {
		Data []core.RawRecord `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}
	// Unrecognized payload shape means no data, matching the remote side's
	// behavior for an empty sheet.
	return nil, nil
}

// Append forwards one record to the write webhook.
func (c *Client) Append(ctx context.Context, rec core.RawRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.appendURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build append request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: append: %v", core.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: append returned status %d", core.ErrRemoteUnavailable, resp.StatusCode)
	}
	return nil
}
