package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// httpClient wraps http.Client with the server base URL.
type httpClient struct {
	client  *http.Client
	baseURL string
}

func newHTTPClient(baseURL string, timeout time.Duration) *httpClient {
	return &httpClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// getJSON fetches path, checks the status and decodes the body into dst.
func (c *httpClient) getJSON(ctx context.Context, path string, want int, dst any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil, want)
	if err != nil {
		return err
	}
	return decode(path, body, dst)
}

// postJSON sends body as JSON, checks the status and decodes the reply into dst.
func (c *httpClient) postJSON(ctx context.Context, path string, body any, want int, dst any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, path, raw, want)
	if err != nil {
		return err
	}
	return decode(path, resp, dst)
}

// getText fetches path and returns the body when the status matches.
func (c *httpClient) getText(ctx context.Context, path string, want int) (string, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil, want)
	return string(body), err
}

func (c *httpClient) do(ctx context.Context, method, path string, body []byte, want int) ([]byte, error) {
	var r io.Reader = http.NoBody
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode != want {
		return data, fmt.Errorf("%w: %s %s returned %d, want %d", ErrUnexpectedStatus, method, path, resp.StatusCode, want)
	}
	return data, nil
}

func decode(path string, body []byte, dst any) error {
	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
