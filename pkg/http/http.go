package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	neturl "net/url"
	"time"

	"github.com/klauspost/compress/gzhttp"
)

// MaxBodySize bounds the number of bytes read from a response body.
const MaxBodySize = 4 << 20

var ErrBodyTooLarge = errors.New("response body too large")

// Client is a small GET-only HTTP client. Responses are transparently
// decompressed when the server answers with gzip.
type Client struct {
	http *nethttp.Client
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &nethttp.Client{
			Timeout:   timeout,
			Transport: gzhttp.Transport(nethttp.DefaultTransport),
		},
	}
}

// Get fetches url and returns the body and status code.
func (c *Client) Get(ctx context.Context, url string) ([]byte, int, error) {
	urlParsed, err := neturl.Parse(url)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse url: %w", err)
	}

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, urlParsed.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // Best-effort close.

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read body: %w", err)
	}

	if len(bodyBytes) > MaxBodySize {
		return nil, resp.StatusCode, ErrBodyTooLarge
	}

	return bodyBytes, resp.StatusCode, nil
}
