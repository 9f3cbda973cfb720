package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/macropower/rnshim/pkg/http"
	"github.com/macropower/rnshim/pkg/shimerrors"
)

const (
	// DefaultHost is used when no registry is configured.
	DefaultHost = "https://registry.npmjs.org/"
	// DefaultTimeout bounds a single lookup.
	DefaultTimeout = 5 * time.Second
)

// Latest is the outcome of a lookup. Found is false when the lookup failed or
// the response carried no version.
type Latest struct {
	Version string
	Found   bool
}

// Getter fetches a URL.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, int, error)
}

// Client looks up package versions.
type Client struct {
	http Getter
	host string
}

// NewClient returns a [Client] for host using an HTTP client bounded by
// timeout. An empty host selects [DefaultHost].
func NewClient(host string, timeout time.Duration) *Client {
	return NewClientWithGetter(host, http.NewClient(timeout))
}

func NewClientWithGetter(host string, g Getter) *Client {
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultHost
	}

	return &Client{http: g, host: host}
}

// Host returns the configured registry host.
func (c *Client) Host() string {
	return c.host
}

// URL returns the lookup URL for pkg: <host>/<pkg>/latest. Scoped package
// names keep their scope separator encoded, as npm expects.
func (c *Client) URL(pkg string) (string, error) {
	u, err := url.JoinPath(c.host, strings.ReplaceAll(pkg, "/", "%2F"), "latest")
	if err != nil {
		return "", fmt.Errorf("%w: registry %q: %w", shimerrors.ErrInvalidFormat, c.host, err)
	}

	return u, nil
}

type manifest struct {
	Version string `json:"version"`
}

// Latest returns the latest published version of pkg.
func (c *Client) Latest(ctx context.Context, pkg string) Latest {
	v, err := c.fetch(ctx, pkg)
	if err != nil {
		slog.Debug("registry lookup failed", "package", pkg, "host", c.host, "err", err)

		return Latest{}
	}

	slog.Debug("registry lookup", "package", pkg, "latest", v)

	return Latest{Version: v, Found: true}
}

func (c *Client) fetch(ctx context.Context, pkg string) (string, error) {
	u, err := c.URL(pkg)
	if err != nil {
		return "", err
	}

	body, code, err := c.http.Get(ctx, u)
	if err != nil {
		return "", err
	}

	if code != nethttp.StatusOK {
		return "", fmt.Errorf("unexpected status %d from %s", code, u)
	}

	var m manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return "", fmt.Errorf("%w: %w", shimerrors.ErrJSONUnmarshal, err)
	}

	v := strings.TrimSpace(m.Version)
	if v == "" {
		return "", fmt.Errorf("%w: missing version field", shimerrors.ErrInvalidFormat)
	}

	return v, nil
}
