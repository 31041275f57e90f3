// Package client loads catalog snapshots from a running catalog server.
package client

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"APIDirectory/internal/catalog"
	"APIDirectory/pkg/kit"
)

const (
	DefaultTimeout = 5 * time.Second

	maxBodyBytes = 32 << 20
)

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrCatalogBadStatus   = errors.New("catalog bad status")
	ErrCatalogMalformed   = errors.New("catalog response malformed")
)

// Loader fetches one snapshot. It is the seam between whatever drives a
// session (CLI, TUI, tests) and the source of the catalog.
type Loader func(ctx context.Context) (*catalog.Snapshot, error)

// StoreLoader adapts a catalog.Store, for running against a local source
// without a server.
func StoreLoader(s catalog.Store) Loader {
	return s.Load
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
}

func New(baseURL string, timeout time.Duration) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Loader() Loader { return c.Load }

// Load fetches GET /api/apis and turns it into a validated snapshot.
func (c *Client) Load(ctx context.Context) (*catalog.Snapshot, error) {
	endpoint := c.BaseURL + "/api/apis"

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp catalog.ListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogMalformed, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: success=false", ErrCatalogBadStatus)
	}
	if resp.Count != len(resp.Data) {
		return nil, fmt.Errorf("%w: count=%d but %d entries", ErrCatalogMalformed, resp.Count, len(resp.Data))
	}

	snap, err := catalog.NewSnapshot(resp.Data, endpoint, fmt.Sprintf("%x", sha256.Sum256(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogMalformed, err)
	}
	return snap, nil
}

// Health fetches GET /health.
func (c *Client) Health(ctx context.Context) (catalog.HealthResponse, error) {
	body, err := c.get(ctx, c.BaseURL+"/health")
	if err != nil {
		return catalog.HealthResponse{}, err
	}

	var h catalog.HealthResponse
	if err := json.Unmarshal(body, &h); err != nil {
		return catalog.HealthResponse{}, fmt.Errorf("%w: %v", ErrCatalogMalformed, err)
	}
	return h, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		if c.Log != nil {
			c.Log.Debug("catalog request failed",
				zap.String("url", endpoint),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrCatalogUnavailable, err)
	}

	if c.Log != nil {
		c.Log.Debug("catalog request",
			zap.String("url", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.Int("bytes", len(body)),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", resp.Header.Get("X-Request-Id")),
		)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status=%d%s", ErrCatalogBadStatus, resp.StatusCode, failureMessage(body))
	}
	return body, nil
}

func failureMessage(body []byte) string {
	var f kit.FailureResponse
	if err := json.Unmarshal(body, &f); err != nil || f.Message == "" {
		return ""
	}
	return ": " + f.Message
}
