// Package rotation talks to the rotation API and models what it returns:
// the latest rotation identifier, the map IDs in each pool, and the
// snapshot and per-pool difference derived from them.
package rotation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xraph/rotawatch/catalog"
)

// Default endpoints and limits.
const (
	DefaultLatestURL      = "https://mapapi.cecer1.com/rotation/latest"
	DefaultPoolURL        = "https://mapapi.cecer1.com/mappool/{pool}"
	DefaultRequestTimeout = 20 * time.Second

	userAgent   = "rotawatch/1.0"
	poolPattern = "{pool}"
	maxErrBody  = 512
)

var (
	// ErrUnexpectedStatus is returned when the API answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("rotation: unexpected status")

	// ErrEmptyRotationID is returned when the latest-rotation response has no ID.
	ErrEmptyRotationID = errors.New("rotation: empty rotation id")
)

// FetcherConfig configures a Fetcher. Zero fields take the defaults.
type FetcherConfig struct {
	LatestURL string
	// PoolURL contains {pool}, replaced by the escaped pool key.
	PoolURL string
	Timeout time.Duration
	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// Fetcher reads rotations from the remote API.
type Fetcher struct {
	client    *http.Client
	latestURL string
	poolURL   string
	catalog   *catalog.Catalog
}

// NewFetcher creates a fetcher that resolves map IDs through cat.
func NewFetcher(cfg FetcherConfig, cat *catalog.Catalog) *Fetcher {
	if cfg.LatestURL == "" {
		cfg.LatestURL = DefaultLatestURL
	}
	if cfg.PoolURL == "" {
		cfg.PoolURL = DefaultPoolURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRequestTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Fetcher{
		client:    client,
		latestURL: cfg.LatestURL,
		poolURL:   cfg.PoolURL,
		catalog:   cat,
	}
}

// LatestRotationID returns the identifier of the current rotation.
func (f *Fetcher) LatestRotationID(ctx context.Context) (string, error) {
	var body struct {
		ID string `json:"id"`
	}
	if err := f.getJSON(ctx, f.latestURL, &body); err != nil {
		return "", err
	}
	if strings.TrimSpace(body.ID) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyRotationID, f.latestURL)
	}
	return body.ID, nil
}

// FetchPool returns the map IDs currently in a pool, in API order.
func (f *Fetcher) FetchPool(ctx context.Context, poolKey string) ([]string, error) {
	u := strings.ReplaceAll(f.poolURL, poolPattern, url.PathEscape(poolKey))

	var ids []string
	if err := f.getJSON(ctx, u, &ids); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// FetchNames fetches a pool and translates its map IDs to display names.
func (f *Fetcher) FetchNames(ctx context.Context, poolKey string) ([]string, error) {
	ids, err := f.FetchPool(ctx, poolKey)
	if err != nil {
		return nil, err
	}
	names, err := f.catalog.Names(ids)
	if err != nil {
		return nil, fmt.Errorf("rotation: pool %s: %w", poolKey, err)
	}
	return names, nil
}

func (f *Fetcher) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("rotation: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("rotation: get %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return fmt.Errorf("%w: %d from %s: %s", ErrUnexpectedStatus, resp.StatusCode, u, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("rotation: decode %s: %w", u, err)
	}
	return nil
}
