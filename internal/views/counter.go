// Package views implements the best-effort per-post view counter.
package views

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrDisabled is returned by the disabled backend.
var ErrDisabled = errors.New("view counter disabled")

// Counter increments or reads a named counter.
type Counter interface {
	Hit(ctx context.Context, key string) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
}

// Disabled never counts; pages show the placeholder.
type Disabled struct{}

func (Disabled) Hit(context.Context, string) (int64, error) { return 0, ErrDisabled }
func (Disabled) Get(context.Context, string) (int64, error) { return 0, ErrDisabled }

// LocalStore is the subset of the site database used for counting.
type LocalStore interface {
	HitView(ctx context.Context, slug string) (int64, error)
	GetView(ctx context.Context, slug string) (int64, error)
}

// Local counts views in the site's own database.
type Local struct {
	Store LocalStore
}

func (l Local) Hit(ctx context.Context, key string) (int64, error) { return l.Store.HitView(ctx, key) }
func (l Local) Get(ctx context.Context, key string) (int64, error) { return l.Store.GetView(ctx, key) }

// CountAPI talks to a countapi-compatible counting service:
// GET {base}/hit/{namespace}/{key} and GET {base}/get/{namespace}/{key},
// both answering {"value": n}.
type CountAPI struct {
	BaseURL   string
	Namespace string
	Client    *http.Client
}

// DefaultCountAPIURL is the public counting service.
const DefaultCountAPIURL = "https://api.countapi.xyz"

// NewCountAPI creates a client with its own request timeout.
func NewCountAPI(baseURL, namespace string, timeout time.Duration) *CountAPI {
	return &CountAPI{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Namespace: namespace,
		Client:    &http.Client{Timeout: timeout},
	}
}

type countResponse struct {
	Value *int64 `json:"value"`
}

func (c *CountAPI) Hit(ctx context.Context, key string) (int64, error) {
	return c.call(ctx, "hit", key)
}

func (c *CountAPI) Get(ctx context.Context, key string) (int64, error) {
	return c.call(ctx, "get", key)
}

func (c *CountAPI) call(ctx context.Context, op, key string) (int64, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.BaseURL, op, url.PathEscape(c.Namespace), url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("countapi %s %s: %w", op, key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("countapi %s %s: unexpected status %d", op, key, resp.StatusCode)
	}

	var body countResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("countapi %s %s: decode: %w", op, key, err)
	}
	if body.Value == nil {
		return 0, fmt.Errorf("countapi %s %s: response has no value", op, key)
	}
	return *body.Value, nil
}
