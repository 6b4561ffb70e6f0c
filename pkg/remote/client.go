package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/flowsketch/flowsketch/pkg/cfg"
	"github.com/flowsketch/flowsketch/pkg/errors"
	"github.com/flowsketch/flowsketch/pkg/httputil"
	"github.com/flowsketch/flowsketch/pkg/observability"
)

const httpTimeout = 10 * time.Second

// buildRequest is the JSON body posted to the remote builder.
type buildRequest struct {
	Source string `json:"source"`
}

// Client posts source text to a remote builder endpoint and returns the
// normalized graph. Responses are cached by endpoint and source text so
// repeated builds of the same snippet skip the network entirely.
type Client struct {
	endpoint string
	http     *http.Client
	cache    *httputil.Cache
}

// NewClient creates a Client for the given builder endpoint.
// Pass nil for cache to disable response caching.
func NewClient(endpoint string, cache *httputil.Cache) *Client {
	if cache != nil {
		cache = cache.Namespace("remote:")
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: httpTimeout},
		cache:    cache,
	}
}

// Build sends source text to the remote builder and returns the
// normalized graph. Transient failures are retried with exponential
// backoff; a malformed payload or a terminal HTTP status is reported
// once, without retrying.
func (c *Client) Build(ctx context.Context, source string) (*cfg.Graph, error) {
	if err := errors.ValidateURL(c.endpoint); err != nil {
		return nil, err
	}
	if err := errors.ValidateSource(source); err != nil {
		return nil, err
	}

	var payload Payload
	if err := c.cached(ctx, c.endpoint+"\n"+source, &payload, func() error {
		return c.post(ctx, source, &payload)
	}); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "remote build cancelled")
		}
		return nil, errors.Wrap(errors.ErrCodeRemote, err, "remote build via %s", c.endpoint)
	}

	return Normalize(payload)
}

// cached retrieves a value from cache or executes fetch and caches the result.
func (c *Client) cached(ctx context.Context, key string, v any, fetch func() error) error {
	if c.cache != nil {
		if ok, _ := c.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Set(key, v)
	}
	return nil
}

func (c *Client) post(ctx context.Context, source string, payload *Payload) error {
	body, err := json.Marshal(buildRequest{Source: source})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	observability.Remote().OnRequest(ctx, c.endpoint)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.Remote().OnError(ctx, c.endpoint, err)
		return &httputil.RetryableError{Err: err}
	}
	defer resp.Body.Close()
	observability.Remote().OnResponse(ctx, c.endpoint, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(payload)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code >= 500 || code == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: fmt.Errorf("builder returned status %d", code)}
	default:
		return fmt.Errorf("builder returned status %d", code)
	}
}
