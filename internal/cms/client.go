// Package cms reads the storefront catalog from the headless content API and
// substitutes the built-in catalog whenever the API cannot be reached.
package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNotFound is returned when a CMS resource cannot be located.
var ErrNotFound = errors.New("cms: not found")

// ErrUnavailable wraps every remote failure: transport errors, non-2xx
// statuses and undecodable payloads alike.
var ErrUnavailable = errors.New("cms: content api unavailable")

const (
	DefaultRevalidate = time.Hour
	defaultTimeout    = 5 * time.Second
	maxBodyBytes      = 8 << 20

	productsPath   = "/api/products?populate=*"
	categoriesPath = "/api/catagories?populate[products][populate]=images"
	galleriesPath  = "/api/galleries/?populate=*"
)

var tracer = otel.Tracer("finitefield.org/catalog-web/internal/cms")

// Client provides read-only access to the content API.
type Client struct {
	baseURL    string
	http       *http.Client
	logger     *zap.Logger
	revalidate time.Duration
	now        func() time.Time

	group singleflight.Group
	cache *cache
}

// Option customises a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRevalidate sets how long successful responses are reused. Zero
// disables caching.
func WithRevalidate(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.revalidate = d
		}
	}
}

// WithTimeout bounds each remote request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithNow overrides the clock used for cache expiry.
func WithNow(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient constructs a Client with the provided base URL. An empty base URL
// serves the built-in catalog without touching the network.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:       &http.Client{Timeout: defaultTimeout},
		logger:     zap.NewNop(),
		revalidate: DefaultRevalidate,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = newCache(c.now)
	return c
}

// BaseURL returns the configured content API origin.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL
}

// Invalidate drops every cached response so the next read goes to the API.
func (c *Client) Invalidate() {
	if c == nil {
		return
	}
	c.cache.clear()
}

// load returns the decoded payload for path, consulting the cache first and
// collapsing concurrent requests for the same path. The shared fetch is
// detached from the caller's cancellation so one departing request cannot
// fail the others waiting on it; the HTTP client timeout still bounds it.
func (c *Client) load(ctx context.Context, path string, decode func([]byte) (any, error)) (any, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: base url not configured", ErrUnavailable)
	}
	if v, ok := c.cache.get(path); ok {
		return v, nil
	}
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(path, func() (any, error) {
		body, err := c.fetch(shared, path)
		if err != nil {
			return nil, err
		}
		decoded, err := decode(body)
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, path, err)
		}
		c.cache.put(path, decoded, c.revalidate)
		return decoded, nil
	})
	return v, err
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	endpoint := c.baseURL + path
	ctx, span := tracer.Start(ctx, "cms.fetch", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("http.url", endpoint), attribute.String("http.method", http.MethodGet))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: build request: %v", ErrUnavailable, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, c.fail(span, fmt.Errorf("%w: status %d from %s", ErrUnavailable, resp.StatusCode, path))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("%w: read body: %v", ErrUnavailable, err))
	}
	return body, nil
}

func (c *Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// warnFallback records that the built-in catalog replaced a remote response.
func (c *Client) warnFallback(resource string, err error) {
	if c.baseURL == "" {
		c.logger.Debug("cms base url not configured; serving built-in catalog", zap.String("resource", resource))
		return
	}
	c.logger.Warn("cms fetch failed; serving built-in catalog",
		zap.String("resource", resource),
		zap.Error(err),
	)
}

type envelope[T any] struct {
	Data []T `json:"data"`
}

func decodeEnvelope[T any](body []byte) ([]T, error) {
	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		env.Data = []T{}
	}
	return env.Data, nil
}
