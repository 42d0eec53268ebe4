package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Abhinavgupta8977/dietitian-website/internal/observability"
)

// ErrNotFound is returned when a content resource cannot be located.
var ErrNotFound = errors.New("content: not found")

const (
	defaultTimeout  = 5 * time.Second
	defaultCacheTTL = 5 * time.Minute
	maxDocumentSize = 4 << 20
)

var tracer = otel.Tracer("github.com/Abhinavgupta8977/dietitian-website/internal/content")

// Client serves site data, consulting a remote CMS when one is configured
// and falling back to the embedded data set otherwise.
type Client struct {
	baseURL string
	http    *http.Client
	ttl     time.Duration
	now     func() time.Time

	fallbackOnce sync.Once
	fallback     *Site
	fallbackErr  error

	mu      sync.RWMutex
	cached  *Site
	expires time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for remote fetches.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithCacheTTL sets how long a remote document is reused.
func WithCacheTTL(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

// NewClient constructs a Client. An empty baseURL serves embedded data only.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		ttl:     defaultCacheTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Embedded returns the validated embedded data set.
func (c *Client) Embedded() (*Site, error) {
	c.fallbackOnce.Do(func() {
		c.fallback, c.fallbackErr = Load()
	})
	return c.fallback, c.fallbackErr
}

// Site returns the current data set. Remote failures are logged and answered
// with the embedded data.
func (c *Client) Site(ctx context.Context) (*Site, error) {
	if c == nil || c.baseURL == "" {
		if c == nil {
			return Load()
		}
		return c.Embedded()
	}

	c.mu.RLock()
	if c.cached != nil && c.now().Before(c.expires) {
		site := c.cached
		c.mu.RUnlock()
		return site, nil
	}
	c.mu.RUnlock()

	site, err := c.fetchRemote(ctx)
	if err != nil {
		observability.FromContext(ctx).Warn("content: remote fetch failed, using embedded data",
			zap.String("base_url", c.baseURL), zap.Error(err))
		return c.Embedded()
	}

	c.mu.Lock()
	c.cached = site
	c.expires = c.now().Add(c.ttl)
	c.mu.Unlock()
	return site, nil
}

// Article returns the article with the given slug.
func (c *Client) Article(ctx context.Context, slug string) (Article, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return Article{}, ErrNotFound
	}
	site, err := c.Site(ctx)
	if err != nil {
		return Article{}, err
	}
	a, ok := site.ArticleBySlug(slug)
	if !ok {
		return Article{}, ErrNotFound
	}
	return a, nil
}

// Invalidate drops the cached remote document.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.expires = time.Time{}
	c.mu.Unlock()
}

func (c *Client) fetchRemote(ctx context.Context) (site *Site, err error) {
	endpoint, err := url.JoinPath(c.baseURL, "site.yaml")
	if err != nil {
		return nil, err
	}
	ctx, span := tracer.Start(ctx, "content.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", endpoint)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/yaml, text/yaml")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("content: remote status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}
