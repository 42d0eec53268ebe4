// Package submission delivers contact requests and newsletter sign-ups to
// the intake service. Without a configured endpoint it acknowledges locally.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Abhinavgupta8977/dietitian-website/internal/contact"
)

const (
	defaultTimeout    = 8 * time.Second
	idempotencyHeader = "Idempotency-Key"
)

var (
	// ErrRejected is returned when the intake service refuses the payload (4xx).
	ErrRejected = errors.New("submission: rejected")
	// ErrUnavailable is returned for transport failures and 5xx answers.
	ErrUnavailable = errors.New("submission: service unavailable")
)

var tracer = otel.Tracer("github.com/Abhinavgupta8977/dietitian-website/internal/submission")

// Client posts form records to the intake service.
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

// Receipt acknowledges a delivered record.
type Receipt struct {
	ID         string
	Status     string
	ReceivedAt time.Time
	Local      bool
}

// NewClient constructs a client. When baseURL is empty, every record is
// acknowledged locally.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// Configured reports whether records leave the process.
func (c *Client) Configured() bool { return c != nil && c.baseURL != "" }

// Contact delivers a consultation request.
func (c *Client) Contact(ctx context.Context, form contact.Form, idempotencyKey string) (Receipt, error) {
	return c.post(ctx, "contact", form, idempotencyKey)
}

// Newsletter subscribes an email address.
func (c *Client) Newsletter(ctx context.Context, email, idempotencyKey string) (Receipt, error) {
	return c.post(ctx, "newsletter", map[string]string{"email": strings.TrimSpace(email)}, idempotencyKey)
}

// NewIdempotencyKey returns a fresh key for one submission attempt. Retries
// of the same attempt should reuse it.
func NewIdempotencyKey() string { return ulid.Make().String() }

func (c *Client) post(ctx context.Context, kind string, body any, key string) (rec Receipt, err error) {
	key = ensureIdempotencyKey(key)
	if !c.Configured() {
		return Receipt{ID: key, Status: "received", ReceivedAt: c.clock().UTC(), Local: true}, nil
	}

	endpoint, err := url.JoinPath(c.baseURL, kind)
	if err != nil {
		return Receipt{}, err
	}
	ctx, span := tracer.Start(ctx, "submission."+kind,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", endpoint)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return Receipt{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Receipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(idempotencyHeader, key)

	resp, err := c.http.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	switch {
	case resp.StatusCode >= 500:
		return Receipt{}, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, drainError(resp.Body))
	case resp.StatusCode >= 400:
		return Receipt{}, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, drainError(resp.Body))
	}

	var out receiptPayload
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
			return Receipt{}, fmt.Errorf("submission: decode receipt: %w", err)
		}
	}
	return out.toReceipt(key, c.clock()), nil
}

func (c *Client) clock() time.Time {
	if c == nil || c.now == nil {
		return time.Now()
	}
	return c.now()
}

type receiptPayload struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ReceivedAt string `json:"receivedAt"`
}

func (p receiptPayload) toReceipt(key string, now time.Time) Receipt {
	rec := Receipt{
		ID:     defaultString(p.ID, key),
		Status: defaultString(p.Status, "received"),
	}
	if ts, err := time.Parse(time.RFC3339, strings.TrimSpace(p.ReceivedAt)); err == nil {
		rec.ReceivedAt = ts
	} else {
		rec.ReceivedAt = now.UTC()
	}
	return rec
}

func ensureIdempotencyKey(key string) string {
	key = strings.TrimSpace(key)
	if key != "" {
		return key
	}
	return NewIdempotencyKey()
}

func defaultString(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return strings.TrimSpace(val)
}

func drainError(r io.Reader) string {
	if r == nil {
		return ""
	}
	b, _ := io.ReadAll(io.LimitReader(r, 256))
	return strings.TrimSpace(string(b))
}
