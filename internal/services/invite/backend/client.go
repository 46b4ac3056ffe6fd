// Package backend reads project records from the backend API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ccotek/cocoti-invitation-page/internal/platform/timeouts"
	"github.com/ccotek/cocoti-invitation-page/internal/services/invite/projecttype"
)

const tracerName = "github.com/ccotek/cocoti-invitation-page/internal/services/invite/backend"

// ErrNotFound matches a backend 404 through errors.Is.
var ErrNotFound = errors.New("backend record not found")

// StatusError reports a non-2xx backend response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend status %d", e.StatusCode)
}

// Is reports whether the status is a 404 when target is ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Existence is the outcome of an existence check.
type Existence int

const (
	// Unknown means the backend could not confirm either way.
	Unknown Existence = iota
	// Exists means the backend returned the record.
	Exists
	// Missing means the backend answered 404.
	Missing
)

func (e Existence) String() string {
	switch e {
	case Exists:
		return "exists"
	case Missing:
		return "missing"
	default:
		return "unknown"
	}
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. http://localhost:8001/api/v1.
	BaseURL string
	// Timeout bounds each request. Zero uses timeouts.Backend.
	Timeout time.Duration
	// Transport overrides the outbound round tripper before instrumentation.
	Transport http.RoundTripper
	Logger    *log.Logger
}

// Client issues read-only requests against the backend API.
type Client struct {
	baseURL string
	http    *resty.Client
	tracer  trace.Tracer
	logger  *log.Logger
}

// NewClient validates options and builds a Client.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("backend base url %q must be http or https", baseURL)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = timeouts.Backend
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	httpClient := resty.New().
		SetTimeout(timeout).
		SetTransport(otelhttp.NewTransport(transport)).
		SetHeader("Accept", "application/json")
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		tracer:  otel.Tracer(tracerName),
		logger:  logger,
	}, nil
}

// RecordURL returns the absolute backend URL for id under variant.
func (c *Client) RecordURL(variant projecttype.Variant, id string) string {
	return c.baseURL + variant.RecordPath(url.PathEscape(id))
}

// Fetch reads the raw record fields for id. A 404 yields an error matching
// ErrNotFound; other non-2xx statuses yield a *StatusError.
func (c *Client) Fetch(ctx context.Context, variant projecttype.Variant, id string) (map[string]any, error) {
	ctx, span := c.tracer.Start(ctx, "backend.fetch")
	defer span.End()

	resp, err := c.get(ctx, span, variant, id)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		err := &StatusError{StatusCode: resp.StatusCode()}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(resp.Body()))
	decoder.UseNumber()
	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode response")
		return nil, fmt.Errorf("decode backend response: %w", err)
	}
	return fields, nil
}

// Exists checks whether the backend has a record for id. It never fails:
// transport errors and statuses other than 200 and 404 resolve to Unknown.
func (c *Client) Exists(ctx context.Context, variant projecttype.Variant, id string) Existence {
	ctx, span := c.tracer.Start(ctx, "backend.exists")
	defer span.End()

	resp, err := c.get(ctx, span, variant, id)
	if err != nil {
		c.logger.Printf("existence check failed id=%s error=%v", id, err)
		return Unknown
	}
	var existence Existence
	switch resp.StatusCode() {
	case http.StatusOK:
		existence = Exists
	case http.StatusNotFound:
		existence = Missing
	default:
		c.logger.Printf("existence check inconclusive id=%s status=%d", id, resp.StatusCode())
		existence = Unknown
	}
	span.SetAttributes(attribute.String("invite.existence", existence.String()))
	return existence
}

func (c *Client) get(ctx context.Context, span trace.Span, variant projecttype.Variant, id string) (*resty.Response, error) {
	target := c.RecordURL(variant, id)
	span.SetAttributes(attribute.String("invite.backend.path", variant.Path), attribute.String("invite.project_id", id))

	resp, err := c.http.R().SetContext(ctx).Get(target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("get %s: %w", target, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode()))
	return resp, nil
}
