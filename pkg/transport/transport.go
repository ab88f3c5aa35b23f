package transport

// Transport contracts mirror the connection collaborator of the checkout
// flow: one request in, raw bytes or a *failure.TransportError out.

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// MediaType is the content type the payment backend speaks.
const MediaType = "application/vnd.optile.payment.enterprise-v1-extensible+json"

// Request describes a single call to the backend.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Header http.Header
}

// Get builds a GET request for rawURL with optional query parameters.
func Get(rawURL string, query url.Values) Request {
	return Request{Method: http.MethodGet, URL: rawURL, Query: query}
}

// Transport sends requests and returns the response body. Implementations
// complete each request exactly once and give no ordering guarantees between
// independent requests. Failures are reported as *failure.TransportError, or
// *failure.ServerError when the backend answered with an error envelope.
type Transport interface {
	Send(ctx context.Context, req Request) ([]byte, error)
}

// Func adapts a function to the Transport interface.
type Func func(ctx context.Context, req Request) ([]byte, error)

// Send implements Transport.
func (fn Func) Send(ctx context.Context, req Request) ([]byte, error) {
	return fn(ctx, req)
}

// Options configures the HTTP transport.
type Options struct {
	// HTTPClient allows callers to inject custom HTTP behaviour (proxies,
	// TLS). A client with RequestTimeout applied is created when nil.
	HTTPClient *http.Client

	// RequestTimeout caps each request. Zero leaves the deadline to ctx.
	RequestTimeout time.Duration

	// UserAgent is sent with every request when set.
	UserAgent string

	// Header is merged into every request.
	Header http.Header

	// Logger receives request level diagnostics.
	Logger *slog.Logger
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// WithTimeout sets a per request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.RequestTimeout = timeout
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(opts *Options) {
		opts.UserAgent = agent
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(opts *Options) {
		if opts.Header == nil {
			opts.Header = make(http.Header)
		}
		opts.Header.Add(key, value)
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// NewOptions applies a set of Option values and returns the resulting
// configuration.
func NewOptions(options ...Option) Options {
	cfg := Options{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level checkout package to prevent import
// cycles.
