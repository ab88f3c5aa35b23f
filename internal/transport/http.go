package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	"github.com/goliatone/go-checkout/internal/logging"
	"github.com/goliatone/go-checkout/pkg/failure"
	"github.com/goliatone/go-checkout/pkg/payment"
	pkgtransport "github.com/goliatone/go-checkout/pkg/transport"
)

// RequestIDHeader carries a per request identifier for server side tracing.
const RequestIDHeader = "X-Request-ID"

// HTTP implements pkgtransport.Transport on top of net/http.
type HTTP struct {
	client *http.Client
	opts   pkgtransport.Options
	logger *slog.Logger
}

// New constructs an HTTP transport from the supplied options.
func New(opts pkgtransport.Options) *HTTP {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.RequestTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &HTTP{client: client, opts: opts, logger: logger}
}

// Send performs req and returns the decoded response body.
func (t *HTTP) Send(ctx context.Context, req pkgtransport.Request) ([]byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, &failure.TransportError{Method: method, Err: errors.New("url is required")}
	}

	target, err := withQuery(req.URL, req.Query)
	if err != nil {
		return nil, &failure.TransportError{Method: method, URL: req.URL, Err: err}
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if t.opts.RequestTimeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, t.opts.RequestTimeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, method, target, nil)
	if err != nil {
		return nil, &failure.TransportError{Method: method, URL: target, Err: err}
	}
	t.decorate(httpReq, req.Header)

	requestID := httpReq.Header.Get(RequestIDHeader)
	t.logger.Debug("transport request", "method", method, "url", target, "request_id", requestID)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &failure.TransportError{Method: method, URL: target, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := readBody(resp)
	if err != nil {
		return nil, &failure.TransportError{Method: method, URL: target, StatusCode: resp.StatusCode, Err: err}
	}

	t.logger.Debug("transport response",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(data),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if info, ok := payment.DecodeErrorInfo(data); ok {
			return nil, info.AsError(resp.StatusCode)
		}
		return nil, &failure.TransportError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	return data, nil
}

func (t *HTTP) decorate(req *http.Request, extra http.Header) {
	req.Header.Set("Accept", pkgtransport.MediaType)
	req.Header.Set("Accept-Encoding", "gzip")
	if t.opts.UserAgent != "" {
		req.Header.Set("User-Agent", t.opts.UserAgent)
	}
	for key, values := range t.opts.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	for key, values := range extra {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
}

// Setting Accept-Encoding by hand disables the transparent decoding in
// net/http, so compressed bodies are unpacked here.
func readBody(resp *http.Response) ([]byte, error) {
	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return io.ReadAll(resp.Body)
	}
	reader, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()
	return io.ReadAll(reader)
}

func withQuery(raw string, query url.Values) (string, error) {
	if len(query) == 0 {
		return raw, nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	merged := parsed.Query()
	for key, values := range query {
		merged.Del(key)
		for _, value := range values {
			merged.Add(key, value)
		}
	}
	// Encode escapes the comma in "jsonForms,-htmlForms"; both forms are
	// accepted by the backend.
	parsed.RawQuery = merged.Encode()
	return parsed.String(), nil
}
