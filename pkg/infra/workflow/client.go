package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/interfaces"
	"github.com/scanbook/scanbook/pkg/domain/types"
	"github.com/scanbook/scanbook/pkg/utils/logging"
	"github.com/scanbook/scanbook/pkg/utils/safe"
)

// maxErrorBodySize bounds how much of an upstream error body is kept for
// diagnostics.
const maxErrorBodySize = 4096

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client invokes the external workflow engine over its webhook URL. The
// engine is an opaque collaborator: one POST per scan, one JSON body back.
type Client struct {
	url        string
	httpClient HTTPClient
	timeout    time.Duration
	retry      bool
	backoff    time.Duration
}

type Option func(*Client)

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(x *Client) {
		x.httpClient = httpClient
	}
}

// WithTimeout bounds each attempt against the workflow engine. The zero
// value disables the per-attempt deadline, which is almost never what a
// production deployment wants.
func WithTimeout(timeout time.Duration) Option {
	return func(x *Client) {
		x.timeout = timeout
	}
}

// WithRetry enables a single retry with fixed backoff on transport errors
// and 5xx responses. Retries never create more than one stored record
// because persistence happens after Invoke returns.
func WithRetry(backoff time.Duration) Option {
	return func(x *Client) {
		x.retry = true
		x.backoff = backoff
	}
}

func New(url string, options ...Option) *Client {
	client := &Client{
		url:        url,
		httpClient: http.DefaultClient,
		timeout:    30 * time.Second,
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

type invokeRequest struct {
	Target   string         `json:"target"`
	ScanType types.ScanType `json:"scanType"`
}

type invokeResponse struct {
	// Pointer to distinguish an empty report (valid) from a missing field
	// (upstream contract violation).
	MarkdownReport *string `json:"markdownReport"`
}

func (x *Client) Invoke(ctx context.Context, input *interfaces.InvokeScanInput) (*interfaces.InvokeScanOutput, error) {
	body, err := json.Marshal(invokeRequest{
		Target:   input.Target,
		ScanType: input.ScanType,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode workflow request")
	}

	out, err := x.invokeOnce(ctx, body)
	if err != nil && x.retry && retryable(err) {
		logging.From(ctx).Warn("workflow engine call failed, retrying once",
			"error", err,
			"backoff", x.backoff,
		)

		select {
		case <-time.After(x.backoff):
		case <-ctx.Done():
			return nil, goerr.Wrap(ctx.Err(), "canceled while waiting to retry")
		}

		out, err = x.invokeOnce(ctx, body)
	}

	return out, err
}

func (x *Client) invokeOnce(ctx context.Context, body []byte) (*interfaces.InvokeScanOutput, error) {
	if x.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, x.url, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create workflow request", goerr.V("url", x.url))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(types.ErrUpstreamFailed, "workflow engine unreachable",
			goerr.V("url", x.url),
			goerr.V("cause", err.Error()),
			goerr.V("retryable", true),
		)
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, goerr.Wrap(types.ErrUpstreamFailed, "workflow engine returned non-2xx",
			goerr.V("url", x.url),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(errBody)),
			goerr.V("retryable", resp.StatusCode >= 500),
		)
	}

	var decoded invokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, goerr.Wrap(types.ErrUpstreamFailed, "failed to decode workflow response",
			goerr.V("url", x.url),
			goerr.V("cause", err.Error()),
		)
	}

	// An empty report is valid; an absent field is a contract violation and
	// the scan fails rather than persisting a placeholder.
	if decoded.MarkdownReport == nil {
		return nil, goerr.Wrap(types.ErrUpstreamFailed, "workflow response has no markdownReport field",
			goerr.V("url", x.url),
		)
	}

	return &interfaces.InvokeScanOutput{
		MarkdownReport: *decoded.MarkdownReport,
	}, nil
}

// retryable reports whether a second attempt could succeed. Only transport
// failures and 5xx responses qualify; a 4xx or a malformed body would fail
// identically.
func retryable(err error) bool {
	goErr := goerr.Unwrap(err)
	if goErr == nil {
		return false
	}
	flag, ok := goErr.Values()["retryable"].(bool)
	return ok && flag
}
