package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/learnkit/internal/client/apierr"
	"github.com/dmitrijs2005/learnkit/internal/logging"
	"github.com/sethvargo/go-retry"
)

const (
	DefaultRetries    = 1
	DefaultRetryDelay = 2 * time.Second
	DefaultTimeout    = 30 * time.Second
)

// Options bounds one logical call.
type Options struct {
	// Retries is the number of extra attempts after the first.
	Retries int
	// RetryDelay is the fixed wait between attempts.
	RetryDelay time.Duration
	// Timeout bounds every single attempt, body read included. Zero selects
	// DefaultTimeout.
	Timeout time.Duration
}

func DefaultOptions() Options {
	return Options{Retries: DefaultRetries, RetryDelay: DefaultRetryDelay, Timeout: DefaultTimeout}
}

func (o Options) Validate() error {
	if o.Retries < 0 {
		return fmt.Errorf("retries must be >= 0, got %d", o.Retries)
	}
	if o.RetryDelay < 0 {
		return fmt.Errorf("retry delay must be >= 0, got %s", o.RetryDelay)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", o.Timeout)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Request is immutable once built; every attempt re-sends the same bytes.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Transport performs retrying, timeout-bounded HTTP calls. It holds no
// per-call state and is safe for concurrent use.
type Transport struct {
	doer    Doer
	opts    Options
	logger  logging.Logger
	metrics *Metrics
}

type Option func(*Transport)

func WithLogger(l logging.Logger) Option {
	return func(t *Transport) {
		if l != nil {
			t.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(t *Transport) { t.metrics = m }
}

func New(doer Doer, opts Options, options ...Option) (*Transport, error) {
	if doer == nil {
		doer = http.DefaultClient
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	t := &Transport{doer: doer, opts: opts.withDefaults(), logger: logging.Nop()}
	for _, o := range options {
		o(t)
	}
	return t, nil
}

func (t *Transport) Options() Options {
	return t.opts
}

// errRetryStatus marks a 5xx or 429 response that should be re-sent.
var errRetryStatus = errors.New("retryable status")

// Do sends req, re-sending it up to Options.Retries times on 5xx, 429,
// network failures and attempt timeouts. When retries run out on a bad
// status the last response is returned with a nil error; when they run out
// on a failure without response an *apierr.Error of kind NETWORK_ERROR or
// TIMEOUT is returned. Cancellation of ctx stops the loop with ctx.Err().
func (t *Transport) Do(ctx context.Context, req Request) (*Response, error) {
	var (
		last    *Response
		attempt int
	)

	backoff := retry.WithMaxRetries(uint64(t.opts.Retries), fixedDelay(t.opts.RetryDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			t.metrics.retry(req.Method)
		}

		resp, err := t.attempt(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if attempt <= t.opts.Retries {
				t.logger.Warn(ctx, "request failed, retrying",
					"method", req.Method, "url", req.URL, "attempt", attempt, "error", err)
			}
			return retry.RetryableError(err)
		}

		last = resp
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			if attempt <= t.opts.Retries {
				t.logger.Warn(ctx, "retryable status, retrying",
					"method", req.Method, "url", req.URL, "attempt", attempt, "status", resp.StatusCode)
			}
			return retry.RetryableError(errRetryStatus)
		}
		return nil
	})

	switch {
	case err == nil:
		return last, nil
	case errors.Is(err, errRetryStatus):
		return last, nil
	default:
		return nil, err
	}
}

func (t *Transport) attempt(ctx context.Context, req Request) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, t.opts.Timeout)
	defer cancel()

	start := time.Now()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range req.Header {
		httpReq.Header[k] = append([]string(nil), v...)
	}

	resp, err := t.doer.Do(httpReq)
	if err != nil {
		return nil, t.classify(ctx, attemptCtx, req.Method, start, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, t.classify(ctx, attemptCtx, req.Method, start, err)
	}

	t.metrics.observe(req.Method, statusClass(resp.StatusCode), time.Since(start))

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

func (t *Transport) classify(parent, attemptCtx context.Context, method string, start time.Time, err error) error {
	switch {
	case parent.Err() != nil:
		t.metrics.observe(method, outcomeCanceled, time.Since(start))
		return parent.Err()
	case errors.Is(attemptCtx.Err(), context.DeadlineExceeded):
		t.metrics.observe(method, outcomeTimeout, time.Since(start))
		return apierr.Timeout(fmt.Errorf("no response within %s: %w", t.opts.Timeout, context.DeadlineExceeded))
	default:
		t.metrics.observe(method, outcomeNetwork, time.Since(start))
		return apierr.Network(err)
	}
}

func fixedDelay(d time.Duration) retry.Backoff {
	if d > 0 {
		return retry.NewConstant(d)
	}
	return retry.BackoffFunc(func() (time.Duration, bool) { return 0, false })
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
