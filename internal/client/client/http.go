package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/learnkit/internal/client/apierr"
	"github.com/dmitrijs2005/learnkit/internal/client/auth"
	"github.com/dmitrijs2005/learnkit/internal/client/transport"
	"github.com/dmitrijs2005/learnkit/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL = "https://api.learnkit.dev/v1"

	headerAPIKey    = "X-Api-Key"
	headerRequestID = "X-Request-Id"
)

type Config struct {
	// BaseURL is the versioned API root. Defaults to DefaultBaseURL.
	BaseURL string

	APIKey        string
	TokenProvider auth.Provider

	// HTTPClient defaults to a plain *http.Client. Its Timeout should be
	// left zero; attempts are bounded by Transport.Timeout.
	HTTPClient *http.Client

	// Transport defaults to transport.DefaultOptions.
	Transport *transport.Options

	Logger  logging.Logger
	Metrics *transport.Metrics

	// Tracing wraps the HTTP round tripper with OpenTelemetry spans.
	Tracing bool
}

var _ Client = (*HTTPClient)(nil)

type HTTPClient struct {
	baseURL   string
	apiKey    string
	tokens    *auth.TokenSource
	transport *transport.Transport
	logger    logging.Logger
}

func New(cfg Config) (*HTTPClient, error) {
	if err := required("apiKey", cfg.APIKey); err != nil {
		return nil, err
	}
	if cfg.TokenProvider == nil {
		return nil, fmt.Errorf("%w: tokenProvider is required", ErrValidation)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: baseURL %q must be an absolute URL", ErrValidation, cfg.BaseURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Tracing {
		traced := *httpClient
		base := traced.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		traced.Transport = otelhttp.NewTransport(base)
		httpClient = &traced
	}

	opts := transport.DefaultOptions()
	if cfg.Transport != nil {
		opts = *cfg.Transport
	}
	tr, err := transport.New(httpClient, opts, transport.WithLogger(logger), transport.WithMetrics(cfg.Metrics))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	tokens, err := auth.NewTokenSource(cfg.TokenProvider, logger)
	if err != nil {
		return nil, err
	}

	return &HTTPClient{
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		tokens:    tokens,
		transport: tr,
		logger:    logger,
	}, nil
}

// Tokens exposes the credential cache.
func (c *HTTPClient) Tokens() *auth.TokenSource {
	return c.tokens
}

// do performs one logical call. The response is returned only for 2xx
// statuses; anything else becomes an *apierr.Error.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in any) (*transport.Response, error) {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = b
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	requestID := uuid.NewString()

	resp, token, err := c.send(ctx, method, target, body, requestID)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Info(ctx, "credential rejected, refreshing and retrying once",
			"request_id", requestID, "method", method, "path", path)
		// A concurrent call may already have replaced the rejected token.
		c.tokens.InvalidateIfCurrent(token)

		resp, _, err = c.send(ctx, method, target, body, requestID)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierr.FromResponse(resp.StatusCode, resp.Body)
	}
	return resp, nil
}

// send makes one authenticated request and returns the credential it used.
func (c *HTTPClient) send(ctx context.Context, method, target string, body []byte, requestID string) (*transport.Response, string, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("get token: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Accept", "application/json")
	header.Set(headerAPIKey, c.apiKey)
	header.Set("Authorization", "Bearer "+token)
	header.Set(headerRequestID, requestID)

	resp, err := c.transport.Do(ctx, transport.Request{Method: method, URL: target, Header: header, Body: body})
	return resp, token, err
}

// decode returns nil for 204 and empty bodies.
func decode[T any](resp *transport.Response) (*T, error) {
	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return nil, apierr.New(apierr.KindUnknown, resp.StatusCode, fmt.Sprintf("decode response: %v", err))
	}
	return &v, nil
}

func get[T any](ctx context.Context, c *HTTPClient, path string, query url.Values) (*T, error) {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return decode[T](resp)
}

func post[T any](ctx context.Context, c *HTTPClient, path string, in any) (*T, error) {
	resp, err := c.do(ctx, http.MethodPost, path, nil, in)
	if err != nil {
		return nil, err
	}
	return decode[T](resp)
}

func coursePath(courseID string) string {
	return "/courses/" + url.PathEscape(courseID)
}

func stepPath(courseID, stepID string) string {
	return coursePath(courseID) + "/steps/" + url.PathEscape(stepID)
}
