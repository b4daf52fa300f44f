package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
)

// Default endpoints of the portfolio backend.
const (
	DefaultBaseURL       = "http://127.0.0.1:9090"
	DefaultPortfolioPath = "/api/portfolio/profiles/me/"

	registerPath       = "/api/accounts/register/"
	loginPath          = "/api/accounts/login/"
	logoutPath         = "/api/accounts/logout/"
	profilePath        = "/api/accounts/profile/"
	forgotPasswordPath = "/api/accounts/forgot-password/"
	resetPasswordPath  = "/api/accounts/reset-password/"
)

const requestIDHeader = "X-Request-ID"

// HTTPClient talks JSON over HTTP to the backend. It never retries and never
// refreshes tokens; a 401 comes back as an ordinary *APIError.
type HTTPClient struct {
	baseURL       string
	portfolioPath string
	http          *http.Client
	tokens        TokenSource
	log           logging.Logger
	newID         func() string
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithHTTPClient replaces the pooled cleanhttp client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTimeout bounds each request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTPClient) {
		if d > 0 {
			h.http.Timeout = d
		}
	}
}

// WithTokenSource sets where the bearer token comes from.
func WithTokenSource(ts TokenSource) Option {
	return func(h *HTTPClient) { h.tokens = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(h *HTTPClient) { h.log = l }
}

// WithPortfolioPath overrides DefaultPortfolioPath.
func WithPortfolioPath(p string) Option {
	return func(h *HTTPClient) {
		if p != "" {
			h.portfolioPath = p
		}
	}
}

// NewHTTPClient builds a client for baseURL ("" means DefaultBaseURL).
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	h := &HTTPClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		portfolioPath: DefaultPortfolioPath,
		http:          cleanhttp.DefaultPooledClient(),
		tokens:        TokenSourceFunc(func() string { return "" }),
		log:           logging.Nop(),
		newID:         uuid.NewString,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// request describes one call. bearer, when set, wins over the token source;
// anonymous suppresses the Authorization header altogether.
type request struct {
	method    string
	endpoint  string
	body      any
	out       any
	bearer    string
	anonymous bool
	op        op
}

func (h *HTTPClient) Do(ctx context.Context, method, endpoint string, body, out any) error {
	return h.do(ctx, request{method: method, endpoint: endpoint, body: body, out: out})
}

func (h *HTTPClient) do(ctx context.Context, r request) error {
	var payload io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, h.baseURL+r.endpoint, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := r.bearer
	if token == "" && !r.anonymous {
		token = h.tokens.AccessToken()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	id := h.newID()
	req.Header.Set(requestIDHeader, id)
	log := h.log.With("request_id", id, "method", r.method, "endpoint", r.endpoint)

	start := time.Now()
	resp, err := h.http.Do(req)
	if err != nil {
		log.Error(ctx, "request failed", "error", err)
		return &NetworkError{Method: r.method, Endpoint: r.endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, "reading response failed", "status", resp.StatusCode, "error", err)
		return &NetworkError{Method: r.method, Endpoint: r.endpoint, Err: err}
	}
	log = log.With("status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := translate(resp.StatusCode, data, r.op)
		log.Warn(ctx, "request rejected", "error", err)
		return err
	}
	log.Debug(ctx, "request done")

	if r.out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, r.out); err != nil {
		log.Error(ctx, "decoding response failed", "error", err)
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("decode %s response: %v", r.endpoint, err)}
	}
	return nil
}
