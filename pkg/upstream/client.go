package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pharmaseek/pharmaseek-backend/pkg/config"
	pkgerrors "github.com/pharmaseek/pharmaseek-backend/pkg/errors"
	"github.com/pharmaseek/pharmaseek-backend/pkg/types"
)

const defaultBaseURL = "http://localhost:8080/api/v1"

// Envelope is the uniform response shape every upstream call is
// normalized into. Transport failures, non-2xx statuses, and explicit
// ok:false bodies all land here; callers never see a raw HTTP error.
type Envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *types.APIError `json:"error"`
	Meta  json.RawMessage `json:"meta,omitempty"`
}

// DecodeData unmarshals the data payload into dest.
func (e *Envelope) DecodeData(dest any) error {
	if e == nil || len(e.Data) == 0 {
		return fmt.Errorf("upstream envelope has no data")
	}
	return json.Unmarshal(e.Data, dest)
}

// Err converts a failed envelope into a coded error. Successful
// envelopes return nil.
func (e *Envelope) Err() error {
	if e == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "nil upstream envelope")
	}
	if e.OK {
		return nil
	}
	if e.Error == nil {
		return pkgerrors.New(pkgerrors.CodeUpstream, "upstream reported failure")
	}
	if e.Error.Code == string(pkgerrors.CodeDependency) {
		return pkgerrors.New(pkgerrors.CodeDependency, e.Error.Message)
	}
	return pkgerrors.New(pkgerrors.CodeUpstream, e.Error.Message).
		WithDetails(map[string]any{"upstream_code": e.Error.Code})
}

// Client talks to the remote inventory API that owns all durable state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	observer   Observer
}

// Observer receives timing for each upstream call.
type Observer interface {
	ObserveUpstream(path, method string, elapsed time.Duration)
}

// Option configures optional client behavior.
type Option func(*Client)

// WithObserver wires call timings into the metrics layer.
func WithObserver(obs Observer) Option {
	return func(c *Client) {
		c.observer = obs
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds an upstream client from configuration.
func NewClient(cfg config.UpstreamConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:    strings.TrimSpace(cfg.BaseURL),
		httpClient: &http.Client{Timeout: timeout},
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// Request describes one upstream call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// BearerToken carries the caller's upstream credential. Empty means
	// an unauthenticated call.
	BearerToken string
}

// Do issues the request and normalizes the outcome into an Envelope.
// A non-nil error is returned only when the request could not be built
// at all; every runtime failure is an ok:false envelope.
func (c *Client) Do(ctx context.Context, req Request) (*Envelope, error) {
	target := strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(req.BearerToken); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if c.observer != nil {
		c.observer.ObserveUpstream(req.Path, req.Method, time.Since(start))
	}
	if err != nil {
		return transportFailure(err), nil
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	return decodeResponse(resp)
}

// Get issues a GET request against the upstream.
func (c *Client) Get(ctx context.Context, path string, query url.Values, token string) (*Envelope, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, BearerToken: token})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, token string) (*Envelope, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, BearerToken: token})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, token string) (*Envelope, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body, BearerToken: token})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, token string) (*Envelope, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, BearerToken: token})
}

// Ping verifies the upstream is reachable for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	env, err := c.Get(ctx, "/pharmacies", nil, "")
	if err != nil {
		return err
	}
	if !env.OK && env.Error != nil && env.Error.Code == string(pkgerrors.CodeDependency) {
		return fmt.Errorf("upstream unreachable: %s", env.Error.Message)
	}
	return nil
}

func transportFailure(err error) *Envelope {
	return &Envelope{
		OK: false,
		Error: &types.APIError{
			Code:    string(pkgerrors.CodeDependency),
			Message: err.Error(),
		},
	}
}

func decodeResponse(resp *http.Response) (*Envelope, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return transportFailure(err), nil
	}

	var env Envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			// Non-envelope body: surface the status line instead.
			return &Envelope{
				OK: false,
				Error: &types.APIError{
					Code:    string(pkgerrors.CodeUpstream),
					Message: fmt.Sprintf("unexpected upstream response (%s)", resp.Status),
				},
			}, nil
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && env.OK {
		return &env, nil
	}

	if env.Error == nil {
		env.Error = &types.APIError{
			Code:    string(pkgerrors.CodeUpstream),
			Message: fmt.Sprintf("upstream returned %s", resp.Status),
		}
	}
	env.OK = false
	return &env, nil
}
