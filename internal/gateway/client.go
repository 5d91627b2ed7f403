// Package gateway is the single egress point to the journal REST API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/journal-portal/pkg/errors"
)

// TokenSource supplies the bearer token of a client instance and is told when the
// journal API rejects it.
type TokenSource interface {
	Token() string
	Revoke(ctx context.Context)
}

// Observer records upstream call metrics.
type Observer interface {
	ObserveUpstream(operation string, status int, duration time.Duration)
}

// Config configures the journal API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the journal API. It is shared by every client instance; use For to
// obtain the authenticated view of one session.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
	logger   *zap.Logger
}

// Ack is the generic mutation response of the journal API.
type Ack struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Blob is a binary download.
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string
}

// New constructs a Client. A nil httpClient gets one with cfg.Timeout applied to every call.
func New(cfg Config, httpClient *http.Client, observer Observer, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     httpClient,
		observer: observer,
		logger:   logger.Named("gateway"),
	}
}

// Session is the authenticated view of the client for one client instance.
type Session struct {
	client *Client
	tokens TokenSource
}

// For binds the client to a token source.
func (c *Client) For(tokens TokenSource) *Session {
	return &Session{client: c, tokens: tokens}
}

type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        interface{}
	raw         io.Reader
	contentType string
	token       string
	// login calls report rejected credentials instead of an expired session.
	login bool
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func (s *Session) do(ctx context.Context, c call, out interface{}) error {
	c.token = s.tokens.Token()
	resp, err := s.client.send(ctx, c)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		s.tokens.Revoke(context.WithoutCancel(ctx))
		return appErrors.ErrSessionExpired
	}
	return s.client.decode(c, resp, out)
}

func (s *Session) download(ctx context.Context, c call) (*Blob, error) {
	c.token = s.tokens.Token()
	resp, err := s.client.send(ctx, c)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		s.tokens.Revoke(context.WithoutCancel(ctx))
		return nil, appErrors.ErrSessionExpired
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, upstreamError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "read download")
	}
	return &Blob{Data: data, ContentType: resp.Header.Get("Content-Type"), Filename: attachmentName(resp.Header.Get("Content-Disposition"))}, nil
}

func (c *Client) do(ctx context.Context, cl call, out interface{}) error {
	resp, err := c.send(ctx, cl)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		if cl.login {
			return upstreamErrorAs(resp, appErrors.ErrInvalidCredentials)
		}
		return appErrors.ErrSessionExpired
	}
	return c.decode(cl, resp, out)
}

func (c *Client) send(ctx context.Context, cl call) (*http.Response, error) {
	endpoint := c.baseURL + cl.path
	if len(cl.query) > 0 {
		endpoint += "?" + cl.query.Encode()
	}

	body := cl.raw
	contentType := cl.contentType
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, endpoint, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(cl.op, 0, elapsed)
		c.logger.Warn("upstream call failed", zap.String("op", cl.op), zap.String("path", cl.path), zap.Duration("latency", elapsed), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
	}
	c.observe(cl.op, resp.StatusCode, elapsed)

	fields := []zap.Field{
		zap.String("op", cl.op),
		zap.String("method", cl.method),
		zap.String("path", cl.path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", elapsed),
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Warn("upstream call", fields...)
	} else {
		c.logger.Debug("upstream call", fields...)
	}
	return resp, nil
}

func (c *Client) decode(cl call, resp *http.Response, out interface{}) error {
	if resp.StatusCode >= http.StatusBadRequest {
		return upstreamError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, http.StatusBadGateway, fmt.Sprintf("decode %s response", cl.op))
	}
	return nil
}

func (c *Client) observe(op string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(op, status, elapsed)
	}
}

func upstreamError(resp *http.Response) *appErrors.Error {
	return upstreamErrorAs(resp, appErrors.ErrUpstream)
}

// upstreamErrorAs keeps the server's message and status. The code comes from the body
// when the server sends one.
func upstreamErrorAs(resp *http.Response, template *appErrors.Error) *appErrors.Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body errorBody
	_ = json.Unmarshal(raw, &body)

	message := body.Message
	if message == "" {
		message = body.Error
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	code := template.Code
	if body.Code != "" {
		code = body.Code
	}
	return &appErrors.Error{Code: code, Message: message, Status: resp.StatusCode}
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
