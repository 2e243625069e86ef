// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Riftwalk Contributors

// Package integration is the asynchronous HTTP client for the game's
// backend: login, characters, the item catalog, and AI chat. Requests run on
// a small worker pool and hand their single result back through a Pending.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/sasha-s/go-deadlock"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("riftwalk/integration")

// Client defaults.
const (
	DefaultWorkers    = 2
	DefaultQueueSize  = 64
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryBase  = 100 * time.Millisecond
)

// RequestIDHeader carries a per-request ULID.
const RequestIDHeader = "X-Request-Id"

// ClientConfig configures a Client. Zero values take the defaults above.
type ClientConfig struct {
	BaseURL    string
	ProjectID  string
	Workers    int
	QueueSize  int
	Timeout    time.Duration
	MaxRetries uint64
	RetryBase  time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type task struct {
	op      string
	run     func(ctx context.Context)
	abandon func()
}

// Client dispatches backend requests onto its worker pool. Request methods
// never block; they return a Pending the caller polls.
type Client struct {
	cfg     ClientConfig
	baseURL string
	http    *http.Client
	logger  *slog.Logger
	auth    *AuthState
	online  atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	tasks  chan task
	wg     sync.WaitGroup

	mu     deadlock.Mutex
	closed bool
}

// New validates cfg and starts the worker pool. Call Close to stop it.
func New(cfg ClientConfig) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, oops.Code("INTEGRATION_CONFIG_INVALID").
			With("base_url", cfg.BaseURL).
			Errorf("base url must be an absolute http(s) url")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = DefaultRetryBase
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		cfg:     cfg,
		baseURL: base,
		http:    cfg.HTTPClient,
		logger:  cfg.Logger.With("component", "integration"),
		auth:    &AuthState{},
		ctx:     ctx,
		cancel:  cancel,
		tasks:   make(chan task, cfg.QueueSize),
	}
	for range cfg.Workers {
		c.wg.Add(1)
		go c.worker()
	}
	return c, nil
}

func (c *Client) worker() {
	defer c.wg.Done()
	for t := range c.tasks {
		if c.ctx.Err() != nil {
			t.abandon()
			continue
		}
		t.run(c.ctx)
	}
}

// Close cancels in-flight requests, abandons queued ones, and waits for the
// workers to exit. It is safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancel()
	close(c.tasks)
	c.mu.Unlock()
	c.wg.Wait()
}

// Auth exposes the shared credential state.
func (c *Client) Auth() *AuthState { return c.auth }

// IsOnline reports whether the last login reached the server.
func (c *Client) IsOnline() bool { return c.online.Load() }

// IsAuthenticated reports whether a bearer token is held.
func (c *Client) IsAuthenticated() bool { return c.auth.IsAuthenticated() }

// Logout drops the credentials. The online flag is unchanged.
func (c *Client) Logout() { c.auth.Clear() }

func (c *Client) enqueue(t task) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return failure(t.op, newError(KindNetwork, "client closed"))
	}
	select {
	case c.tasks <- t:
		return nil
	default:
		return failure(t.op, newError(KindNetwork, "request queue full"))
	}
}

func submit[T any](c *Client, op string, fn func(ctx context.Context) (T, error)) *Pending[T] {
	p := newPending[T]()
	t := task{
		op: op,
		run: func(ctx context.Context) {
			var v T
			err := c.observe(ctx, op, func(ctx context.Context) error {
				var err error
				v, err = fn(ctx)
				return err
			})
			if err != nil {
				var zero T
				v = zero
			}
			p.resolve(v, err)
		},
		abandon: p.abandon,
	}
	if err := c.enqueue(t); err != nil {
		c.logger.Warn("integration request rejected", "op", op, "error", err)
		var zero T
		p.resolve(zero, err)
	}
	return p
}

func (c *Client) observe(ctx context.Context, op string, fn func(context.Context) error) (err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "integration."+op,
		trace.WithAttributes(attribute.String("integration.op", op)),
	)
	defer func() {
		if r := recover(); r != nil {
			err = failure(op, newError(KindNetwork, fmt.Sprintf("task panicked: %v", r)))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.logger.Warn("integration request failed", "op", op, "outcome", outcome(err), "error", err)
		}
		RequestsTotal.WithLabelValues(op, outcome(err)).Inc()
		RequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		span.End()
	}()
	return fn(ctx)
}

// call describes one HTTP exchange.
type call struct {
	method string
	path   string
	body   any
	token  string
	retry  bool
}

// exchange performs r, retrying transport failures of idempotent calls, and
// decodes the reply into out.
func (c *Client) exchange(ctx context.Context, op string, r call, out any) error {
	attempt := func(ctx context.Context) error {
		err := c.send(ctx, r, out)
		if err == nil {
			return nil
		}
		if k, _ := KindOf(err); r.retry && (k == KindNetwork || k == KindTimeout) {
			return retry.RetryableError(err)
		}
		return err
	}

	var err error
	if r.retry {
		backoff := retry.WithMaxRetries(c.cfg.MaxRetries, retry.NewExponential(c.cfg.RetryBase))
		err = retry.Do(ctx, backoff, attempt)
	} else {
		err = attempt(ctx)
	}
	if err != nil {
		return failure(op, classify(err))
	}
	return nil
}

func (c *Client) send(ctx context.Context, r call, out any) error {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return newError(KindSerialization, err.Error())
		}
		body = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return newError(KindNetwork, err.Error())
	}
	reqID := ulid.Make().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("http.method", r.method),
		attribute.String("http.request_id", reqID),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return classify(err)
	}
	defer func() { _ = resp.Body.Close() }()
	return decode(resp, out)
}

func decode(resp *http.Response, out any) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &Error{Kind: KindAuthFailed, Status: resp.StatusCode, Message: readMessage(resp.Body)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &Error{Kind: KindServerError, Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(KindSerialization, err.Error())
	}
	return nil
}

func readMessage(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	return strings.TrimSpace(string(b))
}

// bearer returns the token or the synchronous AuthFailed error.
func (c *Client) bearer(op string) (string, error) {
	tok, ok := c.auth.Token()
	if !ok {
		return "", failure(op, newError(KindAuthFailed, "not authenticated"))
	}
	return tok, nil
}

// authed dispatches an authenticated call whose reply of type R is
// converted by conv.
func authed[R, T any](c *Client, op string, r call, conv func(R) T) *Pending[T] {
	tok, err := c.bearer(op)
	if err != nil {
		var zero T
		return Resolved(zero, err)
	}
	r.token = tok
	return submit(c, op, func(ctx context.Context) (T, error) {
		var reply R
		if err := c.exchange(ctx, op, r, &reply); err != nil {
			var zero T
			return zero, err
		}
		return conv(reply), nil
	})
}

func same[T any](v T) T { return v }

// Login authenticates and stores the session. Success marks the client
// online; an Offline failure marks it offline; any other failure leaves the
// flag alone.
func (c *Client) Login(username, password string) *Pending[AuthResponse] {
	const op = "login"
	body := LoginRequest{Username: username, Password: password}
	return submit(c, op, func(ctx context.Context) (AuthResponse, error) {
		var resp AuthResponse
		err := c.exchange(ctx, op, call{method: http.MethodPost, path: "/v1/auth/login", body: body}, &resp)
		switch {
		case err == nil:
			c.auth.set(resp)
			c.online.Store(true)
			c.logger.Info("logged in", "user", resp.User.UserName)
			return resp, nil
		case IsOffline(err):
			c.online.Store(false)
		}
		return AuthResponse{}, err
	})
}

// FetchCharacter loads one character.
func (c *Client) FetchCharacter(id string) *Pending[ServerCharacter] {
	return authed(c, "fetch_character",
		call{method: http.MethodGet, path: "/v1/characters/" + url.PathEscape(id), retry: true},
		same[ServerCharacter])
}

// ListCharacters loads the account's characters.
func (c *Client) ListCharacters() *Pending[[]ServerCharacter] {
	return authed(c, "list_characters",
		call{method: http.MethodGet, path: "/v1/characters", retry: true},
		same[[]ServerCharacter])
}

// CreateCharacter stores a new character.
func (c *Client) CreateCharacter(req CreateCharacterRequest) *Pending[ServerCharacter] {
	return authed(c, "create_character",
		call{method: http.MethodPost, path: "/v1/characters", body: req},
		same[ServerCharacter])
}

// ListItems loads the project's item catalog.
func (c *Client) ListItems() *Pending[[]ServerItem] {
	return authed(c, "list_items",
		call{method: http.MethodGet, path: "/v1/character-items/project/" + url.PathEscape(c.cfg.ProjectID), retry: true},
		func(r itemListResponse) []ServerItem { return r.Items })
}

// FetchItem loads one catalog item.
func (c *Client) FetchItem(itemID string) *Pending[ServerItem] {
	return authed(c, "fetch_item",
		call{method: http.MethodGet, path: "/v1/character-items/" + url.PathEscape(itemID), retry: true},
		same[ServerItem])
}

// CreateItem adds an item to the catalog.
func (c *Client) CreateItem(item ServerItem) *Pending[ServerItem] {
	if item.ProjectID == "" {
		item.ProjectID = c.cfg.ProjectID
	}
	return authed(c, "create_item",
		call{method: http.MethodPost, path: "/v1/character-items", body: item},
		func(r itemMutationResponse) ServerItem { return r.Item })
}

// UpdateItem replaces the fields of a catalog item.
func (c *Client) UpdateItem(itemID string, item ServerItem) *Pending[ServerItem] {
	return authed(c, "update_item",
		call{method: http.MethodPatch, path: "/v1/character-items/" + url.PathEscape(itemID), body: item},
		func(r itemMutationResponse) ServerItem { return r.Item })
}

// DeleteItem removes a catalog item.
func (c *Client) DeleteItem(itemID string) *Pending[DeleteResponse] {
	return authed(c, "delete_item",
		call{method: http.MethodDelete, path: "/v1/character-items/" + url.PathEscape(itemID)},
		same[DeleteResponse])
}

// SendChat asks the AI endpoint for the next reply. It needs no token.
func (c *Client) SendChat(req ChatRequest) *Pending[ChatResponse] {
	const op = "chat"
	return submit(c, op, func(ctx context.Context) (ChatResponse, error) {
		var resp ChatResponse
		err := c.exchange(ctx, op, call{method: http.MethodPost, path: "/v1/ai/chat", body: req}, &resp)
		return resp, err
	})
}
