// Package api talks to the conversational-agent backend.
//
// The transport is the openai-go request pipeline used in its generic form
// (Client.Execute against arbitrary paths): it supplies base-URL resolution,
// request encoding, header merging and middleware, while the backend itself
// is not an OpenAI-compatible service. Credentials the OpenAI defaults read
// from the environment are stripped from every request. Response bodies are
// decoded here, so the declared content type does not matter. Automatic
// retries are disabled; any retry is a user action.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"chatdeck/internal/models"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	requestIDHeader = "X-Request-ID"
	userAgent       = "chatdeck"
)

// Backend is the set of calls the chat controller depends on.
type Backend interface {
	ListAgents(ctx context.Context) ([]models.Agent, error)
	ListConversations(ctx context.Context) ([]models.ConversationSummary, error)
	GetConversation(ctx context.Context, id int64) (*models.ConversationDetail, error)
	SendChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

type Client struct {
	client     openai.Client
	logger     *slog.Logger
	timeout    time.Duration
	httpClient *http.Client
	extra      []option.RequestOption
}

var _ Backend = (*Client)(nil)

type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRequestOptions adds request options applied to every call, after the
// client defaults.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(c *Client) { c.extra = append(c.extra, opts...) }
}

// New returns a client rooted at baseURL, e.g. "https://host/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	reqOpts := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(""),
		option.WithHeaderDel("Authorization"),
		option.WithHeaderDel("OpenAI-Organization"),
		option.WithHeaderDel("OpenAI-Project"),
		option.WithHeader("User-Agent", userAgent),
		option.WithMaxRetries(0),
		option.WithHeader("Content-Type", "application/json"),
		option.WithMiddleware(c.trace),
	}
	if c.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(c.httpClient))
	}
	if c.timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(c.timeout))
	}
	reqOpts = append(reqOpts, c.extra...)

	c.client = openai.NewClient(reqOpts...)
	return c
}

// Request performs one exchange. endpoint is relative to the base URL, body
// is JSON-encoded when non-nil, and the response is decoded into dst as JSON
// whatever content type the backend declares. Caller options are applied
// last and win over the defaults.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, dst any, opts ...option.RequestOption) error {
	var raw []byte
	if err := c.client.Execute(ctx, method, endpoint, body, &raw, opts...); err != nil {
		ne := &NetworkError{Method: method, Endpoint: endpoint, Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			ne.StatusCode = apiErr.StatusCode
		}
		return c.fail(ne)
	}

	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return c.fail(&NetworkError{Method: method, Endpoint: endpoint, Err: fmt.Errorf("decoding response: %w", err)})
	}
	return nil
}

func (c *Client) fail(ne *NetworkError) error {
	c.logger.Error("API request failed", "method", ne.Method, "endpoint", ne.Endpoint, "status", ne.StatusCode, "error", ne.Err)
	return ne
}

func (c *Client) ListAgents(ctx context.Context) ([]models.Agent, error) {
	var agents []models.Agent
	if err := c.Request(ctx, http.MethodGet, "agents?active_only=true", nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (c *Client) ListConversations(ctx context.Context) ([]models.ConversationSummary, error) {
	var convs []models.ConversationSummary
	if err := c.Request(ctx, http.MethodGet, "conversations", nil, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

func (c *Client) GetConversation(ctx context.Context, id int64) (*models.ConversationDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid conversation id %d", id)
	}
	var detail models.ConversationDetail
	if err := c.Request(ctx, http.MethodGet, "conversations/"+strconv.FormatInt(id, 10), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) SendChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	var resp models.ChatResponse
	if err := c.Request(ctx, http.MethodPost, "chat/conversation", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// trace tags each request with an id and logs its outcome.
func (c *Client) trace(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	id := req.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
		req.Header.Set(requestIDHeader, id)
	}

	start := time.Now()
	resp, err := next(req)
	attrs := []any{
		"request_id", id,
		"method", req.Method,
		"path", req.URL.Path,
		"duration", time.Since(start),
	}
	if err != nil {
		c.logger.Debug("request error", append(attrs, "error", err)...)
		return resp, err
	}
	c.logger.Debug("request done", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}
