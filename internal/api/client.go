package api

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"chatterly/internal/config"
	"chatterly/internal/core"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"resty.dev/v3"
)

const requestIDHeader = "X-Request-ID"

type routeKey struct{}

// Client talks to the Chatterly backend. Authenticated bindings take the
// bearer token from Sessions on every call.
type Client struct {
	Logger   *slog.Logger
	Config   *config.Config
	Sessions core.SessionStore

	client *resty.Client
}

func NewClient(cfg *ClientConfig, sessions core.SessionStore, logger *slog.Logger) *Client {
	c := &Client{
		Logger:   logger,
		Sessions: sessions,
	}
	c.setup(cfg)
	return c
}

func (c *Client) Init(_ context.Context) error {
	cfg := *DefaultConfig
	cfg.BaseURL = lo.Ternary(c.Config.APIURL != "", c.Config.APIURL, cfg.BaseURL)
	cfg.Timeout = lo.Ternary(c.Config.Timeout > 0, c.Config.Timeout, cfg.Timeout)

	c.setup(&cfg)
	return nil
}

func (c *Client) Shutdown(_ context.Context) error {
	return c.Close()
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) setup(cfg *ClientConfig) {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	c.Logger = c.Logger.With("component", "api.Client")

	transport := lo.Ternary(cfg.TransportSettings != nil, cfg.TransportSettings, DefaultConfig.TransportSettings)

	c.client = resty.NewWithTransportSettings(transport).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		AddResponseMiddleware(c.observe)

	for _, m := range cfg.ResponseMiddlewares {
		c.client.AddResponseMiddleware(m)
	}
}

// r builds an anonymous request. route is a low cardinality name of the
// endpoint used for logs and metrics.
func (c *Client) r(ctx context.Context, route string) *resty.Request {
	return c.client.R().
		WithContext(context.WithValue(ctx, routeKey{}, route)).
		SetHeader(requestIDHeader, uuid.NewString())
}

// authed builds a request carrying the session's bearer token. No request is
// built without a session.
func (c *Client) authed(ctx context.Context, route string) (*resty.Request, error) {
	token, err := c.Sessions.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if token == "" {
		return nil, core.ErrNotAuthenticated
	}

	return c.r(ctx, route).SetAuthToken(token), nil
}

func (c *Client) observe(_ *resty.Client, res *resty.Response) error {
	route, _ := res.Request.Context().Value(routeKey{}).(string)

	requestsTotal.WithLabelValues(res.Request.Method, route, statusClass(res.StatusCode())).Inc()
	requestDuration.WithLabelValues(res.Request.Method, route).Observe(res.Duration().Seconds())

	c.Logger.Debug("request",
		"method", res.Request.Method,
		"route", route,
		"status", res.StatusCode(),
		"duration", res.Duration(),
		"request_id", res.Request.Header.Get(requestIDHeader),
	)
	return nil
}

// check turns transport failures and HTTP error statuses into errors.
func check(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if res.IsError() {
		return nil, newError(res)
	}
	return res, nil
}
