// Package anubis verifies bearer tokens against the Anubis account service.
package anubis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/RomanDaru/algomancer.cc-sub000/internal/domain/user"
	basecache "github.com/RomanDaru/algomancer.cc-sub000/internal/platform/cache"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/platform/logging"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/platform/resilience"
	"github.com/RomanDaru/algomancer.cc-sub000/internal/usecase"
)

const (
	defaultIntrospectPath = "/v1/auth/introspect"
	defaultCacheTTL       = 30 * time.Second
	maxIntrospectBytes    = 1 << 20
)

var errAnubisTransient = crerr.New("anubis transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	CacheTTL       time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
	principals    *basecache.Store[user.Principal]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 3 * time.Second}
	}

	path := cfg.IntrospectPath
	if strings.TrimSpace(path) == "" {
		path = defaultIntrospectPath
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	client := &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, path),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		logger:        logger,
		breaker:       resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
	if ttl > 0 {
		client.principals = basecache.NewStore[user.Principal](ttl)
	}
	return client
}

// VerifyAccessToken resolves token to a principal. Inactive or rejected
// tokens yield usecase.ErrUnauthorized; outages yield
// usecase.ErrDependencyUnavailable.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	if c.principals == nil {
		return c.introspect(ctx, token)
	}
	return c.principals.GetOrLoad(ctx, hashToken(token), func(ctx context.Context) (user.Principal, error) {
		return c.introspect(ctx, token)
	})
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	var decoded introspectResponse
	err := c.breaker.Do(ctx, func(ctx context.Context) error {
		return c.postIntrospect(ctx, token, &decoded)
	}, isCircuitFailure)
	switch {
	case err == nil:
	case crerr.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "anubis circuit breaker rejected request", "state", c.breaker.State())
		return user.Principal{}, fmt.Errorf("%w: account service is temporarily unavailable", usecase.ErrDependencyUnavailable)
	case crerr.Is(err, usecase.ErrUnauthorized):
		return user.Principal{}, err
	default:
		c.logger.WarnContext(ctx, "anubis introspection failed", "error", err)
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, crerr.New("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
		Roles:  decoded.Roles,
	}, nil
}

func (c *Client) postIntrospect(ctx context.Context, token string, target *introspectResponse) error {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return crerr.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "request introspection"), errAnubisTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIntrospectBytes))
	if err != nil {
		return crerr.Mark(crerr.Wrap(err, "read introspect response"), errAnubisTransient)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		// The service rejected our admin key, not the user's token.
		return crerr.Newf("anubis rejected admin credentials status=%d", resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return crerr.Mark(crerr.Newf("anubis status=%d", resp.StatusCode), errAnubisTransient)
	case resp.StatusCode != http.StatusOK:
		return crerr.Newf("anubis introspection failed with status %d", resp.StatusCode)
	}

	if err := sonic.Unmarshal(body, target); err != nil {
		return crerr.Wrap(err, "unmarshal introspect response")
	}
	return nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool     `json:"active"`
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}
