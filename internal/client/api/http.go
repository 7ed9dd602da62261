// Package api is the REST client for the Qourio backend. It owns transport
// concerns only: URL building, the response envelope, bearer-token headers,
// the refresh-once retry, and error classification. Caching and invalidation
// live one layer up, in the services.
package api

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

	"github.com/google/uuid"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/logging"
)

// TokenStore persists the session tokens between requests (and between
// process runs). Implemented by the session store; tests use an in-memory
// stub.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetTokens(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
}

// ExpiryChecker is the optional TokenStore capability of reading the access
// token's exp claim. When available, the client rotates the token pair ahead
// of expiry instead of waiting for the 401 round trip.
type ExpiryChecker interface {
	AccessTokenExpiresWithin(ctx context.Context, d time.Duration) bool
}

// refreshLeeway is how close to the access token's expiry a request triggers
// a proactive refresh.
const refreshLeeway = 30 * time.Second

// envelope is the generic response wrapper with the payload left raw.
type envelope = models.Response[json.RawMessage]

// HTTPClient talks to the backend over REST.
type HTTPClient struct {
	baseURL *url.URL
	hc      *http.Client
	tokens  TokenStore
	log     logging.Logger
}

// New builds a client for the given base URL (e.g.
// "https://api.example.com/api/v1"). tokens may be nil for purely public use.
func New(baseURL string, timeout time.Duration, tokens TokenStore, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host required", baseURL)
	}
	if log == nil {
		log = logging.Discard()
	}
	return &HTTPClient{
		baseURL: u,
		hc:      &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With("component", "api"),
	}, nil
}

// Close releases idle transport connections.
func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// do performs one request and decodes the response envelope. On a 401 it
// refreshes the session once and retries, mirroring the behavior of the
// original token interceptor; the refresh call itself is never retried.
func (c *HTTPClient) do(ctx context.Context, method, path string, q url.Values, body any) (*envelope, error) {
	c.refreshIfExpiring(ctx, path)
	env, status, err := c.roundTrip(ctx, method, path, q, body)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized && c.tokens != nil && path != "/auth/refresh-token" {
		if refreshErr := c.refreshSession(ctx); refreshErr == nil {
			c.log.Debug(ctx, "access token refreshed, retrying", "path", path)
			env, status, err = c.roundTrip(ctx, method, path, q, body)
			if err != nil {
				return nil, err
			}
		}
	}
	if status < 200 || status > 299 {
		msg := ""
		if env != nil {
			msg = env.Message
		}
		return nil, newError(status, msg)
	}
	return env, nil
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, q url.Values, body any) (*envelope, int, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request body: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok, err := c.tokens.AccessToken(ctx); err == nil && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	env := &envelope{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, env); err != nil {
			// Non-JSON bodies (proxies, crashes) still map onto the status.
			c.log.Warn(ctx, "undecodable response body", "path", path, "status", resp.StatusCode)
			env = &envelope{StatusCode: resp.StatusCode}
		}
	}
	return env, resp.StatusCode, nil
}

// refreshIfExpiring rotates the token pair before a request when the access
// token is about to expire. Without a refresh token (anonymous session) the
// attempt is a cheap no-op; a failed refresh falls through to the reactive
// 401 retry in do.
func (c *HTTPClient) refreshIfExpiring(ctx context.Context, path string) {
	ec, ok := c.tokens.(ExpiryChecker)
	if !ok || path == "/auth/refresh-token" {
		return
	}
	if !ec.AccessTokenExpiresWithin(ctx, refreshLeeway) {
		return
	}
	if err := c.refreshSession(ctx); err == nil {
		c.log.Debug(ctx, "access token refreshed ahead of expiry", "path", path)
	}
}

// refreshSession rotates the token pair via POST /auth/refresh-token.
func (c *HTTPClient) refreshSession(ctx context.Context) error {
	rt, err := c.tokens.RefreshToken(ctx)
	if err != nil || rt == "" {
		return fmt.Errorf("no refresh token: %w", ErrUnauthorized)
	}

	env, status, err := c.roundTrip(ctx, http.MethodPost, "/auth/refresh-token", nil,
		map[string]string{"refreshToken": rt})
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		msg := ""
		if env != nil {
			msg = env.Message
		}
		return newError(status, msg)
	}

	var tokens struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(env.Data, &tokens); err != nil || tokens.AccessToken == "" {
		return fmt.Errorf("refresh-token response missing tokens")
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = rt
	}
	return c.tokens.SetTokens(ctx, tokens.AccessToken, tokens.RefreshToken)
}

// decodeData unmarshals the envelope payload into T. An empty payload yields
// the zero value (void endpoints).
func decodeData[T any](env *envelope) (T, error) {
	var out T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("decode response data: %w", err)
	}
	return out, nil
}

// getList fetches a paginated collection and returns rows plus the meta
// block. A missing meta block is tolerated (some deployments omit it on
// empty result sets).
func getList[T any](ctx context.Context, c *HTTPClient, path string, q url.Values) ([]T, models.Meta, error) {
	env, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, models.Meta{}, err
	}
	rows, err := decodeData[[]T](env)
	if err != nil {
		return nil, models.Meta{}, err
	}
	meta := models.Meta{}
	if env.Meta != nil {
		meta = *env.Meta
	}
	return rows, meta, nil
}
