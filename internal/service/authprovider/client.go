// Package authprovider talks to the hosted, session based auth service that owns user identities.
package authprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidToken is returned when the provider rejects an access token.
var ErrInvalidToken = errors.New("invalid or expired access token")

type Config struct {
	URL      string
	APIKey   string
	CacheTTL time.Duration
}

type cachedUser struct {
	user   User
	expiry time.Time
}

type Client struct {
	client *http.Client
	config Config

	cacheMu   sync.RWMutex
	cacheData map[string]cachedUser
	inflight  singleflight.Group
}

func NewClient(cfg Config) *Client {
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return &Client{
		client: &http.Client{
			Transport: &APIKeyTransport{
				APIKey: cfg.APIKey,
				Base:   http.DefaultTransport,
			},
			Timeout: 10 * time.Second,
		},
		config:    cfg,
		cacheData: make(map[string]cachedUser),
	}
}

// APIKeyTransport adds the project api key and asks for brotli bodies.
type APIKeyTransport struct {
	APIKey string
	Base   http.RoundTripper
}

func (t *APIKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("apikey", t.APIKey)
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+t.APIKey)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")
	return t.Base.RoundTrip(req)
}

// SignUp registers a new identity and returns it.
func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (User, error) {
	var resp signUpResponse
	body := credentials{Email: email, Password: password, Data: &signUpPayload{FullName: fullName}}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, &resp); err != nil {
		return User{}, fmt.Errorf("failed to sign up: %w", err)
	}
	user := resp.user()
	if user.ID == "" {
		return User{}, errors.New("failed to sign up: provider returned no user id")
	}
	return user, nil
}

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	var session Session
	body := credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &session); err != nil {
		return Session{}, fmt.Errorf("failed to sign in: %w", err)
	}
	return session, nil
}

// GetUser resolves an access token to its user. Results are cached per token for CacheTTL.
func (c *Client) GetUser(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrInvalidToken
	}

	c.cacheMu.RLock()
	data, ok := c.cacheData[token]
	if ok && time.Now().Before(data.expiry) {
		c.cacheMu.RUnlock()
		return data.user, nil
	}
	c.cacheMu.RUnlock()

	// Concurrent misses for one token share a single provider call.
	v, err, _ := c.inflight.Do(token, func() (any, error) {
		return c.fetchUser(ctx, token)
	})
	if err != nil {
		return User{}, err
	}
	user := v.(User)

	if c.config.CacheTTL > 0 {
		c.cacheMu.Lock()
		c.evictExpired()
		c.cacheData[token] = cachedUser{user: user, expiry: time.Now().Add(c.config.CacheTTL)}
		c.cacheMu.Unlock()
	}
	return user, nil
}

// fetchUser asks the provider who owns token. It runs without cacheMu held.
func (c *Client) fetchUser(ctx context.Context, token string) (User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", token, nil, &user); err != nil {
		var apiErr *ErrorResponse
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return User{}, fmt.Errorf("%w: %v", ErrInvalidToken, apiErr)
		}
		return User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user.ID == "" {
		return User{}, ErrInvalidToken
	}
	return user, nil
}

// evictExpired drops stale tokens. Callers hold cacheMu.
func (c *Client) evictExpired() {
	now := time.Now()
	for token, entry := range c.cacheData {
		if now.After(entry.expiry) {
			delete(c.cacheData, token)
		}
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.URL+path, reqBody)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}

	if resp.Header.Get("Content-Encoding") == "br" {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &ErrorResponse{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.empty() {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

func (r *readCloserWrapper) Read(p []byte) (n int, err error) {
	return r.Reader.Read(p)
}

func (r *readCloserWrapper) Close() error {
	return r.Closer.Close()
}
