package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/naveenspark/langgpt/pkg/domain"
)

// DefaultTimeout bounds every request when no other timeout is configured.
const DefaultTimeout = 30 * time.Second

// TokenSource returns the current bearer token, or "" when there is none.
// It is called once per outgoing request.
type TokenSource func() string

// StaticToken always returns tok.
func StaticToken(tok string) TokenSource {
	return func() string { return tok }
}

// LoginRequest is the POST /login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// RegisterRequest is the POST /register payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is whatever the backend returns on acceptance.
type RegisterResponse struct {
	Message string `json:"message,omitempty"`
}

// TranslateRequest is the POST /translate payload.
type TranslateRequest struct {
	Text      string           `json:"text"`
	Direction domain.Direction `json:"direction"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger attaches a logger; requests are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUnauthorizedHandler registers fn to run whenever an authenticated
// call comes back 401. Credential exchanges (/login, /register) never
// trigger it.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// Client is the LangGPT API client.
type Client struct {
	baseURL        string
	tokens         TokenSource
	httpClient     *http.Client
	log            *zap.Logger
	onUnauthorized func()
}

// New creates a new API client. tokens may be nil for an anonymous client.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetUnauthorizedHandler replaces the 401 handler after construction.
// The session store and the client reference each other, so one side has
// to be wired late.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.doRequest(ctx, http.MethodPost, "/login", LoginRequest{Username: username, Password: password}, &resp, credentialExchange)
	if err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("client.Login: response carried no access_token")
	}
	return &resp, nil
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/register", req, &resp, credentialExchange); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &resp, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*domain.UserProfile, error) {
	var u domain.UserProfile
	if err := c.get(ctx, "/api/me", &u); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return &u, nil
}

// Profile fetches the profile owned by token, ignoring the stored one.
// It is a credential check, so a 401 does not reach the unauthorized
// handler.
func (c *Client) Profile(ctx context.Context, token string) (*domain.UserProfile, error) {
	var u domain.UserProfile
	if err := c.send(ctx, http.MethodGet, "/api/me", nil, &u, credentialExchange, token); err != nil {
		return nil, fmt.Errorf("client.Profile: %w", err)
	}
	return &u, nil
}

// Translate runs the draft + review translation for text.
func (c *Client) Translate(ctx context.Context, text string, dir domain.Direction) (*domain.TranslationResult, error) {
	var res domain.TranslationResult
	if err := c.post(ctx, "/translate", TranslateRequest{Text: text, Direction: dir}, &res); err != nil {
		return nil, fmt.Errorf("client.Translate: %w", err)
	}
	return &res, nil
}

// History returns the caller's translations, newest first. limit <= 0
// leaves the page size to the backend.
func (c *Client) History(ctx context.Context, limit int) ([]domain.TranslationRecord, error) {
	path := "/history"
	if limit > 0 {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(limit))
		path += "?" + params.Encode()
	}

	var records []domain.TranslationRecord
	if err := c.get(ctx, path, &records); err != nil {
		return nil, fmt.Errorf("client.History: %w", err)
	}
	return records, nil
}

type requestKind int

const (
	authenticated requestKind = iota
	credentialExchange
)

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out, authenticated)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out, authenticated)
}

// doRequest sends with the current token. The token is read fresh for
// every request so a login or logout is visible to the very next call.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any, kind requestKind) error {
	return c.send(ctx, method, path, body, out, kind, c.tokens())
}

func (c *Client) send(ctx context.Context, method, path string, body any, out any, kind requestKind, token string) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode >= 400 {
		httpErr := readHTTPError(resp)
		if resp.StatusCode == http.StatusUnauthorized && kind == authenticated && c.onUnauthorized != nil {
			c.log.Info("authorization rejected", zap.String("path", path), zap.String("request_id", requestID))
			c.onUnauthorized()
		}
		return httpErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func readHTTPError(resp *http.Response) *HTTPError {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
	}
	var apiErr struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil {
		if len(apiErr.Detail) > 0 && string(apiErr.Detail) != "null" {
			var msg string
			if json.Unmarshal(apiErr.Detail, &msg) == nil {
				return &HTTPError{StatusCode: resp.StatusCode, Message: msg, fromDetail: true}
			}
			return &HTTPError{
				StatusCode: resp.StatusCode,
				Message:    http.StatusText(resp.StatusCode),
				Detail:     apiErr.Detail,
			}
		}
		if apiErr.Error != "" {
			return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
	}
	msg := strings.TrimSpace(string(respBody))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: msg}
}
