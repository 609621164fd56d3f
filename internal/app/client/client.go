// Package client is the HTTP wrapper around the accommodation backend's REST
// API. It attaches the bearer token, maps error responses onto apperrors and
// reports authentication failures through a callback.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
)

const (
	// RequestIDHeader correlates a request with backend logs
	RequestIDHeader = "X-Request-ID"

	maxErrorBody    = 64 << 10
	maxResponseBody = 4 << 20
)

// TokenSource supplies the bearer token. An empty token means the student
// is not logged in.
type TokenSource interface {
	Token() (string, error)
}

// TokenFunc adapts a function to TokenSource
type TokenFunc func() (string, error)

// Token implements TokenSource
func (f TokenFunc) Token() (string, error) {
	return f()
}

// Config configures the client
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	HTTPClient     *http.Client
	Tokens         TokenSource
	OnUnauthorized func()
	Logger         zerolog.Logger
	UserAgent      string
}

// Client talks to the accommodation backend
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	logger         zerolog.Logger
	userAgent      string
}

// New creates a client. No retries are made; callers surface failures and
// let the student try again.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = TokenFunc(func() (string, error) { return "", nil })
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "hostelportal"
	}

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:     httpClient,
		tokens:         tokens,
		onUnauthorized: cfg.OnUnauthorized,
		logger:         cfg.Logger,
		userAgent:      userAgent,
	}, nil
}

// request describes one call
type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	auth   bool
}

// do sends req and decodes a 2xx body into out
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	var token string
	if req.auth {
		var err error
		token, err = c.tokens.Token()
		if err != nil {
			return fmt.Errorf("failed to read session token: %w", err)
		}
		if token == "" {
			c.logger.Debug().Str("path", req.path).Msg("No token available, request not sent")
			c.unauthorized()
			return apperrors.ErrUnauthenticated
		}
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var bodyReader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.New().String()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.logger.With().Str("method", req.method).Str("path", req.path).Str("requestId", requestID).Logger()
	log.Debug().Msg("Sending request")
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn().Err(err).Msg("Request failed")
		return fmt.Errorf("%w: %v", apperrors.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug().Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("Response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.decodeError(resp, req.auth)
		if errors.Is(apiErr, apperrors.ErrUnauthenticated) {
			c.unauthorized()
		}
		log.Warn().Int("status", resp.StatusCode).Str("message", apiErr.Message).Msg("Backend returned an error")
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", apperrors.ErrServiceUnavailable, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.method, req.path, err)
	}
	return nil
}

// decodeError turns a non-2xx response into an *apperrors.APIError
func (c *Client) decodeError(resp *http.Response, authenticated bool) *apperrors.APIError {
	apiErr := &apperrors.APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body dto.APIErrorBody
	if len(bytes.TrimSpace(data)) > 0 && json.Unmarshal(data, &body) == nil {
		apiErr.Message = body.Message
		apiErr.Code = body.Code
	}

	apiErr.Err = classify(resp.StatusCode, dto.ErrorCode(apiErr.Code), authenticated)
	if apiErr.Message == "" {
		apiErr.Message = apiErr.Err.Error()
	}
	return apiErr
}

// classify picks the sentinel an error response unwraps to
func classify(status int, code dto.ErrorCode, authenticated bool) error {
	switch code {
	case dto.ErrorCodePaymentRequired:
		return apperrors.ErrPaymentRequired
	case dto.ErrorCodeAlreadySubmitted:
		return apperrors.ErrChoicesAlreadySubmitted
	case dto.ErrorCodeNotEligible:
		return apperrors.ErrNotEligible
	case dto.ErrorCodeHostelNotOffered:
		return apperrors.ErrHostelNotOffered
	}

	switch {
	case status == http.StatusUnauthorized && authenticated:
		return apperrors.ErrUnauthenticated
	case status == http.StatusUnauthorized:
		return apperrors.ErrInvalidCredentials
	case status == http.StatusForbidden:
		return apperrors.ErrPermissionDenied
	case status == http.StatusNotFound:
		return apperrors.ErrResourceNotFound
	case status == http.StatusConflict:
		return apperrors.ErrConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return apperrors.ErrBadRequest
	case status >= 500:
		return apperrors.ErrServiceUnavailable
	default:
		return apperrors.ErrBadRequest
	}
}

func (c *Client) unauthorized() {
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func studentPath(id, suffix string) string {
	return "/student/" + url.PathEscape(id) + suffix
}
