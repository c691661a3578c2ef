// Package supabase talks to a Supabase project over HTTPS: PostgREST for
// the journal tables and the Storage API for screenshots.
package supabase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"trademind/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	restPath    = "/rest/v1"
	storagePath = "/storage/v1"

	defaultTimeout = 15 * time.Second
)

type Client struct {
	rest    *resty.Client
	baseURL string
	bucket  string
	tracer  trace.Tracer
	logger  *zap.Logger
}

// NewClient returns a client for the project at baseURL authenticated with
// key (anon or service role). bucket names the screenshot bucket.
func NewClient(baseURL, key, bucket string, tracer trace.Tracer, logger *zap.Logger) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetHeader("apikey", key).
		SetAuthToken(key).
		SetTimeout(defaultTimeout)

	return &Client{
		rest:    rest,
		baseURL: baseURL,
		bucket:  bucket,
		tracer:  tracer,
		logger:  logger,
	}
}

// apiError is the error body shared by PostgREST and the Storage API.
type apiError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
	Error      string `json:"error"`
	StatusCode string `json:"statusCode"`
}

func (e *apiError) text() string {
	switch {
	case e == nil:
		return ""
	case e.Message != "":
		return e.Message
	default:
		return e.Error
	}
}

// do executes req and maps failures onto the domain taxonomy. Transport
// failures, auth rejections and server errors mean the store is
// unavailable; other non-2xx answers are returned as plain errors.
func (c *Client) do(ctx context.Context, op, method, path string, req *resty.Request) (*resty.Response, error) {
	apiErr := &apiError{}
	req.SetContext(ctx).SetError(apiErr)

	c.logger.Debug("supabase request", zap.String("op", op), zap.String("method", method), zap.String("path", path))
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	if !resp.IsError() {
		return resp, nil
	}

	status := resp.StatusCode()
	msg := apiErr.text()
	if msg == "" {
		msg = resp.Status()
	}
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden, status >= 500:
		return nil, fmt.Errorf("%s: %w: supabase %d: %s", op, domain.ErrStoreUnavailable, status, msg)
	case apiErr.Code == "22P02":
		// malformed id for the column type; no such row can exist
		return nil, fmt.Errorf("%s: %w: %s", op, domain.ErrNotFound, msg)
	default:
		return nil, fmt.Errorf("%s: supabase %d: %s", op, status, msg)
	}
}
