// Package apiclient implements the data collaborators against the EliteBuilders HTTP API.
package apiclient

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

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/elitebuilders-client/internal/middleware"
	"github.com/noah-isme/elitebuilders-client/internal/service"
)

const tracerName = "github.com/noah-isme/elitebuilders-client/internal/apiclient"

// maxErrorBody bounds how much of a failed response is read for its detail.
const maxErrorBody = 64 << 10

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Tokens    middleware.TokenSource
	Transport http.RoundTripper
	Logger    zerolog.Logger
}

// Client sends requests to the backend API through the client middleware chain.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger zerolog.Logger
	tracer trace.Tracer
}

// New builds a Client. The transport is wrapped with correlation, bearer token
// and observability middleware.
func New(opts Options) (*Client, error) {
	base, err := url.ParseRequestURI(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	transport := middleware.Chain(opts.Transport,
		middleware.CorrelationID(),
		middleware.Observability(opts.Logger),
		middleware.BearerToken(opts.Tokens, opts.Logger),
	)

	return &Client{
		base:   base,
		http:   &http.Client{Timeout: timeout, Transport: transport},
		logger: opts.Logger.With().Str("component", "api_client").Logger(),
		tracer: otel.Tracer(tracerName),
	}, nil
}

// NewCollaborators wires the four HTTP collaborators onto one client.
func NewCollaborators(c *Client) service.Collaborators {
	return service.Collaborators{
		Auth:          NewAuthService(c),
		Challenges:    NewChallengeService(c),
		Submissions:   NewSubmissionService(c),
		Notifications: NewNotificationService(c),
	}
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, payload any) (request, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("encode request: %w", err)
	}
	return request{method: method, path: path, body: bytes.NewReader(raw), contentType: "application/json"}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends the request and returns the response body of a 2xx reply.
func (c *Client) do(ctx context.Context, operation string, r request) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "api."+operation)
	span.SetAttributes(
		attribute.String("http.method", r.method),
		attribute.String("http.route", r.path),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, r.method, c.endpoint(r.path, r.query), r.body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport_failed")
		return nil, err
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp)
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, "unexpected_status")
		c.logger.Debug().Str("operation", operation).Int("status", resp.StatusCode).Str("detail", apiErr.Detail).Msg("api returned error")
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

func (c *Client) doJSON(ctx context.Context, operation string, r request, out any) error {
	body, err := c.do(ctx, operation, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

func decodeError(resp *http.Response) *service.APIError {
	apiErr := &service.APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return apiErr
	}
	apiErr.Detail = detailText(body.Detail)
	return apiErr
}

func detailText(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var issues []validationIssue
	if err := json.Unmarshal(raw, &issues); err == nil {
		messages := make([]string, 0, len(issues))
		for _, issue := range issues {
			if msg := strings.TrimSpace(issue.Msg); msg != "" {
				messages = append(messages, msg)
			}
		}
		return strings.Join(messages, "; ")
	}
	return ""
}

func isStatus(err error, status int) bool {
	var apiErr *service.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
