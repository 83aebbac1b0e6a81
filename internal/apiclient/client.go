package apiclient

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
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/trivial-job-tracker/internal/logging"
	"github.com/Tiliavir/trivial-job-tracker/internal/model"
)

const (
	applicationsPath = "/applications/"
	interactionsPath = "/interactions/"
)

// Client is an authenticated client for the job applications resource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// Option customises a Client.
type Option func(*Client)

// WithLogger sets the diagnostic logger. The default discards output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a client for baseURL whose requests carry a bearer token from ts.
// ts is asked for a token on every request, so a rotated credential takes
// effect immediately. A base *http.Client stored in ctx under oauth2.HTTPClient
// supplies the underlying transport. No client-side timeout is applied.
func New(ctx context.Context, baseURL string, ts oauth2.TokenSource, opts ...Option) *Client {
	base := http.DefaultTransport
	if hc, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok && hc != nil && hc.Transport != nil {
		base = hc.Transport
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		// oauth2.NewClient would wrap ts in a ReuseTokenSource and cache
		// tokens without expiry for the life of the client.
		httpClient: &http.Client{Transport: &oauth2.Transport{Source: ts, Base: base}},
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListApplications fetches every application visible to the caller, in the
// order the server returns them.
func (c *Client) ListApplications(ctx context.Context) ([]model.Application, error) {
	const op = "list applications"
	body, err := c.do(ctx, op, http.MethodGet, applicationsPath, nil)
	if err != nil {
		return nil, err
	}
	var apps []model.Application
	if err := json.Unmarshal(body, &apps); err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if apps == nil {
		apps = []model.Application{}
	}
	return apps, nil
}

// CreateApplication posts the draft. The response body is ignored.
func (c *Client) CreateApplication(ctx context.Context, draft model.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	_, err = c.do(ctx, "create application", http.MethodPost, applicationsPath, payload)
	return err
}

// GetApplication fetches a single application by id.
func (c *Client) GetApplication(ctx context.Context, id model.ID) (model.Application, error) {
	const op = "get application"
	body, err := c.do(ctx, op, http.MethodGet, applicationsPath+url.PathEscape(string(id)), nil)
	if err != nil {
		return model.Application{}, err
	}
	var app model.Application
	if err := json.Unmarshal(body, &app); err != nil {
		return model.Application{}, &NetworkError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return app, nil
}

// ListInteractions fetches the email interactions recorded for an application.
func (c *Client) ListInteractions(ctx context.Context, applicationID model.ID) ([]model.Interaction, error) {
	const op = "list interactions"
	body, err := c.do(ctx, op, http.MethodGet, interactionsPath+url.PathEscape(string(applicationID)), nil)
	if err != nil {
		return nil, err
	}
	var interactions []model.Interaction
	if err := json.Unmarshal(body, &interactions); err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if interactions == nil {
		interactions = []model.Interaction{}
	}
	return interactions, nil
}

// CreateInteraction records an interaction. The response body is ignored.
func (c *Client) CreateInteraction(ctx context.Context, draft model.InteractionDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encoding interaction: %w", err)
	}
	_, err = c.do(ctx, "create interaction", http.MethodPost, interactionsPath, payload)
	return err
}

// do sends one request and returns the body of a 2xx response. Anything else
// becomes a *NetworkError.
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.WithFields(logrus.Fields{
		"op":         op,
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return nil, &NetworkError{Op: op, Err: err}
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	})
	if err != nil {
		log.WithError(err).Debug("reading response failed")
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug("request rejected")
		return nil, &NetworkError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	log.Debug("request done")
	return body, nil
}
