// Package api talks to the remote evaluation service.
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

	"evalclient/internal/logging"
	"evalclient/internal/types"

	"github.com/google/uuid"
)

const (
	testsPath      = "/api/tests"
	submissionPath = "/api/tests/submission"

	// StatusAccepted is the only status that acknowledges a submission.
	StatusAccepted = http.StatusCreated
)

// Client issues the two service operations. Neither retries nor enforces a
// timeout of its own: failures are reported once and callers decide what next.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service origin.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchTestSuite retrieves the ordered test suite unlocked by token.
func (c *Client) FetchTestSuite(ctx context.Context, token string) (types.Suite, error) {
	resp, reqID, err := c.do(ctx, http.MethodGet, testsPath, token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &StatusError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		logging.API("[%s] fetch tests rejected: %d", reqID, resp.StatusCode)
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	suite, err := decodeSuite(body)
	if err != nil {
		logging.Get(logging.CategoryAPI).Warn("[%s] malformed suite payload: %v", reqID, err)
		return nil, &StatusError{StatusCode: resp.StatusCode, Err: err}
	}

	logging.API("[%s] fetched %d test cases", reqID, len(suite))
	return suite, nil
}

// SubmitSolution posts the serialized submission form.
func (c *Client) SubmitSolution(ctx context.Context, token string, payload map[string]string) (types.SubmissionAck, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return types.SubmissionAck{}, fmt.Errorf("failed to marshal submission: %w", err)
	}

	resp, reqID, err := c.do(ctx, http.MethodPost, submissionPath, token, body)
	if err != nil {
		return types.SubmissionAck{}, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != StatusAccepted {
		msg := errorMessage(respBody)
		logging.API("[%s] submission rejected: %d %q", reqID, resp.StatusCode, msg)
		return types.SubmissionAck{}, &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	logging.API("[%s] submission accepted", reqID)
	return types.SubmissionAck{StatusCode: resp.StatusCode}, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body []byte) (*http.Response, string, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.APIDebug("[%s] %s %s%s", reqID, method, c.baseURL, path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Get(logging.CategoryAPI).Error("[%s] %s %s failed: %v", reqID, method, path, err)
		return nil, reqID, &StatusError{Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	return resp, reqID, nil
}

// errorMessage extracts the optional "message" field of a JSON error body.
func errorMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if len(body) == 0 || json.Unmarshal(body, &e) != nil {
		return ""
	}
	return e.Message
}
