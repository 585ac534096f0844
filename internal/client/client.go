// Package client is a typed HTTP client for the activity API. It decodes the
// server's {type, detail} error payloads into *APIError and lets context
// cancellation pass through untouched so callers can treat a superseded
// request as benign.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"example.com/activitytrack/internal/domain"
)

// APIError carries the server's error detail and HTTP status code.
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Client talks to a running activity API over its /v1 route family.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New constructs a Client for the API at baseURL, e.g. "http://127.0.0.1:8080".
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, http.DefaultClient)
}

// NewWithHTTPClient constructs a Client using the supplied *http.Client.
func NewWithHTTPClient(baseURL string, httpc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// NewActivity is the create payload. Done is not part of it: new activities
// always start not-done.
type NewActivity struct {
	Title string  `json:"title"`
	Date  *string `json:"date,omitempty"`
	Notes string  `json:"notes"`
}

// Patch is a partial update; nil fields are left unchanged. Setting Date to
// an empty string clears the stored date.
type Patch struct {
	Title *string `json:"title,omitempty"`
	Date  *string `json:"date,omitempty"`
	Notes *string `json:"notes,omitempty"`
	Done  *bool   `json:"done,omitempty"`
}

// List fetches the full collection in persisted order.
func (c *Client) List(ctx context.Context) ([]domain.Activity, error) {
	var items []domain.Activity
	if err := c.do(ctx, http.MethodGet, "/v1/activities", nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Activity{}
	}
	return items, nil
}

// Create adds a new activity and returns the created record.
func (c *Client) Create(ctx context.Context, input NewActivity) (*domain.Activity, error) {
	var created domain.Activity
	if err := c.do(ctx, http.MethodPost, "/v1/activity", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies a partial update and returns the updated record.
func (c *Client) Update(ctx context.Context, id string, patch Patch) (*domain.Activity, error) {
	var updated domain.Activity
	if err := c.do(ctx, http.MethodPatch, "/v1/activity/"+url.PathEscape(id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the activity with the given id. Deleting an id that no
// longer exists is not an error.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/activity/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Cancellation surfaces as-is so callers can errors.Is it.
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeAPIError extracts the detail field from an error payload, falling
// back to a generic message when the body is absent or unparseable.
func decodeAPIError(resp *http.Response) error {
	message := "request failed"
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		message = payload.Detail
	}
	return &APIError{Message: message, Status: resp.StatusCode}
}
