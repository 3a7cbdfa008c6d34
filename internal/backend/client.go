// Package backend is the HTTP client for the hosted notes service: a managed
// auth API plus a single relational table exposed over a REST interface and
// protected by row-level security. The service is an external collaborator;
// this package only speaks its JSON wire format.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func New(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// request options for a single call. Every request carries the anon key; an
// access token, when present, identifies the user for row-level security.
type requestOptions struct {
	accessToken string
	prefer      string
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, opts requestOptions, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("apikey", c.anonKey)
	token := opts.accessToken
	if token == "" {
		token = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if opts.prefer != "" {
		req.Header.Set("Prefer", opts.prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// APIError is a structured failure reported by the backend. Its message is
// the backend's own and is safe to show to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps err to the backend's structured error, if it is one.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// The auth API and the table API use different error envelopes; try the
// known message fields in order and fall back to the HTTP status.
func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	for _, message := range []string{payload.Message, payload.Msg, payload.ErrorDescription, payload.Error} {
		if strings.TrimSpace(message) != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: message}
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}
