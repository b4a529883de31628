/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//go:generate mockgen -source=client.go -destination=mock/interfaces.go -package=mock

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/nscaledev/lpg-smoke/pkg/config"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// Doer sends a single HTTP request, *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIClient talks to the portal API. Unlike a typical API client a non-2xx
// status is not an error, callers branch on Response.StatusCode. Only
// transport faults are returned as errors.
type APIClient struct {
	baseURL   string
	client    Doer
	authToken string
	config    *config.Config
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	// JSON is the decoded body, valid only when IsJSON is set.
	JSON    any
	IsJSON  bool
	TraceID string
}

// Text returns the raw body.
func (r *Response) Text() string {
	return string(r.Body)
}

// Data returns the decoded body when it is JSON and the raw text otherwise.
func (r *Response) Data() any {
	if r.IsJSON {
		return r.JSON
	}

	return r.Text()
}

// Object returns the body as a JSON object, if it is one.
func (r *Response) Object() (map[string]any, bool) {
	if !r.IsJSON {
		return nil, false
	}

	object, ok := r.JSON.(map[string]any)

	return object, ok
}

// New returns a client with a cookie jar, so session cookies set by one call
// are sent on the next.
func New(config *config.Config) (*APIClient, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	httpClient := &http.Client{
		Timeout: config.RequestTimeout,
		Jar:     jar,
	}

	return NewWithDoer(config, httpClient), nil
}

// NewWithDoer returns a client that sends requests through the given transport.
func NewWithDoer(config *config.Config, doer Doer) *APIClient {
	return &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client:  doer,
		config:  config,
	}
}

// BaseURL returns the URL paths are resolved against.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

func (c *APIClient) SetAuthToken(token string) {
	c.authToken = token
}

func (c *APIClient) AuthToken() string {
	return c.authToken
}

// Get issues a GET request.
func (c *APIClient) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with an optional JSON body.
func (c *APIClient) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	log := log.FromContext(ctx)

	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)

	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=lpg-smoke")
	req.Header.Set("Accept", "application/json")

	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error(err, "http request failed", "method", method, "path", path, "duration", duration, "traceID", traceID)
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(err, "reading response body", "method", method, "path", path, "status", resp.StatusCode, "traceID", traceID)
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		log.Info("request", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceID", traceID)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		log.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		TraceID:    traceID,
	}

	var decoded any
	if err := json.Unmarshal(respBody, &decoded); err == nil {
		response.JSON = decoded
		response.IsJSON = true
	}

	return response, nil
}
