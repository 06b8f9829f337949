// Copyright 2025 David Stotijn
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nass

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/dstotijn/mcp-nass-quickstats", "nass")

const defaultBaseURL = "https://quickstats.nass.usda.gov/api"

// Quick Stats endpoint path segments.
const (
	endpointData        = "api_GET"
	endpointCounts      = "get_counts"
	endpointParamValues = "get_param_values"
)

// APIError is the normalized envelope for a non-2xx response from the Quick
// Stats API. It is returned as a value, not an error: the caller corrects
// the query and resubmits.
type APIError struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"http_status"`
}

// Client executes compiled requests against the Quick Stats API. Each call
// is a single best-effort attempt: no retries, no caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cfg        Config
}

// NewClient creates a Quick Stats API client.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: defaultBaseURL,
		cfg:     cfg,
	}
}

// WithBaseURL overrides the API base URL.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// WithHTTPClient overrides the HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// FetchDataset compiles the query and retrieves all matching records from
// the full-data endpoint, in the configured output format.
func (c *Client) FetchDataset(ctx context.Context, q Query) (any, error) {
	req, err := Compile(q, c.cfg)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, endpointData, req)
}

// FetchRecordCount compiles the query and retrieves the number of matching
// records. The count endpoint is format-agnostic and always answers JSON.
func (c *Client) FetchRecordCount(ctx context.Context, q Query) (any, error) {
	req, err := CompileCount(q, c.cfg)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, endpointCounts, req)
}

// FetchParamValues retrieves all possible values for a single query
// parameter. An unknown name fails before any network call.
func (c *Client) FetchParamValues(ctx context.Context, param string) (any, error) {
	if _, ok := ParameterCategory(param); !ok {
		return nil, errors.Wrapf(ErrUnknownParameter, "%q", param)
	}
	req := newCompiledRequest()
	req.set("key", c.cfg.APIKey)
	req.set("param", param)
	return c.do(ctx, endpointParamValues, req)
}

// do executes one GET against an endpoint and normalizes the outcome: a
// decoded payload for a 2xx JSON response, the raw body for other 2xx
// responses (CSV and XML pass through unchanged), an APIError value for a
// non-2xx status, or a Go error when the request could not complete.
func (c *Client) do(ctx context.Context, endpoint string, creq *CompiledRequest) (any, error) {
	url := c.baseURL + "/" + endpoint + "?" + creq.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR, "endpoint", endpoint, "err", err.Error())
		return nil, errors.Wrapf(err, "request to %s endpoint failed", endpoint)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s response", endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.ContextKV(ctx, xlog.WARNING,
			"endpoint", endpoint,
			"status", resp.StatusCode,
		)
		return &APIError{
			Status:     "error",
			Message:    string(body),
			HTTPStatus: resp.StatusCode,
		}, nil
	}

	if strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "json") {
		var payload any
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal %s response", endpoint)
		}
		return payload, nil
	}

	return string(body), nil
}
