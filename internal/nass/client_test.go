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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testQuery = Query{
	Commodity: Filter{{Field: "commodity_desc", Value: "CORN"}},
	Location:  Filter{{Field: "state_alpha", Value: "IA"}},
	Time:      Filter{{Field: "year", Value: "2020"}},
}

func TestFetchDatasetJSON(t *testing.T) {
	var gotPath, gotQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"commodity_desc":"CORN","Value":"171.4"}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "testkey", Format: FormatJSON}).
		WithBaseURL(server.URL).
		WithHTTPClient(server.Client())

	payload, err := client.FetchDataset(context.Background(), testQuery)
	require.NoError(t, err)

	assert.Equal(t, "/api_GET", gotPath)
	assert.Equal(t, "format=JSON&key=testkey&commodity_desc=CORN&state_alpha=IA&year=2020", gotQuery)

	// JSON bodies come back decoded.
	m, ok := payload.(map[string]any)
	require.True(t, ok)
	data, ok := m["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
}

func TestFetchDatasetRawBody(t *testing.T) {
	const csvBody = "commodity_desc,state_alpha,year,Value\nCORN,IA,2020,171.4\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CSV", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(csvBody))
	}))
	defer server.Close()

	client := NewClient(testConfig).
		WithBaseURL(server.URL).
		WithHTTPClient(server.Client())

	payload, err := client.FetchDataset(context.Background(), testQuery)
	require.NoError(t, err)

	// Non-JSON bodies pass through unchanged for the caller to interpret.
	assert.Equal(t, csvBody, payload)
}

func TestFetchDatasetDownstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "exceeds limit of 50,000 records", http.StatusRequestEntityTooLarge)
	}))
	defer server.Close()

	client := NewClient(testConfig).
		WithBaseURL(server.URL).
		WithHTTPClient(server.Client())

	payload, err := client.FetchDataset(context.Background(), testQuery)
	require.NoError(t, err)

	apiErr, ok := payload.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "error", apiErr.Status)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.HTTPStatus)
	assert.Contains(t, apiErr.Message, "exceeds limit")
}

func TestFetchDatasetTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := NewClient(testConfig).WithBaseURL(serverURL)

	_, err := client.FetchDataset(context.Background(), testQuery)
	require.Error(t, err)
}

func TestFetchDatasetValidationSkipsNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient(testConfig).
		WithBaseURL(server.URL).
		WithHTTPClient(server.Client())

	q := testQuery
	q.Location = Filter{{Field: "not_a_field", Value: "X"}}
	_, err := client.FetchDataset(context.Background(), q)
	require.ErrorIs(t, err, ErrUnknownParameter)
	assert.Zero(t, requests)
}

func TestFetchRecordCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_counts", r.URL.Path)
		assert.False(t, r.URL.Query().Has("format"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":12345}`))
	}))
	defer server.Close()

	client := NewClient(testConfig).
		WithBaseURL(server.URL).
		WithHTTPClient(server.Client())

	payload, err := client.FetchRecordCount(context.Background(), testQuery)
	require.NoError(t, err)

	m, ok := payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(12345), m["count"])
}

func TestFetchParamValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_param_values", r.URL.Path)
		assert.Equal(t, "testkey", r.URL.Query().Get("key"))
		assert.Equal(t, "commodity_desc", r.URL.Query().Get("param"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"param":"commodity_desc","values":["CORN","SOYBEANS","WHEAT"]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig).
		WithBaseURL(server.URL).
		WithHTTPClient(server.Client())

	payload, err := client.FetchParamValues(context.Background(), "commodity_desc")
	require.NoError(t, err)

	m, ok := payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "commodity_desc", m["param"])
	values, ok := m["values"].([]any)
	require.True(t, ok)
	assert.Len(t, values, 3)
}

func TestFetchParamValuesUnknownName(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := NewClient(testConfig).
		WithBaseURL(server.URL).
		WithHTTPClient(server.Client())

	_, err := client.FetchParamValues(context.Background(), "not_a_field")
	require.ErrorIs(t, err, ErrUnknownParameter)
	assert.Zero(t, requests)
}
