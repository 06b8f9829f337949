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
	"testing"

	"github.com/dstotijn/go-mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTools(t *testing.T) {
	client := NewClient(testConfig)
	assert.Len(t, Tools(client), 5)
}

func TestNewPayloadResult(t *testing.T) {
	// Raw text bodies (CSV, XML) pass through unchanged.
	res := newPayloadResult("a,b\n1,2\n")
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "a,b\n1,2\n", text.Text)
	assert.False(t, res.IsError)

	// Structured payloads are fenced as JSON.
	res = newPayloadResult(map[string]any{"count": 42})
	require.Len(t, res.Content, 1)
	text, ok = res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "```json\n{\"count\":42}\n```", text.Text)
	assert.False(t, res.IsError)

	// Downstream error envelopes render as values, not tool failures.
	res = newPayloadResult(&APIError{Status: "error", Message: "nope", HTTPStatus: 413})
	require.Len(t, res.Content, 1)
	text, ok = res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"http_status":413`)
	assert.False(t, res.IsError)
}

func TestNewToolCallErrorResult(t *testing.T) {
	res := newToolCallErrorResult("boom: %d", 7)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "boom: 7", text.Text)
	assert.True(t, res.IsError)
}
