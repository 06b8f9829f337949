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
	"fmt"
	"strings"

	"github.com/dstotijn/go-mcp"
)

// QueryParams is the tool input shared by the dataset and record-count
// tools: three sections of parameter/value pairs. Parameter names may carry
// an operator suffix (e.g. "year__GE") to request a relational comparison.
type QueryParams struct {
	// Commodity parameter and value pairs. Must include "commodity_desc".
	Commodity map[string]string `json:"commodity"`
	// Location parameter and value pairs. May be empty.
	Location map[string]string `json:"location,omitempty"`
	// Time parameter and value pairs: either "year", or "load_time", or
	// "freq_desc"/"begin_code"/"end_code" (optionally with
	// "reference_period_desc" and "week_ending").
	Time map[string]string `json:"time"`
}

// Tools returns every tool served by this bridge, ready for registration.
func Tools(client *Client) []mcp.Tool {
	return []mcp.Tool{
		CreateGetFullDatasetTool(client),
		CreateGetRecordCountTool(client),
		CreateGetParamValuesTool(client),
		CreateGetParameterNamesTool(),
		CreateGetOperatorNamesTool(),
	}
}

// CreateGetFullDatasetTool creates the tool that retrieves all available
// data for a commodity, location, and time.
func CreateGetFullDatasetTool(client *Client) mcp.Tool {
	return mcp.CreateTool(mcp.ToolDef[QueryParams]{
		Name:        "get_full_dataset",
		Description: "Get all available USDA Quick Stats data for a given commodity, location, and time.",
		HandleFunc: func(ctx context.Context, params QueryParams) *mcp.CallToolResult {
			query := QueryFromMaps(params.Commodity, params.Location, params.Time)
			payload, err := client.FetchDataset(ctx, query)
			if err != nil {
				return newToolCallErrorResult("Failed to fetch dataset: %v", err)
			}
			return newPayloadResult(payload)
		},
	})
}

// CreateGetRecordCountTool creates the tool that retrieves the number of
// database records matching a query.
func CreateGetRecordCountTool(client *Client) mcp.Tool {
	return mcp.CreateTool(mcp.ToolDef[QueryParams]{
		Name:        "get_db_record_count",
		Description: "Get the number of USDA Quick Stats database records for a given commodity, location, and time.",
		HandleFunc: func(ctx context.Context, params QueryParams) *mcp.CallToolResult {
			query := QueryFromMaps(params.Commodity, params.Location, params.Time)
			payload, err := client.FetchRecordCount(ctx, query)
			if err != nil {
				return newToolCallErrorResult("Failed to fetch record count: %v", err)
			}
			return newPayloadResult(payload)
		},
	})
}

// CreateGetParamValuesTool creates the tool that retrieves all possible
// values of a query parameter.
func CreateGetParamValuesTool(client *Client) mcp.Tool {
	type GetParamValuesParams struct {
		// The parameter name to get the values for.
		Param string `json:"param"`
	}

	return mcp.CreateTool(mcp.ToolDef[GetParamValuesParams]{
		Name:        "get_param_values",
		Description: "Get all possible values of a Quick Stats query parameter by its name.",
		HandleFunc: func(ctx context.Context, params GetParamValuesParams) *mcp.CallToolResult {
			if params.Param == "" {
				return newToolCallErrorResult("Parameter name is required")
			}
			payload, err := client.FetchParamValues(ctx, params.Param)
			if err != nil {
				return newToolCallErrorResult("Failed to fetch parameter values: %v", err)
			}
			return newPayloadResult(payload)
		},
	})
}

// CreateGetParameterNamesTool creates the tool that lists every query
// parameter name, with its category and description.
func CreateGetParameterNamesTool() mcp.Tool {
	type GetParameterNamesParams struct{}

	return mcp.CreateTool(mcp.ToolDef[GetParameterNamesParams]{
		Name:        "get_parameter_names",
		Description: "List all possible Quick Stats query parameter names, grouped by category.",
		HandleFunc: func(ctx context.Context, params GetParameterNamesParams) *mcp.CallToolResult {
			var b strings.Builder
			for _, p := range parameterCatalog {
				fmt.Fprintf(&b, "- %s (%s): %s\n", p.Name, p.Category, p.Description)
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.TextContent{
						Text: fmt.Sprintf("Query parameter names:\n\n%s", b.String()),
					},
				},
			}
		},
	})
}

// CreateGetOperatorNamesTool creates the tool that lists the operator
// suffixes usable in query parameter names.
func CreateGetOperatorNamesTool() mcp.Tool {
	type GetOperatorNamesParams struct{}

	return mcp.CreateTool(mcp.ToolDef[GetOperatorNamesParams]{
		Name:        "get_operator_names",
		Description: "List the operators that can be appended to Quick Stats parameter names to filter results, e.g. year__GE for 'year greater than or equal to'.",
		HandleFunc: func(ctx context.Context, params GetOperatorNamesParams) *mcp.CallToolResult {
			descriptions := map[Operator]string{
				OpLessOrEqual:    "less than or equal to",
				OpLessThan:       "less than",
				OpGreaterThan:    "greater than",
				OpGreaterOrEqual: "greater than or equal to",
				OpLike:           "contains",
				OpNotLike:        "does not contain",
				OpNotEqual:       "not equal to",
			}
			var b strings.Builder
			for _, op := range operatorCatalog {
				fmt.Fprintf(&b, "- %s: %s\n", op, descriptions[op])
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.TextContent{
						Text: fmt.Sprintf("Operator suffixes:\n\n%s", b.String()),
					},
				},
			}
		},
	})
}

// newPayloadResult renders a normalized dispatch outcome. JSON payloads and
// downstream error envelopes are fenced as JSON; CSV and XML bodies pass
// through as-is for the caller to interpret.
func newPayloadResult(payload any) *mcp.CallToolResult {
	if text, ok := payload.(string); ok {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{Text: text},
			},
		}
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return newToolCallErrorResult("Failed to format response: %v", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Text: fmt.Sprintf("```json\n%s\n```", string(payloadJSON)),
			},
		},
	}
}

func newToolCallErrorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Text: fmt.Sprintf(format, args...),
			},
		},
		IsError: true,
	}
}
