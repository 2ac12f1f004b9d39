// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callToolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestHandleValidateInstance(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		wantValid bool
	}{
		{
			name: "valid instance",
			args: map[string]any{
				"schema":   `{"type":"integer"}`,
				"instance": `12`,
			},
			wantValid: true,
		},
		{
			name: "invalid instance",
			args: map[string]any{
				"schema":   `{"type":"integer"}`,
				"instance": `"twelve"`,
			},
			wantValid: false,
		},
		{
			name: "pinned dialect applies",
			args: map[string]any{
				"schema":   `{"minimum":5}`,
				"instance": `3`,
				"dialect":  "http://json-schema.org/draft-04/schema#",
			},
			wantValid: false,
		},
		{
			name: "registry reference resolves",
			args: map[string]any{
				"schema":   `{"$ref":"https://example.com/name"}`,
				"instance": `"gopher"`,
				"registry": `{"https://example.com/name":{"type":"string"}}`,
			},
			wantValid: true,
		},
		{
			name: "xeipuuv engine",
			args: map[string]any{
				"schema":   `{"required":["a"]}`,
				"instance": `{}`,
				"engine":   "xeipuuv",
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleValidateInstance(context.Background(), callToolRequest(tt.args))
			require.NoError(t, err)
			require.False(t, result.IsError, "unexpected tool error: %s", resultText(t, result))

			var verdict struct {
				Valid bool `json:"valid"`
			}
			require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &verdict))
			assert.Equal(t, tt.wantValid, verdict.Valid)
		})
	}
}

func TestHandleValidateInstanceErrors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing schema", args: map[string]any{"instance": `1`}},
		{name: "missing instance", args: map[string]any{"schema": `{}`}},
		{name: "schema not json", args: map[string]any{"schema": `{broken`, "instance": `1`}},
		{name: "instance not json", args: map[string]any{"schema": `{}`, "instance": `{broken`}},
		{name: "registry not an object", args: map[string]any{"schema": `{}`, "instance": `1`, "registry": `[1]`}},
		{name: "unsupported dialect", args: map[string]any{"schema": `{}`, "instance": `1`, "dialect": "https://example.com/nope"}},
		{name: "unknown engine", args: map[string]any{"schema": `{}`, "instance": `1`, "engine": "imaginary"}},
		{name: "unresolvable reference", args: map[string]any{"schema": `{"$ref":"https://example.com/missing"}`, "instance": `1`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleValidateInstance(context.Background(), callToolRequest(tt.args))
			require.NoError(t, err, "tool failures are reported in-band")
			assert.True(t, result.IsError)
		})
	}
}

func TestHandleListDialects(t *testing.T) {
	result, err := handleListDialects(context.Background(), callToolRequest(nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var infos []struct {
		URI         string `json:"uri"`
		Ordinal     int    `json:"ordinal"`
		Compilation string `json:"compilation"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &infos))
	require.Len(t, infos, 6)

	byURI := map[string]int{}
	for _, info := range infos {
		byURI[info.URI] = info.Ordinal
	}
	assert.Equal(t, 9, byURI["https://json-schema.org/draft/2020-12/schema"])
	assert.Equal(t, 7, byURI["http://json-schema.org/draft-07/schema#"])
	assert.Equal(t, 3, byURI["http://json-schema.org/draft-03/schema#"])
}

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
}
