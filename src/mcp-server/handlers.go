// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/dialect"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/engine"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// handleValidateInstance compiles the supplied schema and checks the
// instance against it, staging any registry documents the way a protocol
// run would. Each call uses its own temporary cache directory.
func handleValidateInstance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schemaText, err := request.RequireString("schema")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid schema parameter: %v", err)), nil
	}
	instanceText, err := request.RequireString("instance")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid instance parameter: %v", err)), nil
	}

	var schema any
	if err := json.Unmarshal([]byte(schemaText), &schema); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Schema is not valid JSON: %v", err)), nil
	}
	var instance any
	if err := json.Unmarshal([]byte(instanceText), &instance); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Instance is not valid JSON: %v", err)), nil
	}

	caseRegistry := map[string]any{}
	if registryText := request.GetString("registry", ""); registryText != "" {
		if err := json.Unmarshal([]byte(registryText), &caseRegistry); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Registry is not a valid JSON object: %v", err)), nil
		}
	}

	compileDialect := dialect.Unspecified
	if uri := request.GetString("dialect", ""); uri != "" {
		compileDialect = dialect.Resolve(uri)
		if compileDialect == dialect.Unsupported {
			return mcp.NewToolResultError(fmt.Sprintf("Unsupported dialect: %s", uri)), nil
		}
	}

	eng, err := engine.New(request.GetString("engine", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Engine selection failed: %v", err)), nil
	}

	cacheDir, err := os.MkdirTemp("", "schema-cache-*")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create cache directory: %v", err)), nil
	}
	defer os.RemoveAll(cacheDir)

	cache := registry.New(cacheDir)
	if _, err := cache.Stage(registry.Specs(), caseRegistry); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to stage registry: %v", err)), nil
	}

	checker, err := eng.Compile(ctx, engine.CompileRequest{
		Schema:      schema,
		Description: "mcp validate_instance",
		Cache:       cache,
		Registries:  []map[string]any{registry.Specs(), caseRegistry},
		Dialect:     compileDialect,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Schema compilation failed: %v", err)), nil
	}

	valid, err := checker(instance)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Validation failed: %v", err)), nil
	}

	verdict, err := json.Marshal(map[string]any{"valid": valid})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode verdict: %v", err)), nil
	}
	return mcp.NewToolResultText(string(verdict)), nil
}

// handleListDialects reports the supported dialect URIs, newest first in
// URI sort order, with their compilation mode.
func handleListDialects(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type dialectInfo struct {
		URI         string `json:"uri"`
		Ordinal     int    `json:"ordinal"`
		Compilation string `json:"compilation"`
	}

	var infos []dialectInfo
	for _, uri := range dialect.URIs() {
		ordinal, _ := dialect.Ordinal(uri)
		mode := "pinned"
		if dialect.Resolve(uri) == dialect.Unspecified {
			mode = "schema-declared"
		}
		infos = append(infos, dialectInfo{URI: uri, Ordinal: int(ordinal), Compilation: mode})
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode dialects: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
