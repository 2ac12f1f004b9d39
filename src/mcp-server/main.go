// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides MCP server implementation for JSON Schema validation
package mcpserver

import (
	"fmt"

	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/harness"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/version"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var serverName = "JSON Schema Conformance Harness" // MCP server name
var appVersion = version.Version                   // default version

// GetVersion returns the current version of the MCP server.
//
// The version is initially the default from the version package, but can be
// overridden when calling Run with a specific version string.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server with JSON Schema validation tools.
// It loads configuration from the HARNESS_CONFIG_FILE environment variable.
func Run(ver string) error {
	// Set the version for GetVersion
	appVersion = ver

	// Load configuration, honoring HARNESS_CONFIG_FILE and HARNESS_* overrides
	config, err := harness.LoadConfig("")
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Create MCP server
	s := server.NewMCPServer(
		serverName,
		appVersion,
		server.WithToolCapabilities(true),
	)

	// Define instance validation tool
	validateInstanceTool := mcp.NewTool("validate_instance",
		mcp.WithDescription("Validate a JSON instance against a JSON Schema"),
		mcp.WithString("schema",
			mcp.Required(),
			mcp.Description("Schema document as JSON text"),
		),
		mcp.WithString("instance",
			mcp.Required(),
			mcp.Description("Instance to validate, as JSON text"),
		),
		mcp.WithString("dialect",
			mcp.Description("Dialect URI to compile under (default: inferred from the schema's $schema)"),
		),
		mcp.WithString("registry",
			mcp.Description("JSON object mapping URIs to schema documents referenced by the schema"),
		),
		mcp.WithString("engine",
			mcp.Description("Compiling engine: 'santhosh' or 'xeipuuv' (default: "+config.Engine+")"),
			mcp.DefaultString(config.Engine),
		),
	)

	// Define dialect listing tool
	listDialectsTool := mcp.NewTool("list_dialects",
		mcp.WithDescription("List the JSON Schema dialect URIs the harness supports"),
	)

	// Register tool handlers
	s.AddTool(validateInstanceTool, handleValidateInstance)
	s.AddTool(listDialectsTool, handleListDialects)

	// Start server
	return server.ServeStdio(s)
}
