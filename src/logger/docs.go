// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and provides two implementations: CLILogger for
// human-readable command-line output and StdioLogger for structured JSON logging
// in modes where stdout carries the wire protocol (the harness loop and the
// MCP server). Both implementations are thread-safe.
package logger
