// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the JSON Schema
// conformance test harness. It implements a Cobra-based CLI whose root
// command serves the line-delimited JSON protocol on stdin/stdout, with a
// dialects subcommand listing supported dialect URIs. Configuration comes
// from an optional JSON or YAML file, HARNESS_* environment variables, and
// command-line flags, in increasing order of precedence. All diagnostics
// go through the logger package to stderr; stdout carries protocol
// responses only.
package cli
