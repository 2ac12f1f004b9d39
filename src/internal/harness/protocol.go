// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package harness

import "encoding/json"

// Command enumerates the protocol commands. The zero value is CommandRun:
// a request without a cmd field defaults to running its case.
type Command int

const (
	// CommandRun executes one case and its tests.
	CommandRun Command = iota
	// CommandStart performs the protocol handshake and reports metadata.
	CommandStart
	// CommandDialect negotiates the session dialect.
	CommandDialect
	// CommandStop terminates the harness.
	CommandStop
	// CommandUnknown is the explicit fallback for unrecognized commands.
	// It yields a non-fatal error response, never a crash.
	CommandUnknown
)

// ParseCommand maps the wire cmd field to a Command. The empty string
// defaults to CommandRun.
func ParseCommand(cmd string) Command {
	switch cmd {
	case "", "run":
		return CommandRun
	case "start":
		return CommandStart
	case "dialect":
		return CommandDialect
	case "stop":
		return CommandStop
	default:
		return CommandUnknown
	}
}

// String returns the wire name of the command.
func (c Command) String() string {
	switch c {
	case CommandRun:
		return "run"
	case CommandStart:
		return "start"
	case CommandDialect:
		return "dialect"
	case CommandStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Request is one decoded protocol request line.
type Request struct {
	// Cmd selects the handler; absent means run.
	Cmd string `json:"cmd"`
	// Version is the protocol version carried by start requests.
	Version *int `json:"version,omitempty"`
	// Dialect is the dialect URI carried by dialect requests.
	Dialect string `json:"dialect,omitempty"`
	// Seq is the orchestrator's correlation identifier, echoed back
	// verbatim. Any JSON value.
	Seq json.RawMessage `json:"seq,omitempty"`
	// Case is the test case carried by run requests.
	Case *TestCase `json:"case,omitempty"`
}

// TestCase is one schema plus an ordered set of test instances.
type TestCase struct {
	// Description names the case; a line-derived placeholder is used when
	// absent.
	Description string `json:"description,omitempty"`
	// Schema is the schema document, an arbitrary JSON value.
	Schema any `json:"schema"`
	// Registry maps URIs to schema documents referenced by the case.
	Registry map[string]any `json:"registry,omitempty"`
	// Tests are evaluated in order; results preserve this order.
	Tests []Test `json:"tests"`
}

// Test is a single instance to check against the case schema.
type Test struct {
	Instance any `json:"instance"`
}

// Result is the verdict for one test instance.
type Result struct {
	Valid bool `json:"valid"`
}

// RunResponse is the success envelope for a run request.
type RunResponse struct {
	Seq     json.RawMessage `json:"seq"`
	Results []Result        `json:"results"`
}

// DialectResponse acknowledges a dialect request.
type DialectResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse is the envelope for transport, protocol and execution
// errors. Seq carries the originating request's correlation identifier or a
// deterministic fallback so the orchestrator can match failures to requests.
type ErrorResponse struct {
	Errored bool            `json:"errored"`
	Seq     json.RawMessage `json:"seq"`
	Context map[string]any  `json:"context"`
}

// StartResponse answers the protocol handshake.
type StartResponse struct {
	Version        int            `json:"version"`
	Implementation Implementation `json:"implementation"`
}

// Implementation is the descriptive metadata block of a start response.
// Pure fixed data plus collaborator introspection; nothing here affects
// validation outcomes.
type Implementation struct {
	Language        string   `json:"language"`
	LanguageVersion string   `json:"language_version"`
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	Homepage        string   `json:"homepage"`
	Documentation   string   `json:"documentation"`
	Issues          string   `json:"issues"`
	Source          string   `json:"source"`
	Dialects        []string `json:"dialects"`
	OS              string   `json:"os"`
	OSVersion       string   `json:"os_version"`
}
