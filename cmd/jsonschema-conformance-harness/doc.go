// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// jsonschema-conformance-harness is a command-line JSON Schema validation
// harness. It reads one JSON request per line on stdin and writes exactly
// one JSON response per request on stdout.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/jsonschema-conformance-harness/cmd/jsonschema-conformance-harness@latest
//
// # Usage
//
//	jsonschema-conformance-harness [FLAGS]
//	jsonschema-conformance-harness dialects
//
// # Flags
//
//	-c, --config               Config file, JSON or YAML (default: $HARNESS_CONFIG_FILE)
//	-e, --engine               Compiling engine: santhosh or xeipuuv
//	    --cache-dir            Directory for staged registry documents
//	    --on-malformed-input   reportAndContinue or terminate
//	    --cache-cleanup        Staged-entry lifecycle: always or never
//	    --seq-fallback         Correlation fallback for seq-less requests: line or synthetic
//	    --strict-protocol      Reject start requests with a protocol version other than 1
//
// # Protocol
//
// Requests are single-line JSON objects selected by their cmd field:
//
//	{"cmd":"start","version":1}
//	{"cmd":"dialect","dialect":"http://json-schema.org/draft-07/schema#"}
//	{"cmd":"run","seq":1,"case":{"schema":{"type":"integer"},"tests":[{"instance":12}]}}
//	{"cmd":"stop"}
//
// A request without a cmd field is treated as a run. Stop produces no
// output and exits 0.
//
// # Examples
//
// Check one case against the draft-07 dialect:
//
//	printf '%s\n%s\n' \
//	  '{"cmd":"dialect","dialect":"http://json-schema.org/draft-07/schema#"}' \
//	  '{"cmd":"run","seq":1,"case":{"schema":{"type":"integer"},"tests":[{"instance":12}]}}' \
//	  | jsonschema-conformance-harness
//
// List the supported dialects:
//
//	jsonschema-conformance-harness dialects
package main
