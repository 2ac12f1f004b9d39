// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package harness

import "github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/dialect"

// Session is the mutable state held across one protocol conversation: the
// negotiated dialect and the 1-based input line counter.
//
// Sessions are explicit values threaded through every handler call rather
// than process globals, so test suites can run isolated conversations in
// parallel.
type Session struct {
	dialect    dialect.Version
	dialectSet bool
	line       int
}

// NewSession returns a fresh session with no dialect negotiated yet.
func NewSession() *Session { return &Session{} }

// Dialect returns the session dialect for compilation purposes. Before any
// dialect command it is [dialect.Unspecified]: the engine infers each
// schema's dialect from its own $schema declaration.
func (s *Session) Dialect() dialect.Version {
	if !s.dialectSet {
		return dialect.Unspecified
	}
	return s.dialect
}

// SetDialect overwrites the session dialect. It persists until the next
// dialect command; run failures never touch it.
func (s *Session) SetDialect(v dialect.Version) {
	s.dialect = v
	s.dialectSet = true
}

// NextLine advances and returns the 1-based input line counter.
func (s *Session) NextLine() int {
	s.line++
	return s.line
}

// Line returns the current 1-based input line number.
func (s *Session) Line() int { return s.line }
