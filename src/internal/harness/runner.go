// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package harness implements the line-delimited JSON protocol spoken with
// the test orchestrator: command dispatch, dialect negotiation, registry
// staging, per-case execution with strict error isolation, and response
// assembly. Validation itself is delegated to a compiling engine.
package harness

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/dialect"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/engine"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/helper/platform"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/registry"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/logger"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/version"
	"github.com/google/uuid"
)

// Project links reported in start metadata.
const (
	homepage      = "https://github.com/H0llyW00dzZ/jsonschema-conformance-harness"
	documentation = "https://github.com/H0llyW00dzZ/jsonschema-conformance-harness"
	issues        = "https://github.com/H0llyW00dzZ/jsonschema-conformance-harness/issues"
	source        = "https://github.com/H0llyW00dzZ/jsonschema-conformance-harness.git"
)

// maxLineBytes bounds one request line. Conformance suites ship large
// schemas but nowhere near this.
const maxLineBytes = 32 << 20

var (
	// ErrStopped reports a clean stop command. The process should exit 0
	// without emitting any further output.
	ErrStopped = errors.New("harness stopped")

	// ErrMalformedInput reports an aborted session under the terminate
	// policy. The process should exit nonzero.
	ErrMalformedInput = errors.New("malformed protocol input")
)

// panicError carries a recovered panic and its stack for the diagnostic
// trace in the error envelope.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string { return fmt.Sprintf("panic during case execution: %v", e.value) }

// Runner drives one protocol conversation: it reads one line per
// iteration, dispatches, and emits exactly one response line per handled
// request (stop excepted). Fully synchronous; no new line is read until
// the current response has been written.
type Runner struct {
	cfg   Config
	eng   engine.Engine
	cache *registry.Cache
	log   logger.Logger
	in    io.Reader
	out   io.Writer
}

// New builds a Runner over the given streams. The logger must not write to
// the protocol output stream; use a stderr-backed [logger.StdioLogger].
func New(cfg Config, eng engine.Engine, log logger.Logger, in io.Reader, out io.Writer) *Runner {
	return &Runner{
		cfg:   cfg,
		eng:   eng,
		cache: registry.New(cfg.CacheDir),
		log:   log,
		in:    in,
		out:   out,
	}
}

// Run processes requests until stop, EOF, or an aborted session.
//
// Returns nil on EOF, [ErrStopped] on a stop command, and
// [ErrMalformedInput] when a parse failure hits the terminate policy.
func (r *Runner) Run(ctx context.Context) error {
	sess := NewSession()

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		sess.NextLine()

		req, parseErr := parseRequest(scanner.Bytes())
		if parseErr != nil {
			r.log.Printf("%d: invalid json input (%v)", sess.Line(), parseErr)
			resp := ErrorResponse{
				Errored: true,
				Seq:     r.fallbackSeq(sess),
				Context: map[string]any{
					"message": fmt.Sprintf("%d: invalid json input (%v)", sess.Line(), parseErr),
				},
			}
			if err := r.writeResponse(resp); err != nil {
				return err
			}
			if r.cfg.OnMalformedInput == Terminate {
				return ErrMalformedInput
			}
			continue
		}

		var resp any
		switch ParseCommand(req.Cmd) {
		case CommandStart:
			resp = r.handleStart(sess, req)
		case CommandDialect:
			resp = r.handleDialect(sess, req)
		case CommandRun:
			resp = r.handleRun(ctx, sess, req)
		case CommandStop:
			// The one command that breaks the one-response-per-request
			// rule: nothing is written, the caller exits 0.
			return ErrStopped
		case CommandUnknown:
			resp = ErrorResponse{
				Errored: true,
				Seq:     r.seqOrFallback(req.Seq, sess),
				Context: map[string]any{
					"message": fmt.Sprintf("unexpected command cmd=%s", req.Cmd),
				},
			}
		}

		if err := r.writeResponse(resp); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read protocol input: %w", err)
	}
	return nil
}

// parseRequest decodes one input line, which must be a single JSON object.
func parseRequest(line []byte) (Request, error) {
	var probe any
	if err := json.Unmarshal(line, &probe); err != nil {
		return Request{}, err
	}
	if _, ok := probe.(map[string]any); !ok {
		return Request{}, errors.New("input must be a json object")
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// handleStart answers the handshake with descriptive metadata. It does not
// mutate session state.
func (r *Runner) handleStart(sess *Session, req Request) any {
	if req.Version == nil || *req.Version != 1 {
		got := "none"
		if req.Version != nil {
			got = fmt.Sprintf("%d", *req.Version)
		}
		if r.cfg.StrictProtocol {
			return ErrorResponse{
				Errored: true,
				Seq:     r.seqOrFallback(req.Seq, sess),
				Context: map[string]any{
					"message": fmt.Sprintf("expecting protocol version 1, got %s", got),
				},
			}
		}
		r.log.Printf("tolerating unexpected protocol version %s", got)
	}

	return StartResponse{
		Version: 1,
		Implementation: Implementation{
			Language:        "go",
			LanguageVersion: runtime.Version(),
			Name:            r.eng.Name(),
			Version:         fmt.Sprintf("%s (engine %s)", version.Version, r.eng.Version()),
			Homepage:        homepage,
			Documentation:   documentation,
			Issues:          issues,
			Source:          source,
			Dialects:        dialect.URIs(),
			OS:              platform.Name(),
			OSVersion:       platform.Release(),
		},
	}
}

// handleDialect resolves and stores the session dialect. It reports
// ok:false only when resolution hit the unsupported sentinel; the stored
// state persists until the next dialect command either way.
func (r *Runner) handleDialect(sess *Session, req Request) any {
	if req.Dialect == "" {
		return ErrorResponse{
			Errored: true,
			Seq:     r.seqOrFallback(req.Seq, sess),
			Context: map[string]any{"message": "dialect command expects a dialect"},
		}
	}

	resolved := dialect.Resolve(req.Dialect)
	sess.SetDialect(resolved)
	return DialectResponse{OK: resolved != dialect.Unsupported}
}

// handleRun executes one case. Any failure anywhere in staging,
// compilation or instance checks aborts the whole case and is converted to
// an error envelope here; there is no partial-result reporting.
func (r *Runner) handleRun(ctx context.Context, sess *Session, req Request) any {
	seq := r.seqOrFallback(req.Seq, sess)

	results, err := r.execute(ctx, sess, req.Case)
	if err != nil {
		errCtx := map[string]any{"message": err.Error()}
		var perr *panicError
		if errors.As(err, &perr) {
			errCtx["traceback"] = string(perr.stack)
		}
		return ErrorResponse{Errored: true, Seq: seq, Context: errCtx}
	}

	return RunResponse{Seq: seq, Results: results}
}

// execute stages the registries, compiles the case schema and checks every
// instance in order. Panics are contained here: a failing case must never
// crash the process or corrupt session state.
func (r *Runner) execute(ctx context.Context, sess *Session, tc *TestCase) (results []Result, err error) {
	if tc == nil {
		return nil, errors.New("run command expects a case")
	}

	defer func() {
		if p := recover(); p != nil {
			err = &panicError{value: p, stack: debug.Stack()}
		}
	}()

	files, stageErr := r.cache.Stage(registry.Specs(), tc.Registry)
	if r.cfg.CacheCleanup == CleanupAlways {
		// Runs on every exit path, including panics, so one case's staging
		// never leaks into later invocations.
		defer func() {
			if rmErr := r.cache.Remove(files); rmErr != nil {
				r.log.Printf("cache cleanup failed: %v", rmErr)
			}
		}()
	}
	if stageErr != nil {
		return nil, fmt.Errorf("failed to stage registry: %w", stageErr)
	}

	description := tc.Description
	if description == "" {
		description = r.fallbackDescription(sess)
	}

	checker, err := r.eng.Compile(ctx, engine.CompileRequest{
		Schema:      tc.Schema,
		Description: description,
		Cache:       r.cache,
		Registries:  []map[string]any{registry.Specs(), tc.Registry},
		Dialect:     sess.Dialect(),
	})
	if err != nil {
		return nil, err
	}

	results = make([]Result, 0, len(tc.Tests))
	for i, test := range tc.Tests {
		valid, checkErr := checker(test.Instance)
		if checkErr != nil {
			return nil, fmt.Errorf("test %d: %w", i, checkErr)
		}
		results = append(results, Result{Valid: valid})
	}
	return results, nil
}

// seqOrFallback echoes the request's seq verbatim, substituting the
// configured deterministic fallback only when the request carried none.
func (r *Runner) seqOrFallback(seq json.RawMessage, sess *Session) json.RawMessage {
	if len(seq) > 0 {
		return seq
	}
	return r.fallbackSeq(sess)
}

func (r *Runner) fallbackSeq(sess *Session) json.RawMessage {
	var fallback string
	switch r.cfg.SeqFallback {
	case SeqFallbackSynthetic:
		fallback = uuid.NewString()
	default:
		fallback = fmt.Sprintf("line-%d", sess.Line())
	}
	data, _ := json.Marshal(fallback)
	return data
}

func (r *Runner) fallbackDescription(sess *Session) string {
	if r.cfg.SeqFallback == SeqFallbackSynthetic {
		return "case " + uuid.NewString()
	}
	return fmt.Sprintf("case at line %d", sess.Line())
}

// writeResponse emits one response line in a single Write, assembled in a
// pooled buffer.
func (r *Runner) writeResponse(resp any) error {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	if _, err := r.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
