// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package engine defines the schema-compiling engine consumed by the
// harness and provides two real implementations.
//
// An engine turns one schema document into an executable checker. The
// harness never implements JSON Schema semantics itself; any
// standards-conformant engine can be substituted behind the [Engine]
// interface without touching the protocol code.
package engine

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/dialect"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/registry"
)

// Checker decides validity of a single JSON instance against the schema it
// was compiled from. It may fail, and a failure aborts the whole case.
type Checker func(instance any) (bool, error)

// CompileRequest carries everything an engine needs to compile one case
// schema.
type CompileRequest struct {
	// Schema is the case's schema document, as decoded JSON.
	Schema any

	// Description names the case for diagnostics.
	Description string

	// Cache is the staged on-disk registry; engines resolving references
	// by location look entries up here by URI hash.
	Cache *registry.Cache

	// Registries holds the staged registry documents keyed by URI, for
	// engines that preload references instead of loading them lazily.
	Registries []map[string]any

	// Dialect is the session-negotiated ordinal, or [dialect.Unspecified]
	// when the engine must honor each schema's own $schema declaration.
	Dialect dialect.Version
}

// Engine compiles schema documents into checkers.
type Engine interface {
	// Name identifies the engine in start metadata and logs.
	Name() string
	// Version reports the engine's module version.
	Version() string
	// Compile turns the request's schema into a Checker, or fails.
	Compile(ctx context.Context, req CompileRequest) (Checker, error)
}

// Engine registry names accepted by New.
const (
	NameSanthosh = "santhosh"
	NameXeipuuv  = "xeipuuv"
)

// New returns the engine registered under name. The empty name selects the
// default engine (santhosh).
func New(name string) (Engine, error) {
	switch name {
	case "", NameSanthosh:
		return NewSanthosh(), nil
	case NameXeipuuv:
		return NewXeipuuv(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (supported: %s, %s)", name, NameSanthosh, NameXeipuuv)
	}
}

// moduleVersion looks up a dependency's version from the build info
// embedded in the binary. Used only for descriptive start metadata.
func moduleVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			return dep.Version
		}
	}
	return "unknown"
}
