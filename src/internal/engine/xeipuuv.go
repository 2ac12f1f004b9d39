// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package engine

import (
	"context"
	"fmt"

	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/dialect"
	"github.com/xeipuuv/gojsonschema"
)

// Xeipuuv is the alternate compiling engine, backed by xeipuuv/gojsonschema.
// It supports drafts 4, 6 and 7; for the self-describing dialects it relies
// on the library's $schema auto-detection. References are preloaded from the
// staged registries rather than loaded lazily, since the library resolves
// remote references over HTTP otherwise.
type Xeipuuv struct{}

// NewXeipuuv returns the xeipuuv/gojsonschema engine.
func NewXeipuuv() *Xeipuuv { return &Xeipuuv{} }

// Name identifies the engine in start metadata.
func (e *Xeipuuv) Name() string { return "xeipuuv-gojsonschema" }

// Version reports the engine's module version from build info.
func (e *Xeipuuv) Version() string {
	return moduleVersion("github.com/xeipuuv/gojsonschema")
}

// Compile builds a checker for one case schema.
func (e *Xeipuuv) Compile(ctx context.Context, req CompileRequest) (Checker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sl := gojsonschema.NewSchemaLoader()

	switch req.Dialect {
	case dialect.Unspecified:
		sl.Draft = gojsonschema.Hybrid
		sl.AutoDetect = true
	case dialect.Draft4:
		sl.Draft = gojsonschema.Draft4
	case dialect.Draft6:
		sl.Draft = gojsonschema.Draft6
	case dialect.Draft7:
		sl.Draft = gojsonschema.Draft7
	case dialect.Draft3, dialect.Draft2019, dialect.Draft2020:
		return nil, fmt.Errorf("%s: dialect %s is not implemented", e.Name(), req.Dialect)
	default:
		return nil, fmt.Errorf("%s: cannot compile %q under an unsupported dialect", e.Name(), req.Description)
	}

	for _, reg := range req.Registries {
		for uri, doc := range reg {
			// The library ships the official meta-schemas; preloading them
			// would have it chase their meta/* references.
			if _, known := dialect.Ordinal(uri); known {
				continue
			}
			if err := sl.AddSchema(uri, gojsonschema.NewGoLoader(doc)); err != nil {
				return nil, fmt.Errorf("failed to preload registry entry %s: %w", uri, err)
			}
		}
	}

	sch, err := sl.Compile(gojsonschema.NewGoLoader(req.Schema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile case schema %q: %w", req.Description, err)
	}

	return func(instance any) (bool, error) {
		result, err := sch.Validate(gojsonschema.NewGoLoader(instance))
		if err != nil {
			return false, fmt.Errorf("instance check failed for case %q: %w", req.Description, err)
		}
		return result.Valid(), nil
	}, nil
}
