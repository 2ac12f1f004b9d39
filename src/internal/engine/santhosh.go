// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/dialect"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/registry"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// caseSchemaURL is the retrieval URI the case schema is registered under.
// The .invalid TLD is reserved, so it can never clash with a registry entry.
const caseSchemaURL = "https://harness.invalid/case-schema.json"

// Santhosh is the default compiling engine, backed by
// santhosh-tekuri/jsonschema/v6. It supports drafts 4, 6, 7, 2019-09 and
// 2020-12 and resolves references out of the staged cache by URI hash.
type Santhosh struct{}

// NewSanthosh returns the santhosh-tekuri/jsonschema engine.
func NewSanthosh() *Santhosh { return &Santhosh{} }

// Name identifies the engine in start metadata.
func (e *Santhosh) Name() string { return "santhosh-tekuri-jsonschema" }

// Version reports the engine's module version from build info.
func (e *Santhosh) Version() string {
	return moduleVersion("github.com/santhosh-tekuri/jsonschema/v6")
}

// cacheLoader resolves any schema URL to its staged cache entry. This makes
// reference resolution location-based: the compiler never touches the
// network.
type cacheLoader struct {
	cache *registry.Cache
}

// Load implements jsonschema.URLLoader over the hash-derived cache layout.
func (l *cacheLoader) Load(url string) (any, error) {
	data, err := os.ReadFile(l.cache.Path(url))
	if err != nil {
		return nil, fmt.Errorf("no staged schema for %s: %w", url, err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}

// Compile builds a checker for one case schema.
func (e *Santhosh) Compile(ctx context.Context, req CompileRequest) (Checker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := jsonschema.NewCompiler()
	c.UseLoader(&cacheLoader{cache: req.Cache})

	switch req.Dialect {
	case dialect.Unspecified:
		// Each schema declares its own dialect via $schema; leave the
		// compiler's default in place for schemas that omit it.
	case dialect.Draft4:
		c.DefaultDraft(jsonschema.Draft4)
	case dialect.Draft6:
		c.DefaultDraft(jsonschema.Draft6)
	case dialect.Draft7:
		c.DefaultDraft(jsonschema.Draft7)
	case dialect.Draft2019:
		c.DefaultDraft(jsonschema.Draft2019)
	case dialect.Draft2020:
		c.DefaultDraft(jsonschema.Draft2020)
	case dialect.Draft3:
		return nil, fmt.Errorf("%s: dialect %s is not implemented", e.Name(), req.Dialect)
	default:
		return nil, fmt.Errorf("%s: cannot compile %q under an unsupported dialect", e.Name(), req.Description)
	}

	if err := c.AddResource(caseSchemaURL, req.Schema); err != nil {
		return nil, fmt.Errorf("failed to register case schema %q: %w", req.Description, err)
	}

	sch, err := c.Compile(caseSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile case schema %q: %w", req.Description, err)
	}

	return func(instance any) (bool, error) {
		err := sch.Validate(instance)
		if err == nil {
			return true, nil
		}
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return false, nil
		}
		return false, fmt.Errorf("instance check failed for case %q: %w", req.Description, err)
	}, nil
}
