// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashURI(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{name: "draft-07 meta-schema", uri: "http://json-schema.org/draft-07/schema#"},
		{name: "2020-12 meta-schema", uri: "https://json-schema.org/draft/2020-12/schema"},
		{name: "case registry entry", uri: "https://example.com/nested/schema.json"},
		{name: "empty URI", uri: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HashURI(tt.uri)
			assert.Len(t, h, 16, "hash must be truncated to 16 hex chars")
			assert.Equal(t, h, HashURI(tt.uri), "hash must be deterministic")
		})
	}

	assert.NotEqual(t,
		HashURI("https://example.com/a"),
		HashURI("https://example.com/b"),
		"distinct URIs must not collide on short inputs",
	)
}

func TestCachePut(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "schema-cache"))

	path, err := cache.Put("https://example.com/schema", map[string]any{"type": "string"})
	require.NoError(t, err)
	assert.Equal(t, cache.Path("https://example.com/schema"), path)

	doc, err := cache.Load("https://example.com/schema")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"type": "string"}, doc)
}

func TestCachePutIdempotent(t *testing.T) {
	cache := New(t.TempDir())

	first, err := cache.Put("https://example.com/schema", map[string]any{"type": "integer"})
	require.NoError(t, err)
	second, err := cache.Put("https://example.com/schema", map[string]any{"type": "integer"})
	require.NoError(t, err)

	assert.Equal(t, first, second, "re-writes for the same URI must target the same file")
}

func TestCacheStage(t *testing.T) {
	cache := New(t.TempDir())

	caseRegistry := map[string]any{
		"https://example.com/a": map[string]any{"type": "number"},
		"https://example.com/b": true,
	}

	files, err := cache.Stage(Specs(), caseRegistry, nil)
	require.NoError(t, err)
	assert.Len(t, files, len(Specs())+len(caseRegistry))

	for _, path := range files {
		_, err := os.Stat(path)
		assert.NoError(t, err, "staged file must exist: %s", path)
	}

	require.NoError(t, cache.Remove(files))
	for _, path := range files {
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "removed file must be gone: %s", path)
	}
}

func TestCacheRemoveMissingFile(t *testing.T) {
	cache := New(t.TempDir())
	err := cache.Remove([]string{filepath.Join(cache.Dir(), "deadbeefdeadbeef.json")})
	assert.NoError(t, err, "removing a missing entry is not an error")
}

func TestCacheLoadMissing(t *testing.T) {
	cache := New(t.TempDir())
	_, err := cache.Load("https://example.com/never-staged")
	assert.Error(t, err)
}

func TestSpecs(t *testing.T) {
	specs := Specs()

	require.Len(t, specs, 6)
	for uri, doc := range specs {
		assert.NotNil(t, doc, "meta-schema for %s must decode", uri)
	}

	meta, ok := specs["http://json-schema.org/draft-07/schema#"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", meta["$id"])
}
