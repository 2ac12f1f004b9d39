// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package registry persists schema documents to stable, hash-derived cache
// locations so a compiling engine can resolve schema references by
// identifier lookup instead of fetching them over the network.
//
// Cache filenames are a deterministic function of the registry URI alone:
// the first 16 hex characters of the SHA3-256 digest of the URI, with a
// ".json" suffix. Repeated writes for the same URI are idempotent.
package registry

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/sha3"
)

// hashLen is the number of hex characters kept from the URI digest.
const hashLen = 16

// Cache is an on-disk schema document cache rooted at a single directory.
//
// The cache is shared across all run commands of a session. No locking is
// needed: execution is strictly synchronous, and the hash-derived filenames
// make repeated writes for the same URI idempotent anyway.
type Cache struct {
	dir string
}

// New returns a Cache rooted at dir. The directory is created lazily on the
// first Put.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string { return c.dir }

// HashURI returns the truncated SHA3-256 digest used as the cache key for
// a registry URI.
func HashURI(uri string) string {
	sum := sha3.Sum256([]byte(uri))
	return hex.EncodeToString(sum[:])[:hashLen]
}

// Path returns the cache file path a URI maps to, whether or not the entry
// exists yet.
func (c *Cache) Path(uri string) string {
	return filepath.Join(c.dir, HashURI(uri)+".json")
}

// Put writes one schema document to its hash-derived cache location and
// returns the created file path.
func (c *Cache) Put(uri string, doc any) (string, error) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache directory %s: %w", c.dir, err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode schema document for %s: %w", uri, err)
	}

	path := c.Path(uri)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cache entry for %s: %w", uri, err)
	}
	return path, nil
}

// Stage writes every entry of the given registries to the cache and returns
// the list of file paths created, in write order. Registries may be nil.
//
// On failure the paths written so far are still returned so the caller can
// remove them; a partially staged cache must never leak into later runs.
func (c *Cache) Stage(registries ...map[string]any) ([]string, error) {
	var files []string
	for _, reg := range registries {
		for uri, doc := range reg {
			path, err := c.Put(uri, doc)
			if err != nil {
				return files, err
			}
			files = append(files, path)
		}
	}
	return files, nil
}

// Remove deletes the given cache files, continuing past individual
// failures. Missing files are not an error: two URIs hashing from the same
// staged registry set may share an entry with a later run.
func (c *Cache) Remove(files []string) error {
	var errs []error
	for _, path := range files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("failed to remove cache entry %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// Load reads a cached schema document back by URI.
func (c *Cache) Load(uri string) (any, error) {
	data, err := os.ReadFile(c.Path(uri))
	if err != nil {
		return nil, fmt.Errorf("no cache entry for %s: %w", uri, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt cache entry for %s: %w", uri, err)
	}
	return doc, nil
}
