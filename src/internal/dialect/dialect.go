// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package dialect maps JSON Schema dialect URIs to internal ordinal versions.
//
// A dialect is a named, versioned set of JSON Schema keyword semantics,
// identified by its meta-schema URI. The harness negotiates one dialect per
// session with the test orchestrator; the ordinal is what the compiling
// engine consumes.
package dialect

import "sort"

// Version is the internal ordinal for a JSON Schema dialect.
// Larger values correspond to newer drafts.
type Version int

const (
	// Unspecified signals that the compiling engine must infer the dialect
	// from the schema's own $schema declaration rather than from the
	// session-negotiated default.
	Unspecified Version = -1

	// Unsupported is the resolution result for an unknown dialect URI.
	Unsupported Version = 0

	// Draft3 through Draft2020 are the ordinals for the supported drafts.
	Draft3    Version = 3
	Draft4    Version = 4
	Draft6    Version = 6
	Draft7    Version = 7
	Draft2019 Version = 8
	Draft2020 Version = 9
)

// SelfDescribing is the ordinal threshold at or above which a negotiated
// dialect resolves to [Unspecified]: for the two most recent drafts the
// engine must honor each schema's self-declared dialect instead of a
// session default.
const SelfDescribing = Draft2019

// versions is the fixed dialect table. Exactly six known entries.
var versions = map[string]Version{
	"https://json-schema.org/draft/2020-12/schema": Draft2020,
	"https://json-schema.org/draft/2019-09/schema": Draft2019,
	"http://json-schema.org/draft-07/schema#":      Draft7,
	"http://json-schema.org/draft-06/schema#":      Draft6,
	"http://json-schema.org/draft-04/schema#":      Draft4,
	"http://json-schema.org/draft-03/schema#":      Draft3,
}

// Resolve maps a dialect URI to its internal ordinal.
//
// Unknown URIs resolve to [Unsupported]. URIs whose table ordinal is at or
// above [SelfDescribing] resolve to [Unspecified], deferring dialect choice
// to each schema's own $schema declaration.
func Resolve(uri string) Version {
	v, ok := versions[uri]
	if !ok {
		return Unsupported
	}
	if v >= SelfDescribing {
		return Unspecified
	}
	return v
}

// Ordinal returns the table ordinal for a dialect URI without the
// self-describing override, and whether the URI is known at all.
func Ordinal(uri string) (Version, bool) {
	v, ok := versions[uri]
	return v, ok
}

// URIs returns the sorted list of all supported dialect URIs.
// The order is plain byte order, matching what the orchestrator expects
// in start metadata.
func URIs() []string {
	uris := make([]string, 0, len(versions))
	for uri := range versions {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// Known reports whether v is a concrete table ordinal, as opposed to one of
// the [Unsupported] or [Unspecified] sentinels.
func (v Version) Known() bool { return v > Unsupported }

// String returns a short human-readable name for the version, used in logs
// and in the dialects table subcommand.
func (v Version) String() string {
	switch v {
	case Unspecified:
		return "unspecified"
	case Unsupported:
		return "unsupported"
	case Draft3:
		return "draft-03"
	case Draft4:
		return "draft-04"
	case Draft6:
		return "draft-06"
	case Draft7:
		return "draft-07"
	case Draft2019:
		return "draft 2019-09"
	case Draft2020:
		return "draft 2020-12"
	default:
		return "unknown"
	}
}
