// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package registry

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed specs/*.json
var specFiles embed.FS

// specURIs maps each well-known meta-schema URI to its embedded document.
// Keys match the dialect table exactly: older drafts carry the trailing "#"
// of their canonical $id, the 2019-09 and 2020-12 URIs do not.
var specURIs = map[string]string{
	"https://json-schema.org/draft/2020-12/schema": "specs/draft-2020-12.json",
	"https://json-schema.org/draft/2019-09/schema": "specs/draft-2019-09.json",
	"http://json-schema.org/draft-07/schema#":      "specs/draft-07.json",
	"http://json-schema.org/draft-06/schema#":      "specs/draft-06.json",
	"http://json-schema.org/draft-04/schema#":      "specs/draft-04.json",
	"http://json-schema.org/draft-03/schema#":      "specs/draft-03.json",
}

var (
	specsOnce sync.Once
	specsMap  map[string]any
)

// Specs returns the fixed well-known meta-schema documents keyed by URI.
// These are staged into the cache for every run so the compiling engine can
// resolve references to official meta-schemas without network access.
//
// The returned map is shared; callers must not mutate it.
func Specs() map[string]any {
	specsOnce.Do(func() {
		specsMap = make(map[string]any, len(specURIs))
		for uri, name := range specURIs {
			data, err := specFiles.ReadFile(name)
			if err != nil {
				// Embedded files are part of the binary; a miss here is a
				// packaging bug, not a runtime condition.
				panic(fmt.Sprintf("missing embedded meta-schema %s: %v", name, err))
			}

			var doc any
			if err := json.Unmarshal(data, &doc); err != nil {
				panic(fmt.Sprintf("invalid embedded meta-schema %s: %v", name, err))
			}
			specsMap[uri] = doc
		}
	})
	return specsMap
}
