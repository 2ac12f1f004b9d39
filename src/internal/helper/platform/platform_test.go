// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, runtime.GOOS, Name())
}

func TestRelease(t *testing.T) {
	release := Release()
	assert.NotEmpty(t, release, "release is never empty; unknown hosts report \"unknown\"")
	assert.NotContains(t, release, "\n", "release must be a single trimmed token")
}
