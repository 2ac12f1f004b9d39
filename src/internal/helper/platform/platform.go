// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package platform provides host operating system introspection for the
// descriptive metadata in start responses. Nothing here affects validation
// outcomes.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// Name returns the host operating system name.
func Name() string { return runtime.GOOS }

// Release returns the host kernel release string where the platform exposes
// one, or "unknown". Linux is the primary deployment target (the harness
// runs inside orchestrator containers); other platforms fall through.
func Release() string {
	if data, err := os.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
		if release := strings.TrimSpace(string(data)); release != "" {
			return release
		}
	}
	return "unknown"
}
