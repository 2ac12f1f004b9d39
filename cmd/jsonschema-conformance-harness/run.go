// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/cli"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/logger"
	verpkg "github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/version"
)

var version string // set by ldflags or defaults to imported version

func init() {
	if version == "" {
		version = verpkg.Version
	}
}

func main() {
	// Stdout carries protocol responses, so all logging goes to stderr.
	log := logger.NewStdioLogger(os.Stderr, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling using signal.NotifyContext for cleaner cancellation
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Channel to signal completion
	done := make(chan error, 1)

	// Run the CLI in a separate goroutine
	go func() {
		done <- cli.Execute(ctx, version, log)
	}()

	// Wait for either completion or context cancellation
	select {
	case err := <-done:
		if err != nil {
			log.Printf("harness session failed: %v", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Println("Session cancelled by signal. Exiting...")
		// Give the serve loop a moment to finish its current response
		select {
		case <-done:
			// Serve loop finished cleaning up
		case <-time.After(100 * time.Millisecond):
			// Timeout waiting for cleanup
		}
		os.Exit(130) // Standard exit code for SIGINT
	}
}
