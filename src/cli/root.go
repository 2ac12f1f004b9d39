// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/engine"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/harness"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/internal/helper/posix"
	"github.com/H0llyW00dzZ/jsonschema-conformance-harness/src/logger"
	"github.com/spf13/cobra"
)

// cliFlags holds the root command's flag values for one Execute call.
type cliFlags struct {
	configFile       string
	engineName       string
	cacheDir         string
	onMalformedInput string
	cacheCleanup     string
	seqFallback      string
	strictProtocol   bool
}

// Execute runs the root command over the process's standard streams.
//
// The harness speaks its protocol on stdin/stdout, so all logging goes to
// stderr. A clean stop command or EOF returns nil; an aborted session under
// the terminate policy returns [harness.ErrMalformedInput].
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := newRootCommand(version, log)
	rootCmd.SetIn(os.Stdin)
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	return rootCmd.ExecuteContext(ctx)
}

// newRootCommand builds the command tree. The protocol streams are taken
// from the command itself so tests can substitute buffers.
func newRootCommand(version string, log logger.Logger) *cobra.Command {
	flags := &cliFlags{}

	rootCmd := &cobra.Command{
		Use:   posix.GetExecutableName(),
		Short: "JSON Schema conformance test harness",
		Long: "Speaks a line-delimited JSON protocol on stdin/stdout: the orchestrator\n" +
			"sends start, dialect, run and stop commands, and receives exactly one\n" +
			"response line per request.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, flags, log)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file (JSON or YAML; default: $HARNESS_CONFIG_FILE)")
	rootCmd.Flags().StringVarP(&flags.engineName, "engine", "e", "", "compiling engine: santhosh or xeipuuv")
	rootCmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "directory for staged registry documents")
	rootCmd.Flags().StringVar(&flags.onMalformedInput, "on-malformed-input", "", "policy for unparseable lines: reportAndContinue or terminate")
	rootCmd.Flags().StringVar(&flags.cacheCleanup, "cache-cleanup", "", "staged-entry lifecycle: always or never")
	rootCmd.Flags().StringVar(&flags.seqFallback, "seq-fallback", "", "correlation fallback for seq-less requests: line or synthetic")
	rootCmd.Flags().BoolVar(&flags.strictProtocol, "strict-protocol", true, "reject start requests with a protocol version other than 1")

	rootCmd.AddCommand(newDialectsCommand())

	return rootCmd
}

// loadConfig resolves the effective configuration for a command: file and
// environment first, then explicitly set flags on top.
func loadConfig(cmd *cobra.Command, flags *cliFlags) (harness.Config, error) {
	cfg, err := harness.LoadConfig(flags.configFile)
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("engine") {
		cfg.Engine = flags.engineName
	}
	if cmd.Flags().Changed("cache-dir") {
		cfg.CacheDir = flags.cacheDir
	}
	if cmd.Flags().Changed("on-malformed-input") {
		cfg.OnMalformedInput = harness.MalformedInputPolicy(flags.onMalformedInput)
	}
	if cmd.Flags().Changed("cache-cleanup") {
		cfg.CacheCleanup = harness.CleanupPolicy(flags.cacheCleanup)
	}
	if cmd.Flags().Changed("seq-fallback") {
		cfg.SeqFallback = harness.SeqFallback(flags.seqFallback)
	}
	if cmd.Flags().Changed("strict-protocol") {
		cfg.StrictProtocol = flags.strictProtocol
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// serve runs the protocol loop until stop, EOF or an aborted session.
func serve(cmd *cobra.Command, flags *cliFlags, log logger.Logger) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg.Engine)
	if err != nil {
		return fmt.Errorf("failed to select engine: %w", err)
	}

	runner := harness.New(cfg, eng, log, cmd.InOrStdin(), cmd.OutOrStdout())
	if err := runner.Run(cmd.Context()); err != nil {
		if errors.Is(err, harness.ErrStopped) {
			// A stop command is the protocol's clean shutdown.
			return nil
		}
		return err
	}
	return nil
}
