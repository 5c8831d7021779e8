// Command resgatepack validates a Resgate Robot course project and packages
// it for submission.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"resgatepack/internal/archive"
	"resgatepack/internal/config"
	"resgatepack/internal/execx"
	"resgatepack/internal/ledger"
	"resgatepack/internal/report"
	"resgatepack/internal/submit"
	"resgatepack/internal/testrunner"
)

var (
	// Global flags
	verbose   bool
	workspace string
	noColor   bool

	// Logger
	logger *zap.Logger
)

// rootCmd runs the full packaging pipeline when invoked without arguments.
var rootCmd = &cobra.Command{
	Use:   "resgatepack",
	Short: "Validate and package a Resgate Robot submission",
	Long: `resgatepack validates a Resgate Robot course project and produces the
submission archive.

Run it without arguments from the project root to execute the full
pipeline: working-directory check, team metadata, map set, test suite,
directory structure, archival, and a final report. Any failed step aborts
the run with exit code 1.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if workspace == "" {
			workspace, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to resolve working directory: %w", err)
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runPackage,
}

func runPackage(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep := report.NewConsole(cmd.OutOrStdout(), noColor)
	pipeline, cleanup, err := buildPipeline(rep)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := pipeline.Run(ctx); err != nil {
		return err
	}
	return nil
}

// buildPipeline assembles the production pipeline for the workspace. The
// returned cleanup closes the history ledger when one was opened.
func buildPipeline(rep report.Reporter) (*submit.Pipeline, func(), error) {
	manifest, err := config.Load(workspace)
	if err != nil {
		return nil, nil, err
	}

	runner := execx.NewLocal(logger)
	pipeline := &submit.Pipeline{
		Workspace: workspace,
		Manifest:  manifest,
		Reporter:  rep,
		Gate:      testrunner.NewPytest(runner, workspace, manifest.TestsDir, logger),
		Builders:  []archive.Builder{archive.ZipBuilder{}, archive.TarGzBuilder{}},
		Log:       logger,
	}

	cleanup := func() {}
	if manifest.History {
		led, err := ledger.Open(config.StateDir(workspace))
		if err != nil {
			// The ledger is optional; a broken one must not block a
			// submission.
			rep.Warn("run history disabled: %v", err)
		} else {
			pipeline.History = led
			cleanup = func() { _ = led.Close() }
		}
	}
	return pipeline, cleanup, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&workspace, "workspace", "", "project root (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
