package main

import (
	"github.com/spf13/cobra"

	"resgatepack/internal/report"
)

// checkCmd validates the project without running the suite or archiving.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the project without running tests or archiving",
	Long: `Runs only the validation steps of the pipeline: working-directory
check, team metadata, map count, and directory structure. Nothing is
executed and nothing is written.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	rep := report.NewConsole(cmd.OutOrStdout(), noColor)
	pipeline, cleanup, err := buildPipeline(rep)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := pipeline.Check(cmd.Context()); err != nil {
		return err
	}
	return nil
}
