package main

import (
	"github.com/spf13/cobra"

	"resgatepack/internal/config"
	"resgatepack/internal/ledger"
	"resgatepack/internal/report"
)

var historyLimit int

// historyCmd lists recent packaging runs from the local ledger.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent packaging runs",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	rep := report.NewConsole(cmd.OutOrStdout(), noColor)

	led, err := ledger.Open(config.StateDir(workspace))
	if err != nil {
		return err
	}
	defer led.Close()

	runs, err := led.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		rep.Info("no packaging runs recorded yet")
		return nil
	}

	for _, run := range runs {
		tests := "passed"
		if !run.TestsPassed {
			tests = "failed"
		}
		rep.Plain("%s  id=%s  maps=%d  tests=%s  %s (%.2f MB)",
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			run.TeamID,
			run.MapCount,
			tests,
			run.ArchivePath,
			float64(run.ArchiveBytes)/1024/1024)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of runs to show")
}
