package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"beacon/internal/config"
	"beacon/internal/display"
	"beacon/internal/format"
	"beacon/internal/logging"
	"beacon/internal/runner"
)

var runFlags struct {
	configFlags
	headed  bool
	details bool
	timeout time.Duration
}

var runCmd = &cobra.Command{
	Use:   "run <url>",
	Short: "Resolve the config and measure a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		mode, err := runFlags.gatherMode()
		if err != nil {
			return err
		}
		cfg, configDir, err := runFlags.loadConfig()
		if err != nil {
			return err
		}

		log := logging.New("run")
		resolved, warnings, err := config.Resolve(cfg, config.ResolveOptions{
			GatherMode: mode,
			Flags:      runFlags.overrides(),
			ConfigDir:  configDir,
			Logger:     log,
		})
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if runFlags.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, runFlags.timeout)
			defer cancel()
		}

		r := runner.New(runner.Options{Headed: runFlags.headed, Logger: log})
		result, err := r.Run(ctx, mode, url, resolved)
		if err != nil {
			return err
		}

		if runFlags.details {
			fmt.Fprintln(cmd.OutOrStdout(), display.AuditResults(result, format.ASCII))
		}
		fmt.Fprintln(cmd.OutOrStdout(), display.Scores(result, format.ASCII))
		for _, w := range warnings.Messages() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	runFlags.register(runCmd.Flags())
	runCmd.Flags().BoolVar(&runFlags.headed, "headed", false, "run the browser with a visible window")
	runCmd.Flags().BoolVar(&runFlags.details, "details", false, "print per-audit results before the scores")
	runCmd.Flags().DurationVar(&runFlags.timeout, "timeout", 90*time.Second, "overall run timeout")
}
