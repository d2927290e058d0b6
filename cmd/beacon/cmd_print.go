package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"beacon/internal/config"
	"beacon/internal/display"
	"beacon/internal/format"
)

var printFlags struct {
	configFlags
	output string
}

var printConfigCmd = &cobra.Command{
	Use:   "print-config",
	Short: "Resolve the config and print the execution plan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := printFlags.gatherMode()
		if err != nil {
			return err
		}
		cfg, configDir, err := printFlags.loadConfig()
		if err != nil {
			return err
		}

		resolved, warnings, err := config.Resolve(cfg, config.ResolveOptions{
			GatherMode: mode,
			Flags:      printFlags.overrides(),
			ConfigDir:  configDir,
		})
		if err != nil {
			return err
		}

		printable := display.Printable(resolved)
		switch printFlags.output {
		case "yaml":
			out, err := printable.YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
		case "table", "":
			fmt.Fprint(cmd.OutOrStdout(), printable.Tables(format.ASCII))
		case "markdown":
			fmt.Fprint(cmd.OutOrStdout(), printable.Tables(format.Markdown))
		default:
			return fmt.Errorf("unknown output %q (want yaml, table, or markdown)", printFlags.output)
		}
		for _, w := range warnings.Messages() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	printFlags.register(printConfigCmd.Flags())
	printConfigCmd.Flags().StringVar(&printFlags.output, "output", "table", "output format: yaml, table, or markdown")
}
