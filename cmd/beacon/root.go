// beacon is the main CLI: resolve a measurement config and run it against
// a page, or print the resolved plan.
//
// Usage:
//
//	beacon run <url> [--config=<path>] [--mode=<navigation|timespan|snapshot>] [flags]
//	beacon print-config [--config=<path>] [--mode=<mode>] [--output=<yaml|table>]
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"beacon/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "beacon",
	Short: "Page measurement with declarative, overridable configuration",
	Long: "Beacon gathers artifacts from a web page under a chosen lifecycle\n" +
		"(navigation, timespan, snapshot) and scores it via a configurable\n" +
		"graph of audits grouped into weighted categories.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logging.Init(level, "text")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(printConfigCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
