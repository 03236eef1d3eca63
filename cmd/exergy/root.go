// exergy compares seasonal heat-storage technologies under one physically
// consistent exergy accounting rule. It loads scenario and chain
// definitions, runs the deterministic simulation engine, and exports the
// resulting time series; it refuses, loudly and precisely, instead of
// computing anything physically invalid.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"exergy/internal/display"
	"exergy/internal/logging"
	"exergy/pkg/engine"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "exergy",
	Short: "Exergy accounting for seasonal heat-storage comparison",
	Long: "Exergy computes the available-work content of heat delivered across a\n" +
		"district-heating boundary, so seasonal storage technologies can be\n" +
		"compared under one physically consistent accounting rule.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return logging.Init(rootFlags.logLevel, rootFlags.logFormat)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if r, ok := engine.AsRefusal(err); ok {
			fmt.Fprintln(os.Stderr, display.Refusal(r))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
