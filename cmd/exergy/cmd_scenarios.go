package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exergy/internal/config"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the embedded scenarios and chains",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Scenarios:")
		for _, name := range config.ListScenarios() {
			fmt.Fprintf(out, "  %s\n", name)
		}
		fmt.Fprintln(out, "Chains:")
		for _, name := range config.ListChains() {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	},
}
