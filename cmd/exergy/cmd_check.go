package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"exergy/internal/config"
)

var checkFlags struct {
	scenario string
	chain    string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a scenario and chain without simulating",
	Long: `Check constructs the scenario and finalizes the chain against it,
running every construction-time guardrail. It prints nothing but the
verdict; a refusal names the violated rule and the offending field.`,
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkFlags.scenario, "scenario", "", "Scenario name or YAML path (required)")
	f.StringVar(&checkFlags.chain, "chain", "", "Chain name or YAML path (required)")
	_ = checkCmd.MarkFlagRequired("scenario")
	_ = checkCmd.MarkFlagRequired("chain")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	scDef, err := config.LoadScenarioDef(checkFlags.scenario)
	if err != nil {
		return err
	}
	sc, err := config.BuildScenario(scDef)
	if err != nil {
		return err
	}
	chDef, err := config.LoadChainDef(checkFlags.chain)
	if err != nil {
		return err
	}
	chain, err := config.BuildChain(chDef, sc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: scenario %q and chain %q (%d stages) pass all guardrails\n",
		sc.Name(), chain.Name(), chain.Len())
	return nil
}
