package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"exergy/internal/config"
	"exergy/internal/export"
	"exergy/internal/logging"
	"exergy/internal/report"
	"exergy/pkg/engine"
)

var runFlags struct {
	scenario string
	chain    string
	steps    int
	stepH    float64
	out      string
	markdown bool
	verbose  bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one chain and export its exergy time series",
	Long: `Run steps a stage chain over the time axis under the given scenario,
writes the full time series as CSV, and prints the system exergy balance.`,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.scenario, "scenario", "", "Scenario name or YAML path (required)")
	f.StringVar(&runFlags.chain, "chain", "", "Chain name or YAML path (required)")
	f.IntVar(&runFlags.steps, "steps", 24, "Number of simulation steps")
	f.Float64Var(&runFlags.stepH, "dt", 1.0, "Step size in hours")
	f.StringVarP(&runFlags.out, "out", "o", "", "Time series CSV output path (default: summary only)")
	f.BoolVar(&runFlags.markdown, "markdown", false, "Render the summary as Markdown instead of ASCII")
	f.BoolVar(&runFlags.verbose, "observe", false, "Log every run event")
	_ = runCmd.MarkFlagRequired("scenario")
	_ = runCmd.MarkFlagRequired("chain")
}

func runRun(cmd *cobra.Command, _ []string) error {
	res, err := executeRun(cmd.Context(), runFlags.scenario, runFlags.chain,
		runFlags.steps, runFlags.stepH, runFlags.verbose)
	if err != nil {
		return err
	}

	if runFlags.out != "" {
		f, err := os.Create(runFlags.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", runFlags.out, err)
		}
		defer f.Close()
		if err := export.WriteCSV(f, res.Records); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	mode := report.ASCII
	if runFlags.markdown {
		mode = report.Markdown
	}
	fmt.Fprint(cmd.OutOrStdout(), report.Summary(res, mode))
	return nil
}

// executeRun loads definitions, materializes scenario and chain, and runs
// the simulation. Shared between run and compare.
func executeRun(ctx context.Context, scenarioName, chainName string, steps int, stepH float64, observe bool) (*engine.RunResult, error) {
	scDef, err := config.LoadScenarioDef(scenarioName)
	if err != nil {
		return nil, err
	}
	sc, err := config.BuildScenario(scDef)
	if err != nil {
		return nil, err
	}
	chDef, err := config.LoadChainDef(chainName)
	if err != nil {
		return nil, err
	}
	chain, err := config.BuildChain(chDef, sc)
	if err != nil {
		return nil, err
	}

	axis, err := engine.NewAxis(stepH, steps)
	if err != nil {
		return nil, err
	}
	feed, err := sc.Aux("charge_energy")
	if err != nil {
		return nil, err
	}

	opts := []engine.RunOption{}
	if observe {
		opts = append(opts, engine.WithObserver(&engine.LogObserver{Logger: logging.New("sim")}))
	}
	return engine.Run(ctx, sc, chain, axis, feed, opts...)
}
