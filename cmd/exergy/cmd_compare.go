package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"exergy/internal/report"
	"exergy/pkg/engine"
)

var compareFlags struct {
	scenario string
	chains   []string
	steps    int
	stepH    float64
	markdown bool
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run several chains under one scenario and tabulate the balances",
	Long: `Compare runs each chain against the same scenario and prints the
system balances side by side. Runs are independent (same scenario, own
chain, own time series) so they execute in parallel; within each run the
step-then-stage order stays strictly sequential.`,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&compareFlags.scenario, "scenario", "", "Scenario name or YAML path (required)")
	f.StringSliceVar(&compareFlags.chains, "chain", nil, "Chain names to compare (repeat or comma-separate)")
	f.IntVar(&compareFlags.steps, "steps", 24, "Number of simulation steps")
	f.Float64Var(&compareFlags.stepH, "dt", 1.0, "Step size in hours")
	f.BoolVar(&compareFlags.markdown, "markdown", false, "Render as Markdown instead of ASCII")
	_ = compareCmd.MarkFlagRequired("scenario")
	_ = compareCmd.MarkFlagRequired("chain")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	if len(compareFlags.chains) < 2 {
		return fmt.Errorf("compare needs at least two chains, got %d", len(compareFlags.chains))
	}

	results := make([]*engine.RunResult, len(compareFlags.chains))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, name := range compareFlags.chains {
		i, name := i, name
		g.Go(func() error {
			res, err := executeRun(ctx, compareFlags.scenario, name, compareFlags.steps, compareFlags.stepH, false)
			if err != nil {
				return fmt.Errorf("chain %s: %w", name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Chain < results[j].Chain })

	mode := report.ASCII
	if compareFlags.markdown {
		mode = report.Markdown
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.Compare(results, mode))
	return nil
}
