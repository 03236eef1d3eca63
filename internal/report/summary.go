package report

import (
	"fmt"

	"exergy/internal/display"
	"exergy/pkg/engine"
)

// MWh renders joules as megawatt hours with three decimals.
func MWh(joules float64) string {
	return fmt.Sprintf("%.3f MWh", joules/3.6e9)
}

// Summary renders one run's exergy balance: per-stage destruction in chain
// order, then the system totals and efficiency.
func Summary(res *engine.RunResult, mode Mode) string {
	t := NewTable(mode)
	t.Header("Stage", "Kind", "Exergy destroyed")
	for _, d := range res.Totals.Destruction {
		t.Row(d.Stage, display.StageKind(d.Kind), MWh(d.DestructionJ))
	}
	t.Footer("Total", "", MWh(res.Totals.TotalDestructionJ))
	t.RightAlign(3)

	out := fmt.Sprintf("Run %s: scenario %s, chain %s\n%s\n",
		res.RunID, res.Scenario, res.Chain, t.String())
	out += fmt.Sprintf("System input exergy:  %s\n", MWh(res.Totals.SystemInputExergyJ))
	out += fmt.Sprintf("Delivered exergy:     %s\n", MWh(res.Totals.DeliveredExergyJ))
	out += fmt.Sprintf("Delivered heat:       %s\n", MWh(res.Totals.DeliveredEnergyJ))
	out += fmt.Sprintf("Exergy efficiency:    %.4f\n", res.Totals.Efficiency)
	return out
}

// Compare renders several runs of the same scenario side by side.
func Compare(results []*engine.RunResult, mode Mode) string {
	t := NewTable(mode)
	t.Header("Chain", "Input exergy", "Delivered exergy", "Destroyed", "Efficiency")
	for _, res := range results {
		t.Row(
			res.Chain,
			MWh(res.Totals.SystemInputExergyJ),
			MWh(res.Totals.DeliveredExergyJ),
			MWh(res.Totals.TotalDestructionJ),
			fmt.Sprintf("%.4f", res.Totals.Efficiency),
		)
	}
	t.RightAlign(2, 3, 4, 5)
	return t.String()
}
