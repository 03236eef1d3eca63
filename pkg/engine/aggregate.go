package engine

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
)

// StageDestruction is one stage's share of the system's exergy destruction
// over a whole run, in chain order.
type StageDestruction struct {
	Stage        string
	Kind         StageKind
	DestructionJ float64
}

// Totals is the system-level roll-up of one run's time series.
type Totals struct {
	SystemInputExergyJ float64
	DeliveredExergyJ   float64
	DeliveredEnergyJ   float64
	Destruction        []StageDestruction
	TotalDestructionJ  float64
	LossesJ            map[string]float64 // per loss key, summed across stages and steps
	Efficiency         float64            // delivered / system input exergy
}

// Aggregate rolls the full time series of a run into per-stage exergy
// destruction and the system balance, then checks the conservation
// identity
//
//	system_input_exergy = delivered_exergy + sum(per_stage_destruction)
//
// within the configured tolerance. A violation, including negative
// per-stage destruction beyond tolerance, is a ComputationIntegrityFailure:
// it signals a non-conserving loss model, a bug, not an invalid scenario.
func Aggregate(sc *Scenario, chain *Chain, records []Record, cfg ScienceConfig) (*Totals, error) {
	if sc == nil {
		return nil, NewRefusal(KindMissingInput, "require_present", "scenario", "aggregate without a scenario")
	}
	if chain == nil {
		return nil, NewRefusal(KindMissingInput, "require_present", "chain", "aggregate without a chain")
	}
	if len(records) == 0 {
		return nil, NewRefusal(KindMissingInput, "require_present", "records", "aggregate over an empty time series")
	}

	stages := chain.Stages()
	type stageSum struct {
		exIn, exOut float64
	}
	sums := make(map[string]*stageSum, len(stages))
	known := make(map[string]StageKind, len(stages))
	for _, st := range stages {
		sums[st.Name] = &stageSum{}
		known[st.Name] = st.Kind
	}

	totals := &Totals{LossesJ: make(map[string]float64)}

	for _, r := range records {
		if r.Unit != UnitJoule {
			return nil, NewRefusal(KindWrongUnit, "require_unit", r.Stage+"."+r.Variable,
				fmt.Sprintf("roll-up needs J, record carries %q", r.Unit))
		}
		s, ok := sums[r.Stage]
		if !ok {
			return nil, NewRefusal(KindComputationIntegrity, "known_stage", r.Stage,
				"time series references a stage outside the chain")
		}
		switch r.Variable {
		case VarExergyIn:
			s.exIn += r.Value
		case VarExergyOut:
			s.exOut += r.Value
		case VarEnergyIn, VarEnergyOut, VarExergyDelivered:
			// counted below via stage position
		default:
			totals.LossesJ[r.Variable] += r.Value
		}
	}

	first, last := stages[0], stages[len(stages)-1]
	totals.SystemInputExergyJ = sums[first.Name].exIn
	totals.DeliveredExergyJ = sums[last.Name].exOut
	for _, r := range records {
		if r.Stage == last.Name && r.Variable == VarEnergyOut {
			totals.DeliveredEnergyJ += r.Value
		}
	}

	for _, st := range stages {
		s := sums[st.Name]
		d := s.exIn - s.exOut
		if d < -cfg.ConservationAbsTolJ() {
			return nil, NewRefusal(KindComputationIntegrity, "nonnegative_destruction", st.Name,
				fmt.Sprintf("stage destroys %g J of exergy (negative: model creates exergy)", d))
		}
		if d < 0 {
			d = 0
		}
		totals.Destruction = append(totals.Destruction, StageDestruction{
			Stage:        st.Name,
			Kind:         st.Kind,
			DestructionJ: d,
		})
		totals.TotalDestructionJ += d
	}

	// Conserve: input = delivered + destroyed, within tolerance.
	residual := totals.SystemInputExergyJ - totals.DeliveredExergyJ - totals.TotalDestructionJ
	tol := cfg.ConservationRelTol() * math.Abs(totals.SystemInputExergyJ)
	if tol < cfg.ConservationAbsTolJ() {
		tol = cfg.ConservationAbsTolJ()
	}
	if math.Abs(residual) > tol {
		return nil, NewRefusal(KindComputationIntegrity, "conservation_identity", chain.Name(),
			fmt.Sprintf("residual %g J exceeds tolerance %g J", residual, tol))
	}

	effIn := Derived(totals.SystemInputExergyJ, UnitJoule, "system input exergy")
	effOut := Derived(totals.DeliveredExergyJ, UnitJoule, "delivered exergy")
	eff, err := ExergyEfficiency(effOut, effIn)
	if err != nil {
		return nil, err
	}
	totals.Efficiency = eff.Val
	if eff.Val < 0 || eff.Val > 1.2 {
		slog.Warn("exergy efficiency outside expected range; check boundary definitions",
			"chain", chain.Name(), "efficiency", eff.Val)
	}

	return totals, nil
}

// LossKeys returns the loss variable names present in the roll-up, sorted.
func (t *Totals) LossKeys() []string {
	keys := make([]string, 0, len(t.LossesJ))
	for k := range t.LossesJ {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
