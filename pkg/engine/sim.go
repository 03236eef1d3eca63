package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Axis is the discretized time axis of a run: a fixed step size and a step
// count, both externally supplied.
type Axis struct {
	StepHours float64
	Steps     int
}

// NewAxis validates and returns a time axis.
func NewAxis(stepHours float64, steps int) (Axis, error) {
	if stepHours <= 0 {
		return Axis{}, fmt.Errorf("axis: step size must be > 0 hours, got %g", stepHours)
	}
	if steps < 1 {
		return Axis{}, fmt.Errorf("axis: need at least 1 step, got %d", steps)
	}
	return Axis{StepHours: stepHours, Steps: steps}, nil
}

// RunResult is the artifact of one completed (non-refused) run: the full
// time series plus the aggregated system totals. A refused run produces no
// RunResult at all; partial series would make misleading plots of an
// invalid scenario.
type RunResult struct {
	RunID    string
	Scenario string
	Chain    string
	Records  []Record
	Totals   *Totals
}

type runConfig struct {
	observer RunObserver
	science  ScienceConfig
	runID    string
}

// RunOption configures a simulation run.
type RunOption func(*runConfig)

// WithObserver attaches an observer receiving run lifecycle events.
func WithObserver(obs RunObserver) RunOption {
	return func(c *runConfig) { c.observer = obs }
}

// WithScience overrides the frozen process-wide scientific configuration
// for this run. Tests use this instead of sharing global state.
func WithScience(cfg ScienceConfig) RunOption {
	return func(c *runConfig) { c.science = cfg }
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) RunOption {
	return func(c *runConfig) { c.runID = id }
}

// Run steps the chain over the time axis. Each step evaluates the stages
// strictly in chain order: a downstream stage's input is the upstream
// stage's output for that same step, never a future step's data. The loop
// is sequential and single-pass: no retries, no partial re-execution. On
// any in-step guardrail failure it halts immediately and returns the
// refusal annotated with the step index and stage name; no records are
// returned for a refused run.
//
// feed is the energy entering the first stage each step, in joules.
func Run(ctx context.Context, sc *Scenario, chain *Chain, axis Axis, feed Value, opts ...RunOption) (*RunResult, error) {
	cfg := runConfig{science: Frozen()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runID == "" {
		cfg.runID = uuid.NewString()
	}
	obs := cfg.observer

	if sc == nil {
		return nil, NewRefusal(KindMissingInput, "require_present", "scenario", "run without a scenario")
	}
	if chain == nil {
		return nil, NewRefusal(KindMissingInput, "require_present", "chain", "run without a chain")
	}
	if err := RequireUnit("feed", feed, UnitJoule); err != nil {
		return nil, err
	}
	if feed.Val <= 0 {
		return nil, fmt.Errorf("run: feed energy per step must be > 0, got %g J (a run without input carries no exergy to account)", feed.Val)
	}
	if axis.StepHours <= 0 || axis.Steps < 1 {
		return nil, fmt.Errorf("run: axis not constructed via NewAxis (step %g h, %d steps)", axis.StepHours, axis.Steps)
	}

	// Pre-resolve carrier exergy factors: they are constant across the
	// run, and resolving here surfaces boundary refusals before the
	// first step rather than inside it.
	stages := chain.Stages()
	inFactor := make([]float64, len(stages))
	outFactor := make([]float64, len(stages))
	for i, st := range stages {
		f, err := st.In.factor(sc)
		if err != nil {
			return nil, refusalAt(err, -1, st.Name)
		}
		inFactor[i] = f
		f, err = st.Out.factor(sc)
		if err != nil {
			return nil, refusalAt(err, -1, st.Name)
		}
		outFactor[i] = f
	}

	emitEvent(obs, Event{Type: EventRunStart, RunID: cfg.runID, Step: -1})
	start := time.Now()

	records := make([]Record, 0, axis.Steps*len(stages)*6)
	for step := 0; step < axis.Steps; step++ {
		if err := ctx.Err(); err != nil {
			emitEvent(obs, Event{Type: EventRunRefused, RunID: cfg.runID, Step: step, Err: err})
			return nil, fmt.Errorf("run %s: step %d: %w", cfg.runID, step, err)
		}
		emitEvent(obs, Event{Type: EventStepStart, RunID: cfg.runID, Step: step})

		tHours := float64(step) * axis.StepHours
		energy := feed.Val

		for i, st := range stages {
			out, losses := st.Loss.Apply(energy, axis.StepHours)
			if err := requireFiniteEnergy(st.Name, out); err != nil {
				refusal := refusalAt(err, step, st.Name)
				emitEvent(obs, Event{Type: EventRunRefused, RunID: cfg.runID, Step: step, Stage: st.Name, Err: refusal})
				return nil, refusal
			}
			exIn := energy * inFactor[i]
			exOut := out * outFactor[i]

			rec := func(variable string, val float64) {
				records = append(records, Record{
					Step:      step,
					TimeHours: tHours,
					Stage:     st.Name,
					Variable:  variable,
					Value:     val,
					Unit:      UnitJoule,
					Source:    SourceDerived,
				})
			}
			rec(VarEnergyIn, energy)
			rec(VarEnergyOut, out)
			for _, key := range sortedKeys(losses) {
				rec(key, losses[key])
			}
			rec(VarExergyIn, exIn)
			rec(VarExergyOut, exOut)
			if st.Kind == StageDeliver {
				rec(VarExergyDelivered, exOut)
			}

			emitEvent(obs, Event{Type: EventStageComputed, RunID: cfg.runID, Step: step, Stage: st.Name})
			energy = out
		}
	}

	totals, err := Aggregate(sc, chain, records, cfg.science)
	if err != nil {
		emitEvent(obs, Event{Type: EventRunRefused, RunID: cfg.runID, Step: -1, Err: err})
		return nil, err
	}

	emitEvent(obs, Event{Type: EventRunComplete, RunID: cfg.runID, Step: -1, Elapsed: time.Since(start)})
	return &RunResult{
		RunID:    cfg.runID,
		Scenario: sc.Name(),
		Chain:    chain.Name(),
		Records:  records,
		Totals:   totals,
	}, nil
}

// requireFiniteEnergy refuses when a loss model emits a non-physical
// energy quantity. This is an implementation defect in the model, not an
// invalid scenario, so it is classified as an integrity failure.
func requireFiniteEnergy(stage string, outJ float64) error {
	if math.IsNaN(outJ) || math.IsInf(outJ, 0) {
		return NewRefusal(KindComputationIntegrity, "finite_energy", stage+"."+VarEnergyOut,
			fmt.Sprintf("loss model produced %g J", outJ))
	}
	if outJ < 0 {
		return NewRefusal(KindComputationIntegrity, "finite_energy", stage+"."+VarEnergyOut,
			fmt.Sprintf("loss model produced negative energy %g J", outJ))
	}
	return nil
}

// refusalAt annotates a refusal with run position; other errors pass
// through wrapped.
func refusalAt(err error, step int, stage string) error {
	if r, ok := AsRefusal(err); ok {
		return r.At(step, stage)
	}
	return fmt.Errorf("stage %s: %w", stage, err)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
