package engine

import "fmt"

// ChainBuilder assembles stages in physical order. Construction is a
// two-phase protocol: Append collects, Finalize runs the chain guardrails
// against a scenario and freezes the result. A finalized Chain is
// immutable; structural changes go through Rebuild, producing a new chain
// so prior and revised configurations can be compared side by side.
type ChainBuilder struct {
	name   string
	stages []Stage
}

// NewChainBuilder starts an empty chain with the given name.
func NewChainBuilder(name string) *ChainBuilder {
	return &ChainBuilder{name: name}
}

// Append adds a stage at the end of the chain. Returns the builder for
// chaining; no validation happens until Finalize.
func (b *ChainBuilder) Append(st Stage) *ChainBuilder {
	b.stages = append(b.stages, st)
	return b
}

// Finalize validates the assembled chain against the scenario and freezes
// it. Refuses with IncompleteChain when the chain is empty or does not end
// in a DELIVER stage, with MissingBoundaryElement when a stage's component
// is outside the scenario's declared boundary, and with
// CarrierDiscontinuity when adjacent stages disagree on the carrier
// between them. These checks run here, at construction time, never
// deferred to the simulation.
func (b *ChainBuilder) Finalize(sc *Scenario) (*Chain, error) {
	if b.name == "" {
		return nil, NewRefusal(KindMissingInput, "require_present", "chain.name",
			"chain declares no name")
	}
	if sc == nil {
		return nil, NewRefusal(KindMissingInput, "require_present", "scenario",
			"chain finalized without a scenario")
	}
	if err := RequireChainTerminatesInDelivery(b.stages); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(b.stages))
	for i, st := range b.stages {
		if err := st.check(); err != nil {
			return nil, err
		}
		if seen[st.Name] {
			return nil, fmt.Errorf("chain %s: duplicate stage name %q at position %d", b.name, st.Name, i)
		}
		seen[st.Name] = true
	}
	if err := RequireBoundaryCompleteness(sc, b.stages); err != nil {
		return nil, err
	}
	if err := RequireCarrierContinuity(sc, b.stages); err != nil {
		return nil, err
	}

	stages := make([]Stage, len(b.stages))
	copy(stages, b.stages)
	return &Chain{name: b.name, stages: stages}, nil
}

// Chain is an ordered, immutable sequence of stages ending in DELIVER,
// representing one storage technology's path from energy input to heat
// delivery. Only Finalize constructs one, so every Chain in existence has
// passed the chain guardrails.
type Chain struct {
	name   string
	stages []Stage
}

func (c *Chain) Name() string { return c.name }

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Stages returns a copy of the stage sequence in physical order.
func (c *Chain) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Rebuild returns a builder pre-loaded with this chain's stages, for
// deriving a revised chain without mutating the original.
func (c *Chain) Rebuild() *ChainBuilder {
	b := NewChainBuilder(c.name)
	b.stages = c.Stages()
	return b
}
