package config

import (
	"fmt"

	"exergy/pkg/engine"
	"exergy/pkg/units"
)

// BuildScenario materializes a validated scenario from its definition.
// Temperatures pass through (the engine checks Kelvin); auxiliary energy
// inputs are normalized to joules here, refusing on ambiguous units.
func BuildScenario(def *ScenarioDef) (*engine.Scenario, error) {
	var t0, tb *engine.Value
	if def.T0 != nil {
		v, err := def.T0.Build("T0")
		if err != nil {
			return nil, err
		}
		t0 = &v
	}
	if def.Tb != nil {
		v, err := def.Tb.Build("Tb")
		if err != nil {
			return nil, err
		}
		tb = &v
	}

	aux := make(map[string]engine.Value, len(def.Aux))
	for name, vd := range def.Aux {
		v, err := vd.Build("aux." + name)
		if err != nil {
			return nil, err
		}
		nv, err := units.Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("aux %s: %w", name, err)
		}
		aux[name] = nv
	}

	return engine.NewScenario(def.Name, t0, tb, def.BoundaryElements, aux)
}

// BuildChain materializes and finalizes a chain against a scenario.
func BuildChain(def *ChainDef, sc *engine.Scenario) (*engine.Chain, error) {
	b := engine.NewChainBuilder(def.Name)
	for i, sd := range def.Stages {
		pos := fmt.Sprintf("stage[%d]", i)
		in, err := sd.In.Build(pos + ".in")
		if err != nil {
			return nil, err
		}
		out, err := sd.Out.Build(pos + ".out")
		if err != nil {
			return nil, err
		}
		loss, err := sd.Loss.Build(sd.Name)
		if err != nil {
			return nil, err
		}
		inputs := make(map[string]engine.Value, len(sd.Inputs))
		for name, vd := range sd.Inputs {
			v, err := vd.Build(sd.Name + ".inputs." + name)
			if err != nil {
				return nil, err
			}
			nv, err := units.Normalize(v)
			if err != nil {
				return nil, fmt.Errorf("%s input %s: %w", sd.Name, name, err)
			}
			inputs[name] = nv
		}
		b.Append(engine.Stage{
			Kind:      engine.StageKind(sd.Kind),
			Name:      sd.Name,
			Component: sd.Component,
			In:        in,
			Out:       out,
			Loss:      loss,
			Inputs:    inputs,
		})
	}
	return b.Finalize(sc)
}
