// Package config loads scenario and chain definitions from YAML and
// materializes them into validated engine types. It owns all unit
// normalization and provenance parsing; the engine receives only complete,
// normalized values.
package config

import (
	"fmt"

	"exergy/pkg/engine"
)

// ValueDef is the YAML form of a provenance-carrying value. Every field is
// mandatory; Build refuses rather than defaulting a missing one.
type ValueDef struct {
	Value  float64 `yaml:"value"`
	Unit   string  `yaml:"unit"`
	Source string  `yaml:"source"`
	Label  string  `yaml:"label"`
}

// Build converts the definition to an engine value. No normalization here;
// callers normalize energy units explicitly via pkg/units.
func (d ValueDef) Build(field string) (engine.Value, error) {
	src := engine.SourceType(d.Source)
	if !src.Valid() {
		return engine.Value{}, engine.NewRefusal(engine.KindMissingInput, "require_complete", field,
			fmt.Sprintf("source %q is not one of measured/assumed/derived/external", d.Source))
	}
	v := engine.Value{Val: d.Value, Unit: d.Unit, Source: src, Label: d.Label}
	if err := engine.RequireComplete(field, v); err != nil {
		return engine.Value{}, err
	}
	return v, nil
}

// ScenarioDef is the YAML form of a comparison scenario.
type ScenarioDef struct {
	Name             string              `yaml:"name"`
	T0               *ValueDef           `yaml:"t0"`
	Tb               *ValueDef           `yaml:"tb"`
	BoundaryElements []string            `yaml:"boundary_elements"`
	Aux              map[string]ValueDef `yaml:"aux"`
}

// CarrierDef is the YAML form of a stage port carrier. Exactly one of the
// fields is set: Electricity or HeatAtBoundary as bare booleans via the
// shorthand strings "electricity" / "heat_at_boundary", or Heat / Chemical
// as full value definitions carrying provenance.
type CarrierDef struct {
	Electricity    bool      `yaml:"-"`
	HeatAtBoundary bool      `yaml:"-"`
	Heat           *ValueDef `yaml:"heat"`
	Chemical       *ValueDef `yaml:"chemical"`
}

// UnmarshalYAML accepts either the shorthand scalar ("electricity",
// "heat_at_boundary") or a map with a heat/chemical value definition.
func (c *CarrierDef) UnmarshalYAML(unmarshal func(any) error) error {
	var shorthand string
	if err := unmarshal(&shorthand); err == nil {
		switch shorthand {
		case "electricity":
			c.Electricity = true
			return nil
		case "heat_at_boundary":
			c.HeatAtBoundary = true
			return nil
		}
		return fmt.Errorf("unknown carrier shorthand %q (use electricity, heat_at_boundary, or a heat:/chemical: map)", shorthand)
	}
	type plain struct {
		Heat     *ValueDef `yaml:"heat"`
		Chemical *ValueDef `yaml:"chemical"`
	}
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	c.Heat = p.Heat
	c.Chemical = p.Chemical
	return nil
}

// Build resolves the carrier definition.
func (c CarrierDef) Build(port string) (engine.Carrier, error) {
	set := 0
	for _, on := range []bool{c.Electricity, c.HeatAtBoundary, c.Heat != nil, c.Chemical != nil} {
		if on {
			set++
		}
	}
	if set != 1 {
		return engine.Carrier{}, fmt.Errorf("carrier %s: exactly one of electricity, heat_at_boundary, heat, chemical must be set", port)
	}
	switch {
	case c.Electricity:
		return engine.Electricity(), nil
	case c.HeatAtBoundary:
		return engine.HeatAtBoundary(), nil
	case c.Heat != nil:
		t, err := c.Heat.Build(port + ".heat")
		if err != nil {
			return engine.Carrier{}, err
		}
		return engine.HeatAt(t), nil
	default:
		q, err := c.Chemical.Build(port + ".chemical")
		if err != nil {
			return engine.Carrier{}, err
		}
		return engine.Chemical(q), nil
	}
}

// LossDef is the YAML form of a loss model: a model name plus its
// parameter. Parameters are full value definitions so assumptions stay
// visible in the run output.
type LossDef struct {
	Model         string    `yaml:"model"`
	Eta           *ValueDef `yaml:"eta"`
	RatePerHour   *ValueDef `yaml:"rate_per_hour"`
	Effectiveness *ValueDef `yaml:"effectiveness"`
}

// Build resolves the loss model definition.
func (d LossDef) Build(stage string) (engine.LossModel, error) {
	param := func(name string, def *ValueDef) (engine.Value, error) {
		if def == nil {
			return engine.Value{}, engine.NewRefusal(engine.KindMissingInput, "require_present",
				stage+".loss."+name, fmt.Sprintf("model %q needs %s", d.Model, name))
		}
		return def.Build(stage + ".loss." + name)
	}
	switch d.Model {
	case "conversion":
		eta, err := param("eta", d.Eta)
		if err != nil {
			return nil, err
		}
		return engine.ConversionLoss{Eta: eta}, nil
	case "decay":
		rate, err := param("rate_per_hour", d.RatePerHour)
		if err != nil {
			return nil, err
		}
		return engine.DecayLoss{RatePerHour: rate}, nil
	case "exchanger":
		eff, err := param("effectiveness", d.Effectiveness)
		if err != nil {
			return nil, err
		}
		return engine.ExchangerLoss{Effectiveness: eff}, nil
	case "passthrough":
		return engine.PassThrough{}, nil
	}
	return nil, fmt.Errorf("stage %s: unknown loss model %q", stage, d.Model)
}

// StageDef is the YAML form of one chain stage.
type StageDef struct {
	Kind      string              `yaml:"kind"`
	Name      string              `yaml:"name"`
	Component string              `yaml:"component"`
	In        CarrierDef          `yaml:"in"`
	Out       CarrierDef          `yaml:"out"`
	Loss      LossDef             `yaml:"loss"`
	Inputs    map[string]ValueDef `yaml:"inputs"`
}

// ChainDef is the YAML form of a stage chain.
type ChainDef struct {
	Name   string     `yaml:"name"`
	Stages []StageDef `yaml:"stages"`
}
