// Package engine implements the exergy accounting core: provenance-carrying
// values, the guardrail rules that gate every physics computation, the
// stage-chain system model, the time-stepped simulation loop, and the
// roll-up of per-stage results into system-level exergy balances.
//
// The engine is deterministic and side-effect free: given the same scenario,
// chain, and time axis it produces the same time series. It never invents a
// default for a missing or ambiguous input; it refuses instead (see Refusal).
package engine

// Units the engine computes in. Normalization from field units (kWh, MWh)
// is an external utility; inside the engine everything is joules, kelvins,
// or dimensionless, and guardrails enforce it.
const (
	UnitJoule         = "J"
	UnitKelvin        = "K"
	UnitDimensionless = "-"
)

// SourceType classifies where a value came from. The classification travels
// with the value so downstream consumers can weigh an assumed temperature
// differently from a measured one.
type SourceType string

const (
	SourceMeasured SourceType = "measured"
	SourceAssumed  SourceType = "assumed"
	SourceDerived  SourceType = "derived"
	SourceExternal SourceType = "external"
)

// Valid reports whether s is one of the four known source classifications.
func (s SourceType) Valid() bool {
	switch s {
	case SourceMeasured, SourceAssumed, SourceDerived, SourceExternal:
		return true
	}
	return false
}

// Value is a measurement wrapped with explicit unit and provenance, never a
// bare number. Unit and Source are mandatory; construction through the
// typed constructors keeps them so. Values are compared by the full tuple:
// the same number with a different source carries different epistemic
// weight and must not compare equal.
type Value struct {
	Val    float64
	Unit   string
	Source SourceType
	Label  string
}

// Measured constructs a value backed by an instrument reading.
func Measured(val float64, unit, label string) Value {
	return Value{Val: val, Unit: unit, Source: SourceMeasured, Label: label}
}

// Assumed constructs a value chosen by the analyst, not observed.
func Assumed(val float64, unit, label string) Value {
	return Value{Val: val, Unit: unit, Source: SourceAssumed, Label: label}
}

// Derived constructs a value produced by a computation inside the engine.
func Derived(val float64, unit, label string) Value {
	return Value{Val: val, Unit: unit, Source: SourceDerived, Label: label}
}

// External constructs a value imported from an outside dataset or report.
func External(val float64, unit, label string) Value {
	return Value{Val: val, Unit: unit, Source: SourceExternal, Label: label}
}

// Complete reports whether the value carries every mandatory field.
// A zero Value is not complete.
func (v Value) Complete() bool {
	return v.Unit != "" && v.Source.Valid() && v.Label != ""
}
