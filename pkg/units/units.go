// Package units normalizes field units into the engine's internal system
// (joules, kelvins, dimensionless ratios). It is a utility the engine
// consumes at its boundary, never inside a physics computation: values
// reach the core already normalized.
//
// Energy units must declare thermal vs electric. A bare "MWh" is refused
// as ambiguous rather than guessed; efficiency chains and exergy results
// go wrong silently when the two are mixed up.
package units

import (
	"fmt"

	"exergy/pkg/engine"
)

// Joules per kilowatt hour.
const JoulesPerKWh = 3.6e6

// joulesPer maps accepted energy units to their factor. Thermal and
// electric variants normalize identically; the suffix exists purely so the
// caller had to declare which one it is.
var joulesPer = map[string]float64{
	"J":      1,
	"Wh_th":  3.6e3,
	"Wh_e":   3.6e3,
	"kWh_th": JoulesPerKWh,
	"kWh_e":  JoulesPerKWh,
	"MWh_th": 1e3 * JoulesPerKWh,
	"MWh_e":  1e3 * JoulesPerKWh,
}

// ambiguous lists energy units that do not declare thermal vs electric.
var ambiguous = map[string]bool{
	"Wh":  true,
	"kWh": true,
	"MWh": true,
}

// passthrough lists units the engine accepts as-is.
var passthrough = map[string]bool{
	engine.UnitJoule:         true,
	engine.UnitKelvin:        true,
	engine.UnitDimensionless: true,
	"1/h":                    true,
}

// Normalize converts v to the engine's unit system, preserving source and
// label. Refuses with AmbiguousUnit for energy units lacking a thermal/
// electric qualifier and with WrongUnit for units it does not know.
func Normalize(v engine.Value) (engine.Value, error) {
	if err := engine.RequireComplete(v.Label, v); err != nil {
		return engine.Value{}, err
	}
	if ambiguous[v.Unit] {
		return engine.Value{}, engine.NewRefusal(engine.KindAmbiguousUnit, "unambiguous_energy", v.Label,
			fmt.Sprintf("%q does not declare thermal vs electric; use %s_th or %s_e", v.Unit, v.Unit, v.Unit))
	}
	if passthrough[v.Unit] {
		return v, nil
	}
	factor, ok := joulesPer[v.Unit]
	if !ok {
		return engine.Value{}, engine.NewRefusal(engine.KindWrongUnit, "known_unit", v.Label,
			fmt.Sprintf("unknown unit %q", v.Unit))
	}
	out := v
	out.Val = v.Val * factor
	out.Unit = engine.UnitJoule
	return out, nil
}

// NormalizeAll normalizes a map of named values, refusing on the first
// failure with the offending name attached.
func NormalizeAll(vals map[string]engine.Value) (map[string]engine.Value, error) {
	out := make(map[string]engine.Value, len(vals))
	for name, v := range vals {
		nv, err := Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("normalize %s: %w", name, err)
		}
		out[name] = nv
	}
	return out, nil
}
