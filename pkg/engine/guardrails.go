package engine

import "fmt"

// Guardrails are the single refusal authority. Every function here is a
// total, pure predicate: same inputs, same verdict, no I/O. They are
// invoked at the earliest point where enough information exists to decide
// (scenario construction, chain finalization, immediately before an exergy
// call), never deferred.

// RequirePresent refuses with MissingInput when a mandatory value is absent.
func RequirePresent(field string, v *Value) error {
	if v == nil {
		return NewRefusal(KindMissingInput, "require_present", field,
			"mandatory value is absent")
	}
	return nil
}

// RequireComplete refuses with MissingInput when a value lacks any of its
// mandatory fields (unit, source classification, label).
func RequireComplete(field string, v Value) error {
	if v.Unit == "" {
		return NewRefusal(KindMissingInput, "require_complete", field, "unit is empty")
	}
	if !v.Source.Valid() {
		return NewRefusal(KindMissingInput, "require_complete", field,
			fmt.Sprintf("source %q is not a known classification", v.Source))
	}
	if v.Label == "" {
		return NewRefusal(KindMissingInput, "require_complete", field, "label is empty")
	}
	return nil
}

// RequireUnit refuses with WrongUnit when a value does not carry the unit
// the operation needs. The engine performs no implicit conversion; callers
// normalize units before handing values in.
func RequireUnit(field string, v Value, unit string) error {
	if err := RequireComplete(field, v); err != nil {
		return err
	}
	if v.Unit != unit {
		return NewRefusal(KindWrongUnit, "require_unit", field,
			fmt.Sprintf("got %q, need %q", v.Unit, unit))
	}
	return nil
}

// RequirePositiveTemperature refuses when a temperature is not in Kelvin or
// not above absolute zero.
func RequirePositiveTemperature(field string, v Value) error {
	if err := RequireUnit(field, v, UnitKelvin); err != nil {
		return err
	}
	if v.Val <= 0 {
		return NewRefusal(KindInvalidTemperatureBoundary, "positive_temperature", field,
			fmt.Sprintf("%g K is not above absolute zero", v.Val))
	}
	return nil
}

// RequireBoundaryValidity refuses with InvalidTemperatureBoundary when
// Tb <= T0. Equality is refused too: the exergy-of-heat shortcut is defined
// as inapplicable there, not merely zero.
func RequireBoundaryValidity(t0, tb Value) error {
	if err := RequirePositiveTemperature("T0", t0); err != nil {
		return err
	}
	if err := RequirePositiveTemperature("Tb", tb); err != nil {
		return err
	}
	if tb.Val <= t0.Val {
		return NewRefusal(KindInvalidTemperatureBoundary, "boundary_validity", "Tb",
			fmt.Sprintf("Tb %g K must exceed T0 %g K", tb.Val, t0.Val))
	}
	return nil
}

// RequireChainTerminatesInDelivery refuses with IncompleteChain when the
// stage sequence is empty or its last stage is not a DELIVER stage.
func RequireChainTerminatesInDelivery(stages []Stage) error {
	if len(stages) == 0 {
		return NewRefusal(KindIncompleteChain, "chain_terminates_in_delivery", "stages",
			"chain has no stages")
	}
	last := stages[len(stages)-1]
	if last.Kind != StageDeliver {
		return NewRefusal(KindIncompleteChain, "chain_terminates_in_delivery", last.Name,
			fmt.Sprintf("last stage kind is %s, must be %s", last.Kind, StageDeliver))
	}
	return nil
}

// RequireCarrierContinuity refuses with CarrierDiscontinuity when adjacent
// stages disagree on the carrier crossing between them: the energy leaving
// stage i must carry the same exergy factor as the energy entering stage
// i+1 under the scenario's reference temperature. A mismatch is a broken
// chain definition, not a loss-model defect, so it refuses here at
// construction rather than failing the conservation identity after a run.
func RequireCarrierContinuity(sc *Scenario, stages []Stage) error {
	for i := 0; i+1 < len(stages); i++ {
		out, in := stages[i], stages[i+1]
		fOut, err := out.Out.factor(sc)
		if err != nil {
			return refusalAt(err, -1, out.Name)
		}
		fIn, err := in.In.factor(sc)
		if err != nil {
			return refusalAt(err, -1, in.Name)
		}
		if out.Out.Class != in.In.Class || fOut != fIn {
			return NewRefusal(KindCarrierDiscontinuity, "carrier_continuity",
				out.Name+" -> "+in.Name,
				fmt.Sprintf("stage %q emits %s (exergy factor %g) but stage %q expects %s (factor %g)",
					out.Name, out.Out.Class, fOut, in.Name, in.In.Class, fIn))
		}
	}
	return nil
}

// RequireBoundaryCompleteness refuses with MissingBoundaryElement when a
// stage's physical component is not declared in the scenario's delivery
// boundary. Every DELIVER stage must name a component; other stages are
// checked only when they name one.
func RequireBoundaryCompleteness(sc *Scenario, stages []Stage) error {
	for _, st := range stages {
		if st.Component == "" {
			if st.Kind == StageDeliver {
				return NewRefusal(KindMissingBoundaryElement, "boundary_completeness", st.Name,
					"DELIVER stage declares no boundary component")
			}
			continue
		}
		if !sc.HasBoundaryElement(st.Component) {
			return NewRefusal(KindMissingBoundaryElement, "boundary_completeness", st.Component,
				fmt.Sprintf("component required by stage %q is absent from boundary_elements", st.Name))
		}
	}
	return nil
}
