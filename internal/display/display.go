// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans. Use these functions in
// CLI output and reports; keep raw codes for YAML fields, map keys, and
// equality comparisons.
package display

import (
	"strconv"

	"exergy/pkg/engine"
)

var stageKinds = map[engine.StageKind]string{
	engine.StageCharge:  "Charge",
	engine.StageStore:   "Store",
	engine.StageConvert: "Convert",
	engine.StageDeliver: "Deliver",
}

// StageKind returns the human-readable name for a stage kind. Unknown
// kinds are returned as-is.
func StageKind(k engine.StageKind) string {
	if name, ok := stageKinds[k]; ok {
		return name
	}
	return string(k)
}

var sources = map[engine.SourceType]string{
	engine.SourceMeasured: "Measured",
	engine.SourceAssumed:  "Assumed",
	engine.SourceDerived:  "Derived",
	engine.SourceExternal: "External",
}

// Source returns the human-readable name for a source classification.
func Source(s engine.SourceType) string {
	if name, ok := sources[s]; ok {
		return name
	}
	return string(s)
}

var refusalKinds = map[engine.Kind]string{
	engine.KindMissingInput:               "a mandatory input is missing",
	engine.KindInvalidTemperatureBoundary: "the boundary temperature does not exceed the reference temperature",
	engine.KindIncompleteChain:            "the stage chain does not end in a delivery stage",
	engine.KindCarrierDiscontinuity:       "adjacent stages disagree on the energy carrier between them",
	engine.KindMissingBoundaryElement:     "a component required for delivery is outside the declared boundary",
	engine.KindZeroInputExergy:            "efficiency is undefined without positive input exergy",
	engine.KindAmbiguousUnit:              "an energy unit does not declare thermal vs electric",
	engine.KindWrongUnit:                  "a value carries a unit the operation cannot accept",
	engine.KindNegativeExergyDestruction:  "the exergy balance went negative (second-law violation)",
	engine.KindComputationIntegrity:       "an internal conservation identity was violated (implementation defect)",
}

// RefusalKind returns a one-line human explanation of a refusal kind.
func RefusalKind(k engine.Kind) string {
	if name, ok := refusalKinds[k]; ok {
		return name
	}
	return string(k)
}

// Refusal renders a refusal for CLI output: the explanation, the offending
// field, and the run position when one is attached.
func Refusal(r *engine.Refusal) string {
	msg := "refused: " + RefusalKind(r.Kind)
	if r.Field != "" {
		msg += " (" + r.Field + ")"
	}
	if r.Stage != "" {
		msg += " at stage " + r.Stage
	}
	if r.Step >= 0 {
		msg += " during step " + strconv.Itoa(r.Step)
	}
	if r.Detail != "" {
		msg += ": " + r.Detail
	}
	return msg
}
