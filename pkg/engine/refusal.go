package engine

import (
	"errors"
	"fmt"
)

// Kind classifies a refusal. A refusal is an intentional, terminal halt of
// computation, not a transient fault: it is never caught and retried, and
// no component invents a default to work around one.
type Kind string

const (
	// KindMissingInput: a mandatory value (notably T0) is absent.
	KindMissingInput Kind = "missing_input"
	// KindInvalidTemperatureBoundary: Tb <= T0, or a temperature is not
	// above absolute zero. The exergy-of-heat shortcut is defined as
	// inapplicable there, not merely degenerate.
	KindInvalidTemperatureBoundary Kind = "invalid_temperature_boundary"
	// KindIncompleteChain: a stage chain is empty or does not terminate
	// in a DELIVER stage.
	KindIncompleteChain Kind = "incomplete_chain"
	// KindCarrierDiscontinuity: adjacent stages disagree on the energy
	// carrier crossing between them, so the chain is physically
	// disconnected at that seam.
	KindCarrierDiscontinuity Kind = "carrier_discontinuity"
	// KindMissingBoundaryElement: a component required for heat delivery
	// is absent from the scenario's declared boundary.
	KindMissingBoundaryElement Kind = "missing_boundary_element"
	// KindZeroInputExergy: efficiency requested with zero or negative
	// input exergy.
	KindZeroInputExergy Kind = "zero_input_exergy"
	// KindAmbiguousUnit: an energy unit that does not declare thermal vs
	// electric (bare MWh/kWh/Wh).
	KindAmbiguousUnit Kind = "ambiguous_unit"
	// KindWrongUnit: a value carries a unit the operation cannot accept
	// (exergy balances require J, temperatures require K).
	KindWrongUnit Kind = "wrong_unit"
	// KindNegativeExergyDestruction: a destruction balance went negative
	// beyond numerical noise, violating the second law.
	KindNegativeExergyDestruction Kind = "negative_exergy_destruction"
	// KindComputationIntegrity: an internal conservation identity was
	// violated. Unlike the physical-validity kinds above, this signals a
	// bug in a stage's loss model, not an invalid scenario.
	KindComputationIntegrity Kind = "computation_integrity_failure"
)

// Sentinels for errors.Is matching. A *Refusal matches the sentinel of its
// kind, so callers can branch without unpacking the struct.
var (
	ErrMissingInput               = errors.New("engine: missing input")
	ErrInvalidTemperatureBoundary = errors.New("engine: invalid temperature boundary")
	ErrIncompleteChain            = errors.New("engine: incomplete chain")
	ErrCarrierDiscontinuity       = errors.New("engine: carrier discontinuity")
	ErrMissingBoundaryElement     = errors.New("engine: missing boundary element")
	ErrZeroInputExergy            = errors.New("engine: zero input exergy")
	ErrAmbiguousUnit              = errors.New("engine: ambiguous unit")
	ErrWrongUnit                  = errors.New("engine: wrong unit")
	ErrNegativeExergyDestruction  = errors.New("engine: negative exergy destruction")
	ErrComputationIntegrity       = errors.New("engine: computation integrity failure")
)

var kindSentinels = map[Kind]error{
	KindMissingInput:               ErrMissingInput,
	KindInvalidTemperatureBoundary: ErrInvalidTemperatureBoundary,
	KindIncompleteChain:            ErrIncompleteChain,
	KindCarrierDiscontinuity:       ErrCarrierDiscontinuity,
	KindMissingBoundaryElement:     ErrMissingBoundaryElement,
	KindZeroInputExergy:            ErrZeroInputExergy,
	KindAmbiguousUnit:              ErrAmbiguousUnit,
	KindWrongUnit:                  ErrWrongUnit,
	KindNegativeExergyDestruction:  ErrNegativeExergyDestruction,
	KindComputationIntegrity:       ErrComputationIntegrity,
}

// Refusal is a classified computation halt. It carries enough context (which
// rule, which field, which step and stage when raised inside a run) for a
// caller to render a precise message without re-deriving anything.
type Refusal struct {
	Kind   Kind
	Rule   string // guardrail rule identifier, e.g. "boundary_validity"
	Field  string // offending field, variable, or chain position
	Stage  string // stage name when raised inside a simulation run
	Step   int    // step index when raised inside a run, -1 otherwise
	Detail string
}

// NewRefusal constructs a refusal outside any simulation run (Step -1).
func NewRefusal(kind Kind, rule, field, detail string) *Refusal {
	return &Refusal{Kind: kind, Rule: rule, Field: field, Step: -1, Detail: detail}
}

func (r *Refusal) Error() string {
	msg := fmt.Sprintf("refusal %s (rule %s)", r.Kind, r.Rule)
	if r.Field != "" {
		msg += ": " + r.Field
	}
	if r.Detail != "" {
		msg += ": " + r.Detail
	}
	if r.Stage != "" {
		msg += fmt.Sprintf(" [step %d, stage %s]", r.Step, r.Stage)
	}
	return msg
}

// Is lets errors.Is match a refusal against the sentinel of its kind.
func (r *Refusal) Is(target error) bool {
	return kindSentinels[r.Kind] == target
}

// At returns a copy of the refusal annotated with run position. The
// original is left untouched so guardrail functions stay pure.
func (r *Refusal) At(step int, stage string) *Refusal {
	cp := *r
	cp.Step = step
	cp.Stage = stage
	return &cp
}

// AsRefusal unwraps err to a *Refusal if one is in the chain.
func AsRefusal(err error) (*Refusal, bool) {
	var r *Refusal
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
