package engine

import "fmt"

// Exergy core: pure functions over validated values. Every function checks
// its own guardrails before any arithmetic, so a caller can never reach a
// numeric result from a physically invalid configuration.

// ExergyOfHeat computes the available work content of heat Q delivered at
// boundary temperature tb against reference environment t0:
//
//	Ex = Q * (1 - T0/Tb)
//
// Q must be in joules, both temperatures in kelvins, already normalized by
// the caller. Refuses with InvalidTemperatureBoundary whenever Tb <= T0.
func ExergyOfHeat(q, t0, tb Value) (Value, error) {
	if err := RequireUnit("Q", q, UnitJoule); err != nil {
		return Value{}, err
	}
	if q.Val < 0 {
		return Value{}, fmt.Errorf("exergy of heat: Q must be >= 0, got %g J", q.Val)
	}
	if err := RequireBoundaryValidity(t0, tb); err != nil {
		return Value{}, err
	}
	ex := q.Val * (1.0 - t0.Val/tb.Val)
	return Derived(ex, UnitJoule, "exergy of heat: "+q.Label), nil
}

// ExergyEfficiency computes the dimensionless ratio exOut/exIn. Defined
// only for positive input exergy; refuses with ZeroInputExergy otherwise.
func ExergyEfficiency(exOut, exIn Value) (Value, error) {
	if err := RequireUnit("Ex_out", exOut, UnitJoule); err != nil {
		return Value{}, err
	}
	if err := RequireUnit("Ex_in", exIn, UnitJoule); err != nil {
		return Value{}, err
	}
	if exIn.Val <= 0 {
		return Value{}, NewRefusal(KindZeroInputExergy, "positive_input_exergy", "Ex_in",
			fmt.Sprintf("got %g J", exIn.Val))
	}
	eta := exOut.Val / exIn.Val
	return Derived(eta, UnitDimensionless, "exergy efficiency"), nil
}

// balanceTerms collects the optional work and loss terms of a full
// destruction balance.
type balanceTerms struct {
	workIn  *Value
	workOut *Value
	loss    *Value
}

// BalanceTerm adds an optional term to DestructionBalance.
type BalanceTerm func(*balanceTerms)

// WithWorkIn adds auxiliary work entering the balance (e.g. compressor
// electricity), counted as pure exergy input.
func WithWorkIn(v Value) BalanceTerm {
	return func(b *balanceTerms) { b.workIn = &v }
}

// WithWorkOut adds work leaving the balance, counted as pure exergy output.
func WithWorkOut(v Value) BalanceTerm {
	return func(b *balanceTerms) { b.workOut = &v }
}

// WithAccountedLoss adds an exergy loss stream that leaves the boundary but
// is accounted for separately, so it is not booked as destruction.
func WithAccountedLoss(v Value) BalanceTerm {
	return func(b *balanceTerms) { b.loss = &v }
}

// destructionNoiseFloorJ absorbs floating-point noise in balances; anything
// more negative than this is a second-law violation, not rounding.
const destructionNoiseFloorJ = 1e-9

// DestructionBalance computes Ex_dest = Ex_in + W_in - Ex_out - W_out - Ex_loss.
// All terms must be in joules. A result below the numerical noise floor
// refuses with NegativeExergyDestruction (second-law violation or boundary
// mismatch); small negative noise is clamped to zero.
func DestructionBalance(exIn, exOut Value, terms ...BalanceTerm) (Value, error) {
	var b balanceTerms
	for _, t := range terms {
		t(&b)
	}

	if err := RequireUnit("Ex_in", exIn, UnitJoule); err != nil {
		return Value{}, err
	}
	if err := RequireUnit("Ex_out", exOut, UnitJoule); err != nil {
		return Value{}, err
	}
	total := exIn.Val - exOut.Val

	for _, opt := range []struct {
		name string
		v    *Value
		sign float64
	}{
		{"W_in", b.workIn, +1},
		{"W_out", b.workOut, -1},
		{"Ex_loss", b.loss, -1},
	} {
		if opt.v == nil {
			continue
		}
		if err := RequireUnit(opt.name, *opt.v, UnitJoule); err != nil {
			return Value{}, err
		}
		total += opt.sign * opt.v.Val
	}

	if total < -destructionNoiseFloorJ {
		return Value{}, NewRefusal(KindNegativeExergyDestruction, "nonnegative_destruction", "Ex_dest",
			fmt.Sprintf("balance resolves to %g J", total))
	}
	if total < 0 {
		total = 0
	}
	return Derived(total, UnitJoule, "exergy destruction balance"), nil
}
