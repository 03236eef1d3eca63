package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRefusal_MatchesKindSentinel(t *testing.T) {
	cases := []struct {
		kind Kind
		want error
	}{
		{KindMissingInput, ErrMissingInput},
		{KindInvalidTemperatureBoundary, ErrInvalidTemperatureBoundary},
		{KindIncompleteChain, ErrIncompleteChain},
		{KindCarrierDiscontinuity, ErrCarrierDiscontinuity},
		{KindMissingBoundaryElement, ErrMissingBoundaryElement},
		{KindZeroInputExergy, ErrZeroInputExergy},
		{KindAmbiguousUnit, ErrAmbiguousUnit},
		{KindWrongUnit, ErrWrongUnit},
		{KindNegativeExergyDestruction, ErrNegativeExergyDestruction},
		{KindComputationIntegrity, ErrComputationIntegrity},
	}
	for _, tc := range cases {
		err := NewRefusal(tc.kind, "rule", "field", "")
		if !errors.Is(err, tc.want) {
			t.Errorf("refusal of kind %s does not match its sentinel", tc.kind)
		}
	}
}

func TestRefusal_DoesNotMatchOtherSentinels(t *testing.T) {
	err := NewRefusal(KindMissingInput, "require_present", "T0", "")
	if errors.Is(err, ErrWrongUnit) {
		t.Error("missing_input refusal matched ErrWrongUnit")
	}
}

func TestRefusal_SurvivesWrapping(t *testing.T) {
	inner := NewRefusal(KindAmbiguousUnit, "unambiguous_energy", "charge_energy", "")
	wrapped := fmt.Errorf("load scenario: %w", inner)

	if !errors.Is(wrapped, ErrAmbiguousUnit) {
		t.Error("wrapped refusal lost sentinel identity")
	}
	r, ok := AsRefusal(wrapped)
	if !ok {
		t.Fatal("AsRefusal failed on wrapped refusal")
	}
	if r.Field != "charge_energy" {
		t.Errorf("Field = %q, want %q", r.Field, "charge_energy")
	}
}

func TestRefusal_At_ReturnsAnnotatedCopy(t *testing.T) {
	orig := NewRefusal(KindComputationIntegrity, "finite_energy", "boiler.energy_out", "")
	at := orig.At(7, "boiler")

	if at.Step != 7 || at.Stage != "boiler" {
		t.Errorf("At() = step %d stage %q, want step 7 stage boiler", at.Step, at.Stage)
	}
	if orig.Step != -1 || orig.Stage != "" {
		t.Errorf("At() mutated original: step %d, stage %q", orig.Step, orig.Stage)
	}
}

func TestRefusal_ErrorMentionsRunPosition(t *testing.T) {
	r := NewRefusal(KindComputationIntegrity, "finite_energy", "x", "").At(3, "boiler")
	msg := r.Error()
	if !strings.Contains(msg, "step 3") || !strings.Contains(msg, "boiler") {
		t.Errorf("Error() = %q, want step and stage present", msg)
	}
}

func TestAsRefusal_PlainError(t *testing.T) {
	if _, ok := AsRefusal(errors.New("disk full")); ok {
		t.Error("AsRefusal matched a plain error")
	}
}
