package engine

import (
	"fmt"
	"sort"
)

// Scenario is the shared reference context for one comparison run: the
// reference environment temperature T0, the boundary temperature Tb at
// which heat counts as delivered, the declared delivery-boundary
// components, and any auxiliary inputs. A scenario is validated once at
// construction and never mutated afterwards; changed inputs produce a new
// scenario so prior and revised configurations can sit side by side.
//
// Tb is a single representative temperature. When the physical boundary is
// a temperature glide, the caller must reduce it to one representative
// value before construction; the reduction policy belongs in the value's
// label so it travels with the result.
type Scenario struct {
	name     string
	t0       *Value
	tb       *Value
	boundary []string // sorted, deduplicated component IDs
	aux      map[string]Value
}

// NewScenario constructs and validates a scenario. Validation runs here,
// at the earliest point where the inputs exist; a scenario that fails
// validation is never returned.
func NewScenario(name string, t0, tb *Value, boundaryElements []string, aux map[string]Value) (*Scenario, error) {
	sc := &Scenario{
		name: name,
		t0:   copyValue(t0),
		tb:   copyValue(tb),
		aux:  make(map[string]Value, len(aux)),
	}
	seen := make(map[string]bool, len(boundaryElements))
	for _, id := range boundaryElements {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		sc.boundary = append(sc.boundary, id)
	}
	sort.Strings(sc.boundary)
	for k, v := range aux {
		sc.aux[k] = v
	}

	if err := sc.validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Scenario) validate() error {
	if err := RequirePresent("T0", s.t0); err != nil {
		return err
	}
	if err := RequirePresent("Tb", s.tb); err != nil {
		return err
	}
	if err := RequireBoundaryValidity(*s.t0, *s.tb); err != nil {
		return err
	}
	for _, name := range s.auxNames() {
		v := s.aux[name]
		if err := RequireComplete("aux."+name, v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scenario) Name() string { return s.name }

// T0 returns the reference environment temperature.
func (s *Scenario) T0() Value { return *s.t0 }

// Tb returns the delivery boundary temperature.
func (s *Scenario) Tb() Value { return *s.tb }

// BoundaryElements returns the declared boundary component IDs, sorted.
func (s *Scenario) BoundaryElements() []string {
	out := make([]string, len(s.boundary))
	copy(out, s.boundary)
	return out
}

// HasBoundaryElement reports whether the component is inside the declared
// delivery boundary.
func (s *Scenario) HasBoundaryElement(id string) bool {
	i := sort.SearchStrings(s.boundary, id)
	return i < len(s.boundary) && s.boundary[i] == id
}

// Aux returns the named auxiliary input, or a MissingInput refusal naming
// it when absent.
func (s *Scenario) Aux(name string) (Value, error) {
	v, ok := s.aux[name]
	if !ok {
		return Value{}, NewRefusal(KindMissingInput, "require_present", "aux."+name,
			fmt.Sprintf("scenario %q declares no such auxiliary input", s.name))
	}
	return v, nil
}

func (s *Scenario) auxNames() []string {
	names := make([]string, 0, len(s.aux))
	for k := range s.aux {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func copyValue(v *Value) *Value {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}
