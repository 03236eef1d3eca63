package engine

import "fmt"

// StageKind is the closed set of generic transformations a storage path is
// built from. Technology variation never branches on a vendor or technology
// name: it is expressed entirely through loss-model parameters, carriers,
// and input values attached to these four kinds.
type StageKind string

const (
	StageCharge  StageKind = "CHARGE"
	StageStore   StageKind = "STORE"
	StageConvert StageKind = "CONVERT"
	StageDeliver StageKind = "DELIVER"
)

// Valid reports whether k is one of the four stage kinds.
func (k StageKind) Valid() bool {
	switch k {
	case StageCharge, StageStore, StageConvert, StageDeliver:
		return true
	}
	return false
}

// CarrierClass distinguishes how energy crossing a stage port carries
// exergy: work is pure exergy, heat is discounted by the Carnot factor at
// its temperature, chemical carriers use a declared quality.
type CarrierClass string

const (
	CarrierElectricity CarrierClass = "electricity"
	CarrierHeat        CarrierClass = "heat"
	CarrierChemical    CarrierClass = "chemical"
)

// Carrier types a stage port. A heat carrier either names its temperature
// or is pinned to the scenario's delivery boundary (temp == nil), resolved
// against Tb at run time.
type Carrier struct {
	Class   CarrierClass
	temp    *Value // heat only; nil means "at the delivery boundary"
	quality *Value // chemical only; dimensionless exergy-to-energy ratio
}

// Electricity returns a work carrier (exergy factor 1).
func Electricity() Carrier {
	return Carrier{Class: CarrierElectricity}
}

// HeatAt returns a heat carrier at an explicit temperature.
func HeatAt(temp Value) Carrier {
	return Carrier{Class: CarrierHeat, temp: &temp}
}

// HeatAtBoundary returns a heat carrier pinned to the scenario's delivery
// boundary temperature Tb.
func HeatAtBoundary() Carrier {
	return Carrier{Class: CarrierHeat}
}

// Chemical returns a chemical carrier with the given exergy quality
// (dimensionless, e.g. ~0.83 for hydrogen LHV-based accounting).
func Chemical(quality Value) Carrier {
	return Carrier{Class: CarrierChemical, quality: &quality}
}

// check validates the carrier's declared parameters. Pure; called at chain
// finalization so a malformed carrier never reaches a run.
func (c Carrier) check(port string) error {
	switch c.Class {
	case CarrierElectricity:
		return nil
	case CarrierHeat:
		if c.temp == nil {
			return nil // resolved against Tb at run time
		}
		return RequirePositiveTemperature(port+".temperature", *c.temp)
	case CarrierChemical:
		if c.quality == nil {
			return NewRefusal(KindMissingInput, "require_present", port+".quality",
				"chemical carrier declares no exergy quality")
		}
		if err := RequireUnit(port+".quality", *c.quality, UnitDimensionless); err != nil {
			return err
		}
		if q := c.quality.Val; q <= 0 || q > 1 {
			return fmt.Errorf("carrier %s: chemical quality must be in (0, 1], got %g", port, q)
		}
		return nil
	}
	return fmt.Errorf("carrier %s: unknown class %q", port, c.Class)
}

// factor returns the exergy-to-energy ratio of the carrier under the
// scenario's reference temperature. For heat this is the Carnot factor
// 1 - T0/T; temperatures at or below T0 refuse, the same rule the exergy
// core enforces.
func (c Carrier) factor(sc *Scenario) (float64, error) {
	switch c.Class {
	case CarrierElectricity:
		return 1.0, nil
	case CarrierHeat:
		t := sc.Tb()
		if c.temp != nil {
			t = *c.temp
		}
		if err := RequireBoundaryValidity(sc.T0(), t); err != nil {
			return 0, err
		}
		return 1.0 - sc.T0().Val/t.Val, nil
	case CarrierChemical:
		return c.quality.Val, nil
	}
	return 0, fmt.Errorf("unknown carrier class %q", c.Class)
}

// Stage is one generic transformation in a storage path: energy enters on
// the In carrier, the loss model splits it into output and attributed
// losses, and the remainder leaves on the Out carrier. Losses belong to the
// stage where they physically occur, never upstream or downstream, so the
// aggregator can reconstruct a full balance without double counting.
type Stage struct {
	Kind      StageKind
	Name      string
	Component string // physical component ID, checked against the scenario boundary
	In        Carrier
	Out       Carrier
	Loss      LossModel
	Inputs    map[string]Value // declared stage inputs, provenance-carrying
}

// check validates the stage definition. Called at chain finalization.
func (st Stage) check() error {
	if st.Name == "" {
		return NewRefusal(KindMissingInput, "require_present", "stage.name",
			"stage declares no name")
	}
	if !st.Kind.Valid() {
		return fmt.Errorf("stage %s: unknown kind %q", st.Name, st.Kind)
	}
	if st.Loss == nil {
		return NewRefusal(KindMissingInput, "require_present", st.Name+".loss_model",
			"stage declares no loss model")
	}
	if err := st.Loss.check(st.Name); err != nil {
		return err
	}
	if err := st.In.check(st.Name + ".in"); err != nil {
		return err
	}
	if err := st.Out.check(st.Name + ".out"); err != nil {
		return err
	}
	for name, v := range st.Inputs {
		if err := RequireComplete(st.Name+".inputs."+name, v); err != nil {
			return err
		}
	}
	return nil
}
