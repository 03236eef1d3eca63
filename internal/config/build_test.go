package config

import (
	"context"
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v3"

	"exergy/pkg/engine"
)

func loadScenario(t *testing.T, name string) *engine.Scenario {
	t.Helper()
	def, err := LoadScenarioDef(name)
	if err != nil {
		t.Fatalf("LoadScenarioDef(%s): %v", name, err)
	}
	sc, err := BuildScenario(def)
	if err != nil {
		t.Fatalf("BuildScenario(%s): %v", name, err)
	}
	return sc
}

func TestBuildScenario_NormalizesAuxEnergy(t *testing.T) {
	sc := loadScenario(t, "danish-winter")

	if sc.T0().Val != 278.15 {
		t.Errorf("T0 = %g K, want 278.15", sc.T0().Val)
	}
	feed, err := sc.Aux("charge_energy")
	if err != nil {
		t.Fatalf("Aux(charge_energy): %v", err)
	}
	// 1 MWh_e in the YAML arrives in joules with provenance intact.
	if feed.Val != 3.6e9 || feed.Unit != engine.UnitJoule {
		t.Errorf("charge_energy = %g %s, want 3.6e9 J", feed.Val, feed.Unit)
	}
	if feed.Source != engine.SourceExternal {
		t.Errorf("charge_energy source = %q, want external", feed.Source)
	}
}

func TestBuildScenario_RefusesAmbiguousAuxUnit(t *testing.T) {
	def := &ScenarioDef{
		Name: "bad",
		T0:   &ValueDef{Value: 280, Unit: "K", Source: "measured", Label: "ambient"},
		Tb:   &ValueDef{Value: 350, Unit: "K", Source: "assumed", Label: "supply"},
		Aux: map[string]ValueDef{
			"charge_energy": {Value: 1, Unit: "MWh", Source: "external", Label: "draw"},
		},
	}
	_, err := BuildScenario(def)
	if !errors.Is(err, engine.ErrAmbiguousUnit) {
		t.Errorf("got %v, want ambiguous_unit refusal", err)
	}
}

func TestBuildScenario_RefusesMissingT0(t *testing.T) {
	def := &ScenarioDef{
		Name: "bad",
		Tb:   &ValueDef{Value: 350, Unit: "K", Source: "assumed", Label: "supply"},
	}
	_, err := BuildScenario(def)
	if !errors.Is(err, engine.ErrMissingInput) {
		t.Errorf("got %v, want missing_input refusal", err)
	}
}

func TestBuildChain_EmbeddedChainsRun(t *testing.T) {
	sc := loadScenario(t, "danish-winter")
	feed, err := sc.Aux("charge_energy")
	if err != nil {
		t.Fatal(err)
	}
	axis, err := engine.NewAxis(1, 24)
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range ListChains() {
		def, err := LoadChainDef(name)
		if err != nil {
			t.Fatalf("LoadChainDef(%s): %v", name, err)
		}
		chain, err := BuildChain(def, sc)
		if err != nil {
			t.Fatalf("BuildChain(%s): %v", name, err)
		}

		res, err := engine.Run(context.Background(), sc, chain, axis, feed,
			engine.WithScience(engine.DefaultScienceConfig()))
		if err != nil {
			t.Fatalf("Run(%s): %v", name, err)
		}

		residual := res.Totals.SystemInputExergyJ - res.Totals.DeliveredExergyJ - res.Totals.TotalDestructionJ
		if math.Abs(residual) > 1e-9*res.Totals.SystemInputExergyJ {
			t.Errorf("%s: conservation residual %g J", name, residual)
		}
		if res.Totals.Efficiency <= 0 || res.Totals.Efficiency >= 1 {
			t.Errorf("%s: efficiency = %g, want in (0, 1)", name, res.Totals.Efficiency)
		}
	}
}

func TestBuildChain_PitBeatsHydrogenOnExergy(t *testing.T) {
	// Direct heat storage should waste far less available work than the
	// power-to-hydrogen-to-heat round trip under the same scenario.
	sc := loadScenario(t, "danish-winter")
	feed, _ := sc.Aux("charge_energy")
	axis, _ := engine.NewAxis(1, 24)

	run := func(name string) *engine.RunResult {
		def, err := LoadChainDef(name)
		if err != nil {
			t.Fatal(err)
		}
		chain, err := BuildChain(def, sc)
		if err != nil {
			t.Fatal(err)
		}
		res, err := engine.Run(context.Background(), sc, chain, axis, feed,
			engine.WithScience(engine.DefaultScienceConfig()))
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	pit := run("pit-storage")
	h2 := run("power-to-hydrogen")
	if pit.Totals.Efficiency <= h2.Totals.Efficiency {
		t.Errorf("pit efficiency %g <= hydrogen efficiency %g",
			pit.Totals.Efficiency, h2.Totals.Efficiency)
	}
}

func TestCarrierDef_UnmarshalShorthand(t *testing.T) {
	var c CarrierDef
	if err := yaml.Unmarshal([]byte(`electricity`), &c); err != nil {
		t.Fatalf("unmarshal electricity: %v", err)
	}
	if !c.Electricity {
		t.Error("electricity shorthand not set")
	}

	var b CarrierDef
	if err := yaml.Unmarshal([]byte(`heat_at_boundary`), &b); err != nil {
		t.Fatalf("unmarshal heat_at_boundary: %v", err)
	}
	if !b.HeatAtBoundary {
		t.Error("heat_at_boundary shorthand not set")
	}

	var bad CarrierDef
	if err := yaml.Unmarshal([]byte(`plasma`), &bad); err == nil {
		t.Error("unknown shorthand accepted")
	}

	var h CarrierDef
	doc := "heat: {value: 358.15, unit: K, source: assumed, label: \"pit top\"}"
	if err := yaml.Unmarshal([]byte(doc), &h); err != nil {
		t.Fatalf("unmarshal heat map: %v", err)
	}
	if h.Heat == nil || h.Heat.Value != 358.15 {
		t.Errorf("heat carrier = %+v, want 358.15 K", h.Heat)
	}
}

func TestCarrierDef_BuildRequiresExactlyOne(t *testing.T) {
	if _, err := (CarrierDef{}).Build("in"); err == nil {
		t.Error("empty carrier accepted")
	}
	two := CarrierDef{Electricity: true, Heat: &ValueDef{Value: 350, Unit: "K", Source: "assumed", Label: "t"}}
	if _, err := two.Build("in"); err == nil {
		t.Error("doubly-set carrier accepted")
	}
}

func TestLossDef_Build(t *testing.T) {
	eta := &ValueDef{Value: 0.9, Unit: "-", Source: "measured", Label: "eta"}

	if _, err := (LossDef{Model: "conversion", Eta: eta}).Build("s"); err != nil {
		t.Errorf("conversion: %v", err)
	}
	if _, err := (LossDef{Model: "passthrough"}).Build("s"); err != nil {
		t.Errorf("passthrough: %v", err)
	}
	if _, err := (LossDef{Model: "conversion"}).Build("s"); !errors.Is(err, engine.ErrMissingInput) {
		t.Error("conversion without eta accepted")
	}
	if _, err := (LossDef{Model: "entropy-reverser"}).Build("s"); err == nil {
		t.Error("unknown model accepted")
	}
}

func TestValueDef_Build(t *testing.T) {
	good := ValueDef{Value: 278.15, Unit: "K", Source: "measured", Label: "ambient"}
	v, err := good.Build("T0")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if v.Val != 278.15 || v.Source != engine.SourceMeasured {
		t.Errorf("built value = %+v", v)
	}

	bad := ValueDef{Value: 278.15, Unit: "K", Source: "estimated", Label: "ambient"}
	if _, err := bad.Build("T0"); !errors.Is(err, engine.ErrMissingInput) {
		t.Errorf("unknown source accepted: %v", err)
	}
}
