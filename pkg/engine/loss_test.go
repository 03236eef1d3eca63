package engine

import (
	"math"
	"testing"
)

func dimless(v float64, label string) Value {
	return Assumed(v, UnitDimensionless, label)
}

func TestConversionLoss_Apply(t *testing.T) {
	l := ConversionLoss{Eta: dimless(0.9, "boiler efficiency")}
	out, losses := l.Apply(1000, 1)
	if out != 900 {
		t.Errorf("out = %g, want 900", out)
	}
	if losses["conversion_loss"] != 100 {
		t.Errorf("conversion_loss = %g, want 100", losses["conversion_loss"])
	}
}

func TestConversionLoss_Check(t *testing.T) {
	if err := (ConversionLoss{Eta: dimless(0.9, "eta")}).check("s"); err != nil {
		t.Errorf("valid eta rejected: %v", err)
	}
	if err := (ConversionLoss{Eta: dimless(0, "eta")}).check("s"); err == nil {
		t.Error("eta 0 accepted")
	}
	if err := (ConversionLoss{Eta: Assumed(0.9, "%", "eta")}).check("s"); err == nil {
		t.Error("percent unit accepted")
	}
	// Above unity stays constructible so the aggregator's integrity
	// check has something real to catch.
	if err := (ConversionLoss{Eta: dimless(1.5, "eta")}).check("s"); err != nil {
		t.Errorf("eta above 1 rejected at check: %v", err)
	}
}

func TestDecayLoss_Apply(t *testing.T) {
	l := DecayLoss{RatePerHour: Assumed(0.01, "1/h", "standing loss rate")}

	out, losses := l.Apply(1000, 1)
	if math.Abs(out-990) > 1e-9 {
		t.Errorf("out after 1 h = %g, want 990", out)
	}
	if math.Abs(losses["standing_loss"]-10) > 1e-9 {
		t.Errorf("standing_loss = %g, want 10", losses["standing_loss"])
	}

	// Step long enough to decay everything: retained floors at zero.
	out, losses = l.Apply(1000, 200)
	if out != 0 {
		t.Errorf("out after 200 h = %g, want 0", out)
	}
	if losses["standing_loss"] != 1000 {
		t.Errorf("standing_loss = %g, want 1000", losses["standing_loss"])
	}
}

func TestDecayLoss_Check(t *testing.T) {
	if err := (DecayLoss{RatePerHour: Assumed(-0.1, "1/h", "rate")}).check("s"); err == nil {
		t.Error("negative rate accepted")
	}
	if err := (DecayLoss{RatePerHour: dimless(0.1, "rate")}).check("s"); err == nil {
		t.Error("dimensionless rate accepted, want 1/h")
	}
}

func TestExchangerLoss_Apply(t *testing.T) {
	l := ExchangerLoss{Effectiveness: dimless(0.93, "hx effectiveness")}
	out, losses := l.Apply(1000, 1)
	if math.Abs(out-930) > 1e-9 {
		t.Errorf("out = %g, want 930", out)
	}
	if math.Abs(losses["exchanger_loss"]-70) > 1e-9 {
		t.Errorf("exchanger_loss = %g, want 70", losses["exchanger_loss"])
	}
}

func TestPassThrough_Apply(t *testing.T) {
	out, losses := PassThrough{}.Apply(1000, 1)
	if out != 1000 {
		t.Errorf("out = %g, want 1000", out)
	}
	if len(losses) != 0 {
		t.Errorf("losses = %v, want none", losses)
	}
}
