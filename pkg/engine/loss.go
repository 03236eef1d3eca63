package engine

import "fmt"

// LossModel splits the energy entering a stage during one step into the
// stage's primary output and explicitly named losses. Models are data: the
// closed set below is parameterized by provenance-carrying values, and no
// model knows which technology it stands for.
//
// Apply must be pure. Loss keys become time-series variable names, so they
// are lowercase snake_case by convention.
type LossModel interface {
	// Apply transforms inJ joules entering the stage over a step of
	// dtHours, returning the output energy and per-key losses in joules.
	Apply(inJ, dtHours float64) (outJ float64, losses map[string]float64)
	// check validates the model's parameters; stage names the owner for
	// refusal context.
	check(stage string) error
}

// ConversionLoss models a single-pass energy conversion with efficiency
// Eta: out = in * eta, the remainder attributed as conversion_loss.
// An eta above 1 is constructible on purpose; a non-conserving model is
// the aggregator's integrity check's job to catch, not a scenario error.
type ConversionLoss struct {
	Eta Value
}

func (l ConversionLoss) Apply(inJ, _ float64) (float64, map[string]float64) {
	out := inJ * l.Eta.Val
	return out, map[string]float64{"conversion_loss": inJ - out}
}

func (l ConversionLoss) check(stage string) error {
	if err := RequireUnit(stage+".eta", l.Eta, UnitDimensionless); err != nil {
		return err
	}
	if l.Eta.Val <= 0 {
		return fmt.Errorf("stage %s: conversion efficiency must be > 0, got %g", stage, l.Eta.Val)
	}
	return nil
}

// DecayLoss models standing losses of a holding stage: a fixed fraction of
// the stored energy is lost per hour, attributed as standing_loss. The
// retained fraction is floored at zero for long steps.
type DecayLoss struct {
	RatePerHour Value
}

func (l DecayLoss) Apply(inJ, dtHours float64) (float64, map[string]float64) {
	retained := 1.0 - l.RatePerHour.Val*dtHours
	if retained < 0 {
		retained = 0
	}
	out := inJ * retained
	return out, map[string]float64{"standing_loss": inJ - out}
}

func (l DecayLoss) check(stage string) error {
	if err := RequireUnit(stage+".rate_per_hour", l.RatePerHour, "1/h"); err != nil {
		return err
	}
	if l.RatePerHour.Val < 0 {
		return fmt.Errorf("stage %s: decay rate must be >= 0, got %g", stage, l.RatePerHour.Val)
	}
	return nil
}

// ExchangerLoss models a heat exchanger with the given effectiveness:
// out = in * effectiveness, the remainder attributed as exchanger_loss.
type ExchangerLoss struct {
	Effectiveness Value
}

func (l ExchangerLoss) Apply(inJ, _ float64) (float64, map[string]float64) {
	out := inJ * l.Effectiveness.Val
	return out, map[string]float64{"exchanger_loss": inJ - out}
}

func (l ExchangerLoss) check(stage string) error {
	if err := RequireUnit(stage+".effectiveness", l.Effectiveness, UnitDimensionless); err != nil {
		return err
	}
	if e := l.Effectiveness.Val; e <= 0 {
		return fmt.Errorf("stage %s: exchanger effectiveness must be > 0, got %g", stage, e)
	}
	return nil
}

// PassThrough forwards energy unchanged with no losses. Useful for ideal
// reference stages in comparisons.
type PassThrough struct{}

func (PassThrough) Apply(inJ, _ float64) (float64, map[string]float64) {
	return inJ, map[string]float64{}
}

func (PassThrough) check(string) error { return nil }
