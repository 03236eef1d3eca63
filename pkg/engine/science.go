package engine

import (
	"fmt"
	"sync"
)

// ScienceConfig is the frozen scientific accounting basis of a comparison:
// the functional unit every technology is normalized to, the tolerance the
// conservation identity is checked against, and the name of the delivery
// boundary. It is immutable (all fields private, exposed through read-only
// accessors) so no component can bend the comparison basis mid-run.
type ScienceConfig struct {
	functionalUnitJ     float64
	conservationRelTol  float64
	conservationAbsTolJ float64
	boundaryName        string
}

// Comparison basis: 1 MWh of useful heat delivered at the district-heating
// delivery boundary.
const functionalUnitJ = 3.6e9

// NewScienceConfig builds a config with explicit tolerances. Tests build
// fresh instances here instead of relying on the process default.
func NewScienceConfig(functionalUnitJoules, relTol, absTolJ float64, boundaryName string) (ScienceConfig, error) {
	if functionalUnitJoules <= 0 {
		return ScienceConfig{}, fmt.Errorf("science config: functional unit must be > 0, got %g J", functionalUnitJoules)
	}
	if relTol <= 0 || absTolJ <= 0 {
		return ScienceConfig{}, fmt.Errorf("science config: tolerances must be > 0, got rel %g, abs %g", relTol, absTolJ)
	}
	if boundaryName == "" {
		return ScienceConfig{}, fmt.Errorf("science config: boundary name must not be empty")
	}
	return ScienceConfig{
		functionalUnitJ:     functionalUnitJoules,
		conservationRelTol:  relTol,
		conservationAbsTolJ: absTolJ,
		boundaryName:        boundaryName,
	}, nil
}

// DefaultScienceConfig returns the standard basis: 1 MWh delivered heat,
// conservation checked at 1e-9 relative with a 1e-9 J absolute floor.
func DefaultScienceConfig() ScienceConfig {
	return ScienceConfig{
		functionalUnitJ:     functionalUnitJ,
		conservationRelTol:  1e-9,
		conservationAbsTolJ: 1e-9,
		boundaryName:        "district_heating_delivery_boundary",
	}
}

// FunctionalUnitJ returns the delivered-heat comparison basis in joules.
func (c ScienceConfig) FunctionalUnitJ() float64 { return c.functionalUnitJ }

// ConservationRelTol returns the relative tolerance for the conservation
// identity.
func (c ScienceConfig) ConservationRelTol() float64 { return c.conservationRelTol }

// ConservationAbsTolJ returns the absolute tolerance floor in joules, used
// when the system input exergy is itself near zero.
func (c ScienceConfig) ConservationAbsTolJ() float64 { return c.conservationAbsTolJ }

// BoundaryName returns the name of the delivery boundary the functional
// unit is measured at.
func (c ScienceConfig) BoundaryName() string { return c.boundaryName }

var (
	frozenMu  sync.Mutex
	frozenCfg *ScienceConfig
)

// Freeze installs cfg as the process-wide scientific configuration. It may
// be called at most once, at startup; a second call is an error, never a
// silent overwrite.
func Freeze(cfg ScienceConfig) error {
	frozenMu.Lock()
	defer frozenMu.Unlock()
	if frozenCfg != nil {
		return fmt.Errorf("science config: already frozen")
	}
	frozenCfg = &cfg
	return nil
}

// Frozen returns the process-wide configuration, or the default basis when
// none was frozen.
func Frozen() ScienceConfig {
	frozenMu.Lock()
	defer frozenMu.Unlock()
	if frozenCfg == nil {
		return DefaultScienceConfig()
	}
	return *frozenCfg
}
