package engine

// Record is one observed quantity at one stage during one step, the
// simulation's only output artifact. Records are append-only, ordered by
// step then stage position in the chain; two runs of the same scenario and
// chain produce identical record sequences.
type Record struct {
	Step      int
	TimeHours float64
	Stage     string
	Variable  string
	Value     float64
	Unit      string
	Source    SourceType
}

// Per-stage variables emitted every step. Loss models contribute their own
// keys (conversion_loss, standing_loss, exchanger_loss, ...) next to these.
const (
	VarEnergyIn        = "energy_in"
	VarEnergyOut       = "energy_out"
	VarExergyIn        = "exergy_in"
	VarExergyOut       = "exergy_out"
	VarExergyDelivered = "exergy_delivered" // DELIVER stages only
)
