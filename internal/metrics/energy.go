package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

// EnergyDrift is the largest relative change of specific orbital energy seen
// since the first observed tick. A conservative integrator keeps it near 0;
// semi-implicit Euler keeps it bounded on closed orbits.
type EnergyDrift struct {
	body     *physics.TwoBody
	baseline float64
	last     float64
	worst    float64
	seen     bool
}

func NewEnergyDrift(body *physics.TwoBody) *EnergyDrift {
	return &EnergyDrift{body: body}
}

func (*EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s sim.Snapshot) {
	e.last = e.body.Energy(s.Position, s.Velocity)
	if !e.seen {
		e.baseline, e.seen = e.last, true
		return
	}
	if e.baseline == 0 {
		return
	}
	if d := math.Abs((e.last - e.baseline) / e.baseline); d > e.worst {
		e.worst = d
	}
}

func (e *EnergyDrift) Value() float64 { return e.worst }

// Current is the most recent specific energy in display units.
func (e *EnergyDrift) Current() float64 { return e.last }

func (e *EnergyDrift) Reset() { *e = EnergyDrift{body: e.body} }
