package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/units"
)

// Periapsis is the closest observed approach to the planet centre, in km.
type Periapsis struct {
	min     float64
	samples int
}

func NewPeriapsis() *Periapsis { return &Periapsis{} }

func (p *Periapsis) Name() string { return "periapsis_km" }

func (p *Periapsis) Observe(s sim.Snapshot) {
	d := units.ToPhysical(s.Distance)
	if p.samples == 0 || d < p.min {
		p.min = d
	}
	p.samples++
}

func (p *Periapsis) Value() float64 { return p.min }

func (p *Periapsis) Reset() {
	p.min = 0
	p.samples = 0
}

// Apoapsis is the farthest observed distance from the planet centre, in km.
type Apoapsis struct {
	max float64
}

func NewApoapsis() *Apoapsis { return &Apoapsis{} }

func (a *Apoapsis) Name() string { return "apoapsis_km" }

func (a *Apoapsis) Observe(s sim.Snapshot) {
	a.max = math.Max(a.max, units.ToPhysical(s.Distance))
}

func (a *Apoapsis) Value() float64 { return a.max }

func (a *Apoapsis) Reset() { a.max = 0 }

type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed_km_s" }

func (m *MaxSpeed) Observe(s sim.Snapshot) {
	m.max = math.Max(m.max, s.Record.Speed)
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// Standard returns the metrics attached to every run.
func Standard(energy *EnergyDrift) []sim.Metric {
	return []sim.Metric{energy, NewPeriapsis(), NewApoapsis(), NewMaxSpeed()}
}
