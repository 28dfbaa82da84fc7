package physics

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
)

// TwoBody is a spacecraft orbiting a planet that stays fixed at Center.
// PlanetMass is the raw mass in kg; the display-scale factor is applied
// internally.
type TwoBody struct {
	Center         dynamo.Vec2
	PlanetMass     float64
	SpacecraftMass float64
}

func NewTwoBody(center dynamo.Vec2, planetMass, spacecraftMass float64) *TwoBody {
	return &TwoBody{Center: center, PlanetMass: planetMass, SpacecraftMass: spacecraftMass}
}

func (tb *TwoBody) scaledPlanetMass() float64 { return tb.PlanetMass * MassScale }

// Force is the pull on the spacecraft at pos.
func (tb *TwoBody) Force(pos dynamo.Vec2) (dynamo.Vec2, float64, error) {
	return GravityForce(pos, tb.Center, tb.SpacecraftMass, tb.scaledPlanetMass())
}

// Mu is the gravitational parameter of the planet in display units.
func (tb *TwoBody) Mu() float64 { return GScaled * tb.scaledPlanetMass() }

// Energy returns the specific orbital energy v²/2 - mu/r.
func (tb *TwoBody) Energy(pos, vel dynamo.Vec2) float64 {
	r := pos.Sub(tb.Center).Norm()
	if r == 0 {
		return 0
	}
	return 0.5*vel.Dot(vel) - tb.Mu()/r
}

// AngularMomentum returns the specific angular momentum about the planet.
func (tb *TwoBody) AngularMomentum(pos, vel dynamo.Vec2) float64 {
	return pos.Sub(tb.Center).Cross(vel)
}
