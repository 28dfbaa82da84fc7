package physics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

const (
	// GScaled is the gravitational constant in display units. It is paired
	// with MassScale and units.K so that accelerations stay in a usable
	// range at the default surface size; it is not an SI value.
	GScaled = 6.67430e-11

	// MassScale is applied to the planet mass before it enters GravityForce.
	MassScale = 1e-12
)

// GravityForce returns the attraction on body A towards body B, along with
// the centre-to-centre distance. The force magnitude is
// GScaled*massA*massB/d² and its direction is the unit vector from A to B.
// A force that overflows returns dynamo.ErrNonFinite.
func GravityForce(posA, posB dynamo.Vec2, massA, massB float64) (dynamo.Vec2, float64, error) {
	r := posB.Sub(posA)
	distance := r.Norm()
	if distance == 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return dynamo.Vec2{}, distance, dynamo.ErrDegenerateGeometry
	}

	f := GScaled * massA * massB / (distance * distance)
	force := dynamo.Vec2{X: f * (r.X / distance), Y: f * (r.Y / distance)}
	if !force.IsValid() {
		return dynamo.Vec2{}, distance, dynamo.ErrNonFinite
	}
	return force, distance, nil
}
