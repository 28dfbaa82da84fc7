package integrators

import "github.com/san-kum/orbitsim/internal/dynamo"

// SemiImplicitEuler advances one fixed tick: velocity first from the current
// force, then position from the updated velocity. The step is one frame and
// is not scaled by a dt.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

// Step returns the new position and velocity plus the acceleration that was
// applied. mass must be non-zero.
func (e *SemiImplicitEuler) Step(pos, vel, force dynamo.Vec2, mass float64) (dynamo.Vec2, dynamo.Vec2, dynamo.Vec2) {
	acc := dynamo.Vec2{X: force.X / mass, Y: force.Y / mass}
	vel = vel.Add(acc)
	pos = pos.Add(vel)
	return pos, vel, acc
}
