// Package physics provides the gravity model for the two-body simulator.
//
// [GravityForce] computes the Newtonian attraction between two point masses
// in display units. [TwoBody] binds it to a fixed planet and adds the
// orbital invariants (specific energy, angular momentum) used to monitor
// integration drift:
//
//	tb := physics.NewTwoBody(center, 5.972e24, 1000)
//	force, distance, err := tb.Force(pos)
//
// Coincident bodies are a hard failure: [GravityForce] returns
// [dynamo.ErrDegenerateGeometry] instead of clamping the distance.
package physics
