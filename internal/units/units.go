// Package units converts between physical units (km, km/s) and the display
// units the simulator integrates in.
//
// K is the only scale factor in the program. Scenario construction converts
// inputs to display units once; the telemetry recorder converts back for
// output. No other code scales.
package units

import "github.com/san-kum/orbitsim/internal/dynamo"

// K is display units per kilometre.
const K = 0.01

func ToDisplay(km float64) float64 { return km * K }

func ToPhysical(d float64) float64 { return d / K }

func VecToDisplay(v dynamo.Vec2) dynamo.Vec2 { return v.Scale(K) }

func VecToPhysical(v dynamo.Vec2) dynamo.Vec2 { return dynamo.Vec2{X: v.X / K, Y: v.Y / K} }

// AccelToPhysical converts an acceleration magnitude in display units per
// tick² to km/s².
func AccelToPhysical(a float64) float64 { return a / (K * K) }
