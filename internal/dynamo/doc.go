// Package dynamo provides the core value types shared by the two-body
// simulator:
//
//   - [Vec2]: planar vector in either display or physical units
//   - [SimulationError]: failure annotated with the frame it happened on
//
// Vectors carry no unit tag. Conversion between display and physical units
// happens only in the scenario builder (input) and the telemetry recorder
// (output); see package units.
package dynamo
