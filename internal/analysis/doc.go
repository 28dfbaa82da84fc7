// Package analysis characterises a recorded orbit from its telemetry log.
//
//   - [Summarize]: min, max, mean and spread of a column
//   - [DominantPeriod]: orbital period from the power spectrum
//   - [Crossings]: revolutions counted at a reference half-line from the planet
//   - [TrajectoryASCII]: the flown path as text
//
// Periods are measured in frames, the simulation's only unit of time.
package analysis
