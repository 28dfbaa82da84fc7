// Package sim runs the two-body simulation loop.
//
// A [Loop] owns the spacecraft [State] and the telemetry recorder for one run.
// Each tick it polls the stop signal, computes gravity, integrates one
// semi-implicit Euler step, appends a telemetry row, hands the [Scene] to the
// renderer and throttles on the [Clock], in that order.
//
//	loop := sim.New(sim.Config{TelemetryPath: "simulation_data.csv"})
//	if err := loop.Start(desc); err != nil {
//	    return err
//	}
//	err := loop.Run(ctx)
//
// # Thread Safety
//
// Loop is not safe for concurrent use. Front ends that own their own event
// loop (bubbletea) call [Loop.Step] from that loop instead of [Loop.Run].
package sim
