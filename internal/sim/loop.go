package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/san-kum/orbitsim/internal/telemetry"
)

// Config wires a Loop to its collaborators. Only TelemetryPath is required.
type Config struct {
	TelemetryPath string
	Renderer      Renderer
	Clock         Clock
	// StopSignal is polled once at the top of every tick.
	StopSignal func() bool
	Logger     log.Logger
}

// Loop drives one simulation run: AwaitingScenario, then Running after
// Start, then Stopped. A stopped loop cannot be restarted.
type Loop struct {
	cfg       Config
	phase     Phase
	err       error
	desc      scenario.Descriptor
	state     State
	body      *physics.TwoBody
	integ     *integrators.SemiImplicitEuler
	recorder  *telemetry.Recorder
	logger    log.Logger
	metrics   []Metric
	observers []Observer
}

func New(cfg Config) *Loop {
	if cfg.TelemetryPath == "" {
		cfg.TelemetryPath = telemetry.DefaultPath
	}
	if cfg.Clock == nil {
		cfg.Clock = Unthrottled{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Loop{
		cfg:       cfg,
		phase:     AwaitingScenario,
		integ:     integrators.NewSemiImplicitEuler(),
		logger:    log.With(logger, "subsys", "sim"),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) Phase() Phase                    { return l.phase }
func (l *Loop) State() State                    { return l.state }
func (l *Loop) Descriptor() scenario.Descriptor { return l.desc }

// Err is the cause of an error-terminal stop, or nil.
func (l *Loop) Err() error { return l.err }

// Start accepts the scenario, truncates the telemetry log and moves to
// Running.
func (l *Loop) Start(desc scenario.Descriptor) error {
	if l.phase != AwaitingScenario {
		return fmt.Errorf("start in phase %s: %w", l.phase, dynamo.ErrInvalidPhase)
	}

	rec, err := telemetry.Create(l.cfg.TelemetryPath)
	if err != nil {
		return l.fail(err)
	}

	l.desc = desc
	l.recorder = rec
	l.body = physics.NewTwoBody(desc.PlanetPosition, desc.PlanetMass, desc.SpacecraftMass)
	l.state = State{Position: desc.Position, Velocity: desc.Velocity}
	for _, m := range l.metrics {
		m.Reset()
	}
	l.phase = Running

	level.Info(l.logger).Log("msg", "run started", "scenario", desc.Name,
		"telemetry", rec.Path(), "position", desc.Position, "velocity", desc.Velocity)
	return nil
}

// Step advances exactly one tick: force, integration, telemetry, render.
// Any error is fatal and leaves the loop Stopped.
func (l *Loop) Step() (Snapshot, error) {
	if l.phase != Running {
		return Snapshot{}, fmt.Errorf("step in phase %s: %w", l.phase, dynamo.ErrInvalidPhase)
	}

	force, distance, err := l.body.Force(l.state.Position)
	if err != nil {
		return Snapshot{}, l.fail(err)
	}

	pos, vel, acc := l.integ.Step(l.state.Position, l.state.Velocity, force, l.desc.SpacecraftMass)
	speed := vel.Norm()
	accelChange := acc.Sub(l.state.LastAcceleration).Norm()
	if !pos.IsValid() || !vel.IsValid() || math.IsInf(speed, 0) || math.IsNaN(accelChange) || math.IsInf(accelChange, 0) {
		return Snapshot{}, l.fail(dynamo.ErrNonFinite)
	}

	rec := telemetry.RecordFrom(l.state.Frame, pos, vel, force, distance, speed, accelChange)
	start := time.Now()
	if err := l.recorder.Append(rec); err != nil {
		return Snapshot{}, l.fail(err)
	}
	latency := time.Since(start)

	l.state.Position, l.state.Velocity, l.state.LastAcceleration = pos, vel, acc

	scene := l.Scene()
	snap := Snapshot{
		Frame:        l.state.Frame,
		Position:     pos,
		Velocity:     vel,
		Acceleration: acc,
		Force:        force,
		Distance:     distance,
		Speed:        speed,
		AccelChange:  accelChange,
		Record:       rec,
		Scene:        scene,
		WriteLatency: latency,
	}
	for _, m := range l.metrics {
		m.Observe(snap)
	}
	// observers see the frame before it is drawn so overlays stay current
	for _, obs := range l.observers {
		obs.OnStep(snap)
	}
	if l.cfg.Renderer != nil {
		if err := l.cfg.Renderer.Render(scene); err != nil {
			level.Warn(l.logger).Log("msg", "render failed", "frame", snap.Frame, "err", err)
		}
	}
	l.state.Frame++
	return snap, nil
}

// Run ticks until ctx is cancelled, the stop signal fires, or a step fails.
// A requested stop returns nil.
func (l *Loop) Run(ctx context.Context) error {
	if l.phase != Running {
		return fmt.Errorf("run in phase %s: %w", l.phase, dynamo.ErrInvalidPhase)
	}

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return nil
		default:
		}
		if l.cfg.StopSignal != nil && l.cfg.StopSignal() {
			l.Stop()
			return nil
		}

		if _, err := l.Step(); err != nil {
			return err
		}
		l.cfg.Clock.Wait()
	}
}

// Stop moves the loop to Stopped. Calling it again is a no-op.
func (l *Loop) Stop() {
	if l.phase == Stopped {
		return
	}
	l.phase = Stopped
	level.Info(l.logger).Log("msg", "run stopped", "frames", l.state.Frame)
}

func (l *Loop) fail(err error) error {
	wrapped := &dynamo.SimulationError{Frame: l.state.Frame, Wrapped: err}
	l.err = wrapped
	l.phase = Stopped
	level.Error(l.logger).Log("msg", "run aborted", "frame", l.state.Frame, "err", err)
	return wrapped
}

// Scene returns the current draw coordinates, rounded to whole surface units.
func (l *Loop) Scene() Scene {
	return Scene{
		Planet: Circle{
			X:      round(l.desc.PlanetPosition.X),
			Y:      round(l.desc.PlanetPosition.Y),
			Radius: PlanetDrawRadius,
		},
		Spacecraft: Circle{
			X:      round(l.state.Position.X),
			Y:      round(l.state.Position.Y),
			Radius: SpacecraftDrawRadius,
		},
	}
}

// Metrics returns the current value of every registered metric.
func (l *Loop) Metrics() map[string]float64 {
	out := make(map[string]float64, len(l.metrics))
	for _, m := range l.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func round(v float64) int { return int(math.Round(v)) }
