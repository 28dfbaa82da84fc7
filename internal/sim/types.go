package sim

import (
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/telemetry"
)

// Phase is the lifecycle position of a Loop.
type Phase int

const (
	AwaitingScenario Phase = iota
	Running
	Stopped
)

func (p Phase) String() string {
	switch p {
	case AwaitingScenario:
		return "awaiting_scenario"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// State is the mutable kinematic state owned by the loop. Values are in
// display units.
type State struct {
	Frame            int
	Position         dynamo.Vec2
	Velocity         dynamo.Vec2
	LastAcceleration dynamo.Vec2
}

const (
	PlanetDrawRadius     = 40
	SpacecraftDrawRadius = 5
)

// Circle is a filled circle in integer surface coordinates.
type Circle struct {
	X, Y   int
	Radius int
}

// Scene is what a renderer draws for one tick.
type Scene struct {
	Planet     Circle
	Spacecraft Circle
}

// Snapshot describes one completed tick.
type Snapshot struct {
	Frame        int
	Position     dynamo.Vec2
	Velocity     dynamo.Vec2
	Acceleration dynamo.Vec2
	Force        dynamo.Vec2
	Distance     float64
	Speed        float64
	AccelChange  float64
	Record       telemetry.Record
	Scene        Scene
	WriteLatency time.Duration
}

// Renderer draws a scene. Render errors are logged and do not stop the run.
type Renderer interface {
	Render(s Scene) error
}

// Clock throttles the loop between ticks.
type Clock interface {
	Wait()
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot)
}
