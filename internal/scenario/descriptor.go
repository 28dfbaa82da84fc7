package scenario

import (
	"fmt"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/units"
)

// Descriptor is the full set of initial conditions for one run. Positions and
// velocities are in display units; Position is absolute on the drawing
// surface. PlanetRadius stays in km. Pass it by value; nothing mutates it
// after Build.
type Descriptor struct {
	Name           string
	PlanetMass     float64
	PlanetRadius   float64
	SpacecraftMass float64
	PlanetPosition dynamo.Vec2
	Position       dynamo.Vec2
	Velocity       dynamo.Vec2
}

// Build validates a physical-unit scenario and converts it to display units
// around center.
func Build(sc config.ScenarioConfig, center dynamo.Vec2) (Descriptor, error) {
	if err := Validate(sc); err != nil {
		return Descriptor{}, err
	}

	offset := units.VecToDisplay(dynamo.V(sc.Position.X, sc.Position.Y))
	return Descriptor{
		Name:           sc.Name,
		PlanetMass:     sc.PlanetMass,
		PlanetRadius:   sc.PlanetRadius,
		SpacecraftMass: sc.SpacecraftMass,
		PlanetPosition: center,
		Position:       center.Add(offset),
		Velocity:       units.VecToDisplay(dynamo.V(sc.Velocity.X, sc.Velocity.Y)),
	}, nil
}

// Physical is the inverse of Build: the scenario in physical units relative to
// the planet.
func Physical(d Descriptor) config.ScenarioConfig {
	pos := units.VecToPhysical(d.Position.Sub(d.PlanetPosition))
	vel := units.VecToPhysical(d.Velocity)
	return config.ScenarioConfig{
		Name:           d.Name,
		PlanetMass:     d.PlanetMass,
		PlanetRadius:   d.PlanetRadius,
		SpacecraftMass: d.SpacecraftMass,
		Position:       config.XYConfig{X: pos.X, Y: pos.Y},
		Velocity:       config.XYConfig{X: vel.X, Y: vel.Y},
	}
}

// FromPreset builds one of the named built-in scenarios.
func FromPreset(name string, center dynamo.Vec2) (Descriptor, error) {
	sc := config.GetPreset(name)
	if sc == nil {
		return Descriptor{}, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	return Build(*sc, center)
}

// Validate applies the same rules as ParseField to a scenario that did not
// come through a prompt, such as one loaded from YAML.
func Validate(sc config.ScenarioConfig) error {
	values := map[string]float64{
		"planet_mass":     sc.PlanetMass,
		"planet_radius":   sc.PlanetRadius,
		"spacecraft_mass": sc.SpacecraftMass,
		"position_x":      sc.Position.X,
		"position_y":      sc.Position.Y,
		"velocity_x":      sc.Velocity.X,
		"velocity_y":      sc.Velocity.Y,
	}
	for _, f := range Fields {
		if err := f.Check(values[f.Key]); err != nil {
			return err
		}
	}
	return nil
}

// Center returns the middle of a width×height surface, using integer
// division like the renderers do.
func Center(width, height int) dynamo.Vec2 {
	return dynamo.V(float64(width/2), float64(height/2))
}
