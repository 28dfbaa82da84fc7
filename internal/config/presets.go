package config

import "sort"

// Presets are the built-in scenarios, in physical units.
var Presets = map[string]*ScenarioConfig{
	"earth": {
		Name:           "Earth",
		PlanetMass:     5.972e24,
		PlanetRadius:   6371,
		SpacecraftMass: 1000,
		Position:       XYConfig{X: 30000, Y: 0},
		Velocity:       XYConfig{X: 0, Y: -80},
	},
	"test_spacecraft": {
		Name:           "Test Spacecraft",
		PlanetMass:     5.972e24,
		PlanetRadius:   6371,
		SpacecraftMass: 500,
		Position:       XYConfig{X: 25000, Y: 0},
		Velocity:       XYConfig{X: 0, Y: -100},
	},
}

func GetPreset(name string) *ScenarioConfig {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
