package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS           = 60
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultTelemetryPath = "simulation_data.csv"
	DefaultRenderer      = "window"
	DefaultLogLevel      = "info"
)

// Config is built once at startup and handed to the simulation loop.
type Config struct {
	Scenario      ScenarioConfig `yaml:"scenario"`
	FPS           int            `yaml:"fps"`
	Surface       SurfaceConfig  `yaml:"surface"`
	TelemetryPath string         `yaml:"telemetry_path"`
	Renderer      string         `yaml:"renderer"`
	MetricsAddr   string         `yaml:"metrics_addr"`
	LogLevel      string         `yaml:"log_level"`
	// ArchiveDir enables the run archive when set.
	ArchiveDir string `yaml:"archive_dir"`
}

// ScenarioConfig holds initial conditions in physical units. Position is
// relative to the planet centre.
type ScenarioConfig struct {
	Name           string   `yaml:"name" json:"name"`
	PlanetMass     float64  `yaml:"planet_mass" json:"planet_mass"`
	PlanetRadius   float64  `yaml:"planet_radius" json:"planet_radius"`
	SpacecraftMass float64  `yaml:"spacecraft_mass" json:"spacecraft_mass"`
	Position       XYConfig `yaml:"position" json:"position"`
	Velocity       XYConfig `yaml:"velocity" json:"velocity"`
}

type XYConfig struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

type SurfaceConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      *Presets["earth"],
		FPS:           DefaultFPS,
		Surface:       SurfaceConfig{Width: DefaultWidth, Height: DefaultHeight},
		TelemetryPath: DefaultTelemetryPath,
		Renderer:      DefaultRenderer,
		LogLevel:      DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
