package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scenario.Name != "Earth" {
		t.Errorf("expected Earth scenario, got %s", cfg.Scenario.Name)
	}
	if cfg.FPS != 60 {
		t.Errorf("expected 60 fps, got %d", cfg.FPS)
	}
	if cfg.TelemetryPath != "simulation_data.csv" {
		t.Errorf("unexpected telemetry path %s", cfg.TelemetryPath)
	}
	if cfg.Surface.Width != 800 || cfg.Surface.Height != 600 {
		t.Errorf("unexpected surface %+v", cfg.Surface)
	}
}

func TestDefaultConfigDoesNotAliasPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scenario.SpacecraftMass = 1

	if Presets["earth"].SpacecraftMass != 1000 {
		t.Error("mutating the default config changed the preset table")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("test_spacecraft")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.SpacecraftMass != 500 {
		t.Errorf("expected spacecraft mass 500, got %f", cfg.SpacecraftMass)
	}
	if cfg.Velocity.Y != -100 {
		t.Errorf("expected vy -100, got %f", cfg.Velocity.Y)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 2 || presets[0] != "earth" || presets[1] != "test_spacecraft" {
		t.Errorf("unexpected presets %v", presets)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbitsim.yaml")

	cfg := DefaultConfig()
	cfg.FPS = 30
	cfg.Scenario.Name = "Low orbit"
	cfg.Scenario.Position = XYConfig{X: 8000, Y: -100}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.FPS != 30 || loaded.Scenario.Name != "Low orbit" || loaded.Scenario.Position.Y != -100 {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "scenario:\n  name: custom\n  spacecraft_mass: 42\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Scenario.SpacecraftMass != 42 {
		t.Errorf("expected mass 42, got %f", cfg.Scenario.SpacecraftMass)
	}
	if cfg.Scenario.PlanetMass != 5.972e24 {
		t.Errorf("expected default planet mass, got %g", cfg.Scenario.PlanetMass)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("expected default fps, got %d", cfg.FPS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
