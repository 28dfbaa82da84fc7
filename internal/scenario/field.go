package scenario

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Bound restricts the sign of a field.
type Bound int

const (
	AnyReal Bound = iota
	NonNegative
	Positive
)

// Field describes one numeric scenario input.
type Field struct {
	Key    string
	Label  string
	Prompt string
	Bound  Bound
}

// Fields lists the custom-scenario inputs in prompt order.
var Fields = []Field{
	{Key: "planet_mass", Label: "planet mass (kg)", Prompt: "Enter planet mass (kg): ", Bound: NonNegative},
	{Key: "planet_radius", Label: "planet radius (km)", Prompt: "Enter planet radius (km): ", Bound: NonNegative},
	{Key: "spacecraft_mass", Label: "spacecraft mass (kg)", Prompt: "Enter spacecraft mass (kg): ", Bound: Positive},
	{Key: "position_x", Label: "x position (km)", Prompt: "Enter spacecraft starting x position (km): ", Bound: AnyReal},
	{Key: "position_y", Label: "y position (km)", Prompt: "Enter spacecraft starting y position (km): ", Bound: AnyReal},
	{Key: "velocity_x", Label: "x velocity (km/s)", Prompt: "Enter spacecraft starting x velocity (km/s): ", Bound: AnyReal},
	{Key: "velocity_y", Label: "y velocity (km/s)", Prompt: "Enter spacecraft starting y velocity (km/s): ", Bound: AnyReal},
}

// ValidationError is returned for a rejected field value. It unwraps to
// dynamo.ErrInvalidInput.
type ValidationError struct {
	Field  string
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return dynamo.ErrInvalidInput }

// ParseField parses and checks one raw input. It never panics and never
// returns a partially valid value.
func ParseField(f Field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Field: f.Key, Input: raw, Reason: "Invalid input. Please enter a number."}
	}
	if e := f.check(v); e != nil {
		e.Input = raw
		return 0, e
	}
	return v, nil
}

// Check validates an already-parsed value.
func (f Field) Check(v float64) error {
	if e := f.check(v); e != nil {
		return e
	}
	return nil
}

func (f Field) check(v float64) *ValidationError {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: f.Key, Reason: "Invalid input. Please enter a finite number."}
	}
	switch f.Bound {
	case NonNegative:
		if v < 0 {
			return &ValidationError{Field: f.Key, Reason: "Please enter a positive number."}
		}
	case Positive:
		if v <= 0 {
			return &ValidationError{Field: f.Key, Reason: "Please enter a number greater than zero."}
		}
	}
	return nil
}

// FromValues assembles a scenario from validated field values keyed by
// Field.Key.
func FromValues(name string, values map[string]float64) config.ScenarioConfig {
	return config.ScenarioConfig{
		Name:           name,
		PlanetMass:     values["planet_mass"],
		PlanetRadius:   values["planet_radius"],
		SpacecraftMass: values["spacecraft_mass"],
		Position:       config.XYConfig{X: values["position_x"], Y: values["position_y"]},
		Velocity:       config.XYConfig{X: values["velocity_x"], Y: values["velocity_y"]},
	}
}
