// Package gui draws a running simulation in a raylib window.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/telemetry"
)

var (
	ColBg         = rl.Black
	ColPlanet     = rl.Blue
	ColSpacecraft = rl.White
	ColText       = rl.NewColor(140, 140, 140, 255)
)

const fontSize = 16

// Window is a sim.Renderer and sim.Observer backed by a raylib window. All
// methods must be called from the goroutine that called Open, which must be
// locked to its OS thread.
type Window struct {
	title string
	last  telemetry.Record
	hud   bool
}

// Open creates a width x height window.
func Open(width, height int, title string) *Window {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(width), int32(height), title)
	return &Window{title: title, hud: true}
}

// Render draws the planet and spacecraft as filled circles on black.
func (w *Window) Render(s sim.Scene) error {
	if !rl.IsWindowReady() {
		return fmt.Errorf("window %q is not open", w.title)
	}
	if rl.IsKeyPressed(rl.KeyH) {
		w.hud = !w.hud
	}

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	rl.DrawCircle(int32(s.Planet.X), int32(s.Planet.Y), float32(s.Planet.Radius), ColPlanet)
	rl.DrawCircle(int32(s.Spacecraft.X), int32(s.Spacecraft.Y), float32(s.Spacecraft.Radius), ColSpacecraft)
	if w.hud {
		for i, line := range hudLines(w.last) {
			rl.DrawText(line, 10, int32(10+i*(fontSize+4)), fontSize, ColText)
		}
	}
	rl.EndDrawing()
	return nil
}

// OnStep keeps the latest record for the overlay.
func (w *Window) OnStep(s sim.Snapshot) { w.last = s.Record }

// Closed reports whether the operator asked to close the window. It is the
// loop's stop signal.
func (w *Window) Closed() bool { return rl.WindowShouldClose() }

func (w *Window) Close() { rl.CloseWindow() }

func hudLines(r telemetry.Record) []string {
	return []string{
		fmt.Sprintf("frame %d", r.Frame),
		fmt.Sprintf("distance %.1f km", r.Distance),
		fmt.Sprintf("speed %.3f km/s", r.Speed),
		fmt.Sprintf("position (%.0f, %.0f) km", r.Position.X, r.Position.Y),
	}
}
