// Package export renders telemetry logs into other formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

var ErrTooShort = errors.New("export: trajectory needs at least two points")

// Trajectory describes one flown path in km, in the absolute frame of the
// telemetry log.
type Trajectory struct {
	Path         []dynamo.Vec2
	Center       dynamo.Vec2
	PlanetRadius float64
	Title        string
}

// TrajectoryToSVG draws the planet to scale and the path as a polyline. Both
// axes share one scale so the orbit keeps its shape; screen Y grows downwards
// as on the simulation surface.
func TrajectoryToSVG(w io.Writer, tr Trajectory, width, height int) error {
	if len(tr.Path) < 2 {
		return ErrTooShort
	}

	minX, maxX := tr.Center.X-tr.PlanetRadius, tr.Center.X+tr.PlanetRadius
	minY, maxY := tr.Center.Y-tr.PlanetRadius, tr.Center.Y+tr.PlanetRadius
	for _, p := range tr.Path {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	scale := min(float64(width)/rangeX, float64(height)/rangeY)
	offX := (float64(width) - rangeX*scale) / 2
	offY := (float64(height) - rangeY*scale) / 2
	project := func(p dynamo.Vec2) (float64, float64) {
		return offX + (p.X-minX)*scale, offY + (p.Y-minY)*scale
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height))

	if tr.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="10" y="20" fill="#8c8c8c" font-family="monospace" font-size="14">%s</text>
`, escape(tr.Title)))
	}

	cx, cy := project(tr.Center)
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#0079f1"/>
`, cx, cy, max(tr.PlanetRadius*scale, 2)))

	sb.WriteString(`<path fill="none" stroke="#ffffff" stroke-width="1.5" d="M`)
	for i, p := range tr.Path {
		x, y := project(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	sx, sy := project(tr.Path[0])
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="#00ff88"/>
</svg>
`, sx, sy))

	_, err := io.WriteString(w, sb.String())
	return err
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
