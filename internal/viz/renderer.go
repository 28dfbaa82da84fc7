package viz

import (
	"math"

	"github.com/san-kum/orbitsim/internal/sim"
)

const trailCapacity = 400

type point struct{ x, y int }

// CanvasRenderer maps surface coordinates onto a braille canvas. The surface
// is scaled uniformly so circles stay round, and centred on the canvas.
type CanvasRenderer struct {
	canvas     *Canvas
	scale      float64
	offX, offY int
	trail      []point
}

// NewCanvasRenderer draws a surfaceW x surfaceH surface into a canvas of
// cols x rows terminal cells.
func NewCanvasRenderer(cols, rows, surfaceW, surfaceH int) *CanvasRenderer {
	subW, subH := cols*2, rows*4
	scale := math.Min(float64(subW)/float64(surfaceW), float64(subH)/float64(surfaceH))
	return &CanvasRenderer{
		canvas: NewCanvas(cols, rows),
		scale:  scale,
		offX:   (subW - int(float64(surfaceW)*scale)) / 2,
		offY:   (subH - int(float64(surfaceH)*scale)) / 2,
		trail:  make([]point, 0, trailCapacity),
	}
}

func (r *CanvasRenderer) project(x, y int) (int, int) {
	return r.offX + int(math.Round(float64(x)*r.scale)), r.offY + int(math.Round(float64(y)*r.scale))
}

func (r *CanvasRenderer) radius(surface int) int {
	return max(1, int(math.Round(float64(surface)*r.scale)))
}

func (r *CanvasRenderer) Render(s sim.Scene) error {
	r.canvas.Clear()

	px, py := r.project(s.Planet.X, s.Planet.Y)
	r.canvas.FillCircle(px, py, r.radius(s.Planet.Radius))

	sx, sy := r.project(s.Spacecraft.X, s.Spacecraft.Y)
	r.trail = append(r.trail, point{sx, sy})
	if len(r.trail) > trailCapacity {
		r.trail = r.trail[1:]
	}
	r.canvas.Polyline(r.trail)
	r.canvas.FillCircle(sx, sy, r.radius(s.Spacecraft.Radius))
	return nil
}

func (r *CanvasRenderer) Canvas() *Canvas { return r.canvas }

func (r *CanvasRenderer) String() string { return r.canvas.String() }
