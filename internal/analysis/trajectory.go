package analysis

import (
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// TrajectoryASCII plots path on a width x height character grid with the
// planet at center marked 'O'. The view is padded by 10% and keeps the
// planet in frame. Non-finite points are skipped.
func TrajectoryASCII(path []dynamo.Vec2, center dynamo.Vec2, width, height int) string {
	if len(path) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := center.X, center.X
	minY, maxY := center.Y, center.Y
	for _, p := range path {
		if !p.IsValid() {
			continue
		}
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

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	// surface Y grows downwards, so rows follow Y directly
	cell := func(p dynamo.Vec2) (int, int) {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := int((p.Y - minY) / rangeY * float64(height-1))
		return row, col
	}

	for _, p := range path {
		if !p.IsValid() {
			continue
		}
		row, col := cell(p)
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}
	row, col := cell(center)
	canvas[row][col] = 'O'

	var sb strings.Builder
	for _, r := range canvas {
		sb.WriteString(string(r))
		sb.WriteRune('\n')
	}
	return sb.String()
}
