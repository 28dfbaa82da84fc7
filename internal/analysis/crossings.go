package analysis

import (
	"github.com/san-kum/orbitsim/internal/dynamo"
)

// Crossings returns the interpolated frame numbers at which the path crosses
// the half-line running from center towards +X. A closed orbit crosses it once
// per revolution, in either direction.
func Crossings(frames []int, path []dynamo.Vec2, center dynamo.Vec2) []float64 {
	out := make([]float64, 0)
	for i := 1; i < len(path) && i < len(frames); i++ {
		prev, cur := path[i-1].Y-center.Y, path[i].Y-center.Y
		if (prev < 0) != (cur < 0) && path[i].X > center.X {
			frac := -prev / (cur - prev)
			df := float64(frames[i] - frames[i-1])
			out = append(out, float64(frames[i-1])+frac*df)
		}
	}
	return out
}

// MeanInterval is the average spacing of successive crossings.
func MeanInterval(crossings []float64) (float64, error) {
	if len(crossings) < 2 {
		return 0, ErrNoPeriod
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1), nil
}
