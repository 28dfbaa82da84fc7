package analysis

import (
	"errors"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/telemetry"
)

// Report summarises one telemetry log.
type Report struct {
	Frames      int     `json:"frames"`
	Distance    Summary `json:"distance_km"`
	Speed       Summary `json:"speed_km_s"`
	AccelChange Summary `json:"accel_change_km_s2"`
	// SpectralPeriod is zero when the X position shows no oscillation.
	SpectralPeriod float64 `json:"spectral_period_frames"`
	Revolutions    int     `json:"revolutions"`
	// CrossingPeriod is zero with fewer than two crossings.
	CrossingPeriod float64 `json:"crossing_period_frames"`
}

// Analyze builds a Report. center is the planet position in km, in the same
// absolute frame as the logged positions.
func Analyze(records []telemetry.Record, center dynamo.Vec2) (Report, error) {
	if len(records) == 0 {
		return Report{}, ErrNoData
	}

	frames := make([]int, len(records))
	path := make([]dynamo.Vec2, len(records))
	distance := make([]float64, len(records))
	speed := make([]float64, len(records))
	accel := make([]float64, len(records))
	xs := make([]float64, len(records))
	for i, r := range records {
		frames[i] = r.Frame
		path[i] = r.Position
		distance[i] = r.Distance
		speed[i] = r.Speed
		accel[i] = r.AccelChange
		xs[i] = r.Position.X
	}

	rep := Report{Frames: len(records)}
	var err error
	if rep.Distance, err = Summarize(distance); err != nil {
		return Report{}, err
	}
	if rep.Speed, err = Summarize(speed); err != nil {
		return Report{}, err
	}
	if rep.AccelChange, err = Summarize(accel); err != nil {
		return Report{}, err
	}

	period, err := DominantPeriod(xs)
	switch {
	case err == nil:
		rep.SpectralPeriod = period
	case !errors.Is(err, ErrNoPeriod) && !errors.Is(err, ErrNoData):
		return Report{}, err
	}

	crossings := Crossings(frames, path, center)
	rep.Revolutions = len(crossings)
	if interval, err := MeanInterval(crossings); err == nil {
		rep.CrossingPeriod = interval
	}
	return rep, nil
}
