package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/telemetry"
)

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Min != 2 || s.Max != 9 || s.Mean != 5 {
		t.Errorf("summary = %+v", s)
	}
	// sample standard deviation
	if math.Abs(s.StdDev-math.Sqrt(32.0/7.0)) > 1e-12 {
		t.Errorf("std dev = %v", s.StdDev)
	}

	if _, err := Summarize(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}

	one, err := Summarize([]float64{3})
	if err != nil || one.StdDev != 0 || one.Mean != 3 {
		t.Errorf("single sample summary = %+v, %v", one, err)
	}
}

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		period float64
	}{
		{"exact bin", 500, 50},
		{"between bins", 600, 73},
		{"odd length", 333, 37},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := make([]float64, tt.n)
			for i := range series {
				series[i] = 1000 + 300*math.Cos(2*math.Pi*float64(i)/tt.period)
			}
			got, err := DominantPeriod(series)
			if err != nil {
				t.Fatalf("DominantPeriod: %v", err)
			}
			if math.Abs(got-tt.period)/tt.period > 0.05 {
				t.Errorf("period = %v, want %v", got, tt.period)
			}
		})
	}
}

func TestDominantPeriodRejectsFlatSeries(t *testing.T) {
	flat := make([]float64, 64)
	for i := range flat {
		flat[i] = 42
	}
	if _, err := DominantPeriod(flat); !errors.Is(err, ErrNoPeriod) {
		t.Errorf("err = %v, want ErrNoPeriod", err)
	}
	if _, err := DominantPeriod([]float64{1, 2}); !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func circle(n int, period float64, center dynamo.Vec2, r float64) ([]int, []dynamo.Vec2) {
	frames := make([]int, n)
	path := make([]dynamo.Vec2, n)
	for i := range path {
		theta := 2*math.Pi*float64(i)/period + 0.1
		frames[i] = i
		// clockwise on screen, like the Earth preset
		path[i] = center.Add(dynamo.V(r*math.Cos(theta), -r*math.Sin(theta)))
	}
	return frames, path
}

func TestCrossings(t *testing.T) {
	center := dynamo.V(40000, 30000)
	frames, path := circle(450, 100, center, 30000)

	c := Crossings(frames, path, center)
	if len(c) != 4 {
		t.Fatalf("crossings = %v, want 4", c)
	}
	interval, err := MeanInterval(c)
	if err != nil {
		t.Fatalf("MeanInterval: %v", err)
	}
	if math.Abs(interval-100) > 0.5 {
		t.Errorf("interval = %v, want 100", interval)
	}

	if _, err := MeanInterval(c[:1]); !errors.Is(err, ErrNoPeriod) {
		t.Errorf("err = %v, want ErrNoPeriod", err)
	}
}

func TestAnalyze(t *testing.T) {
	center := dynamo.V(40000, 30000)
	frames, path := circle(400, 80, center, 30000)
	records := make([]telemetry.Record, len(path))
	for i, p := range path {
		records[i] = telemetry.Record{Frame: frames[i], Position: p, Distance: 30000, Speed: 80}
	}

	rep, err := Analyze(records, center)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rep.Frames != 400 {
		t.Errorf("frames = %d", rep.Frames)
	}
	if rep.Distance.Mean != 30000 || rep.Speed.Max != 80 {
		t.Errorf("summaries = %+v %+v", rep.Distance, rep.Speed)
	}
	if math.Abs(rep.SpectralPeriod-80) > 4 {
		t.Errorf("spectral period = %v, want 80", rep.SpectralPeriod)
	}
	if rep.Revolutions != 5 {
		t.Errorf("revolutions = %d, want 5", rep.Revolutions)
	}
	if math.Abs(rep.CrossingPeriod-80) > 0.5 {
		t.Errorf("crossing period = %v, want 80", rep.CrossingPeriod)
	}

	if _, err := Analyze(nil, center); !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestTrajectoryASCII(t *testing.T) {
	center := dynamo.V(0, 0)
	_, path := circle(100, 100, center, 10)

	out := TrajectoryASCII(path, center, 40, 20)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("rows = %d, want 20", len(lines))
	}
	if !strings.Contains(out, "O") || !strings.Contains(out, "•") {
		t.Error("expected planet and path markers")
	}
	if TrajectoryASCII(nil, center, 40, 20) != "" {
		t.Error("empty path should render nothing")
	}
}

func TestTrajectoryASCIISkipsNonFinitePoints(t *testing.T) {
	center := dynamo.V(40000, 30000)
	path := []dynamo.Vec2{
		dynamo.V(70000, 30000),
		dynamo.V(math.NaN(), math.NaN()),
		dynamo.V(math.Inf(-1), 30000),
	}

	out := TrajectoryASCII(path, center, 80, 30)
	if strings.Count(out, "\n") != 30 {
		t.Fatalf("unexpected grid:\n%s", out)
	}
	if strings.Count(out, "•") != 1 || !strings.Contains(out, "O") {
		t.Errorf("expected one path marker and the planet:\n%s", out)
	}
}
