package metrics

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/telemetry"
)

func snapshot(pos, vel dynamo.Vec2, center dynamo.Vec2) sim.Snapshot {
	d := pos.Sub(center).Norm()
	return sim.Snapshot{
		Position: pos,
		Velocity: vel,
		Distance: d,
		Speed:    vel.Norm(),
		Record:   telemetry.RecordFrom(0, pos, vel, dynamo.Vec2{}, d, vel.Norm(), 0),
	}
}

func TestEnergyDriftConstantOrbit(t *testing.T) {
	center := dynamo.V(400, 300)
	body := physics.NewTwoBody(center, 5.972e24, 1000)
	m := NewEnergyDrift(body)

	r := 300.0
	v := math.Sqrt(body.Mu() / r)
	// points on an exact circular orbit all carry the same energy
	for _, theta := range []float64{0, 0.5, 1.5, 3} {
		pos := center.Add(dynamo.V(r*math.Cos(theta), r*math.Sin(theta)))
		vel := dynamo.V(-v*math.Sin(theta), v*math.Cos(theta))
		m.Observe(snapshot(pos, vel, center))
	}

	if m.Value() > 1e-12 {
		t.Errorf("drift = %v, want ~0", m.Value())
	}
}

func TestEnergyDriftDetectsChange(t *testing.T) {
	center := dynamo.V(400, 300)
	body := physics.NewTwoBody(center, 5.972e24, 1000)
	m := NewEnergyDrift(body)

	pos := dynamo.V(700, 300)
	m.Observe(snapshot(pos, dynamo.V(0, -0.8), center))
	e0 := m.Current()
	m.Observe(snapshot(pos, dynamo.V(0, -1.6), center))
	e1 := m.Current()

	want := math.Abs(e1-e0) / math.Abs(e0)
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("drift = %v, want %v", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestApsides(t *testing.T) {
	center := dynamo.V(0, 0)
	peri, apo, speed := NewPeriapsis(), NewApoapsis(), NewMaxSpeed()

	for _, s := range []sim.Snapshot{
		snapshot(dynamo.V(300, 0), dynamo.V(0, 0.5), center),
		snapshot(dynamo.V(0, 200), dynamo.V(0.9, 0), center),
		snapshot(dynamo.V(-250, 0), dynamo.V(0, -0.4), center),
	} {
		peri.Observe(s)
		apo.Observe(s)
		speed.Observe(s)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"periapsis", peri.Value(), 20000},
		{"apoapsis", apo.Value(), 30000},
		{"max speed", speed.Value(), 90},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	peri.Reset()
	apo.Reset()
	speed.Reset()
	if peri.Value() != 0 || apo.Value() != 0 || speed.Value() != 0 {
		t.Error("expected zero values after reset")
	}
}

func TestStandardNames(t *testing.T) {
	body := physics.NewTwoBody(dynamo.Vec2{}, 1, 1)
	seen := map[string]bool{}
	for _, m := range Standard(NewEnergyDrift(body)) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %q", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 4 {
		t.Errorf("got %d metrics, want 4", len(seen))
	}
}

func TestCollectorObservesSteps(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	s := snapshot(dynamo.V(300, 0), dynamo.V(0, 0.5), dynamo.Vec2{})
	s.WriteLatency = 2 * time.Millisecond
	c.OnStep(s)
	c.OnStep(s)

	if got := testutil.ToFloat64(c.Frames); got != 2 {
		t.Errorf("frames = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Distance); math.Abs(got-30000) > 1e-9 {
		t.Errorf("distance = %v, want 30000", got)
	}
	if got := testutil.ToFloat64(c.Speed); math.Abs(got-50) > 1e-9 {
		t.Errorf("speed = %v, want 50", got)
	}
	if got := testutil.CollectAndCount(c.WriteLatency); got != 1 {
		t.Errorf("latency series = %d, want 1", got)
	}
}

func TestCollectorRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewCollector(reg); err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	if _, err := NewCollector(reg); err == nil {
		t.Fatal("expected an error on second registration")
	}
}

func TestCollectorHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	c.OnStep(snapshot(dynamo.V(300, 0), dynamo.V(0, 0.5), dynamo.Vec2{}))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, name := range []string{"orbitsim_frames_total 1", "orbitsim_distance_km", "orbitsim_telemetry_write_seconds_count 1"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}
