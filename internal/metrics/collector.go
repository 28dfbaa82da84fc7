package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/units"
)

// Collector exports per-tick loop state as Prometheus metrics. It is a
// sim.Observer.
type Collector struct {
	gatherer prometheus.Gatherer

	Frames       prometheus.Counter
	WriteLatency prometheus.Histogram
	Distance     prometheus.Gauge
	Speed        prometheus.Gauge
	AccelChange  prometheus.Gauge
}

// NewCollector registers the loop metrics against reg, defaulting to the
// global registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orbitsim_frames_total",
		Help: "Total number of simulated ticks.",
	})
	if err := register(reg, frames, "orbitsim_frames_total"); err != nil {
		return nil, err
	}

	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orbitsim_telemetry_write_seconds",
		Help:    "Time to append and sync one telemetry record.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	})
	if err := register(reg, latency, "orbitsim_telemetry_write_seconds"); err != nil {
		return nil, err
	}

	distance := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orbitsim_distance_km",
		Help: "Current spacecraft distance from the planet centre.",
	})
	if err := register(reg, distance, "orbitsim_distance_km"); err != nil {
		return nil, err
	}

	speed := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orbitsim_speed_km_per_second",
		Help: "Current spacecraft speed.",
	})
	if err := register(reg, speed, "orbitsim_speed_km_per_second"); err != nil {
		return nil, err
	}

	accel := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orbitsim_accel_change_km_per_second2",
		Help: "Magnitude of the acceleration change over the last tick.",
	})
	if err := register(reg, accel, "orbitsim_accel_change_km_per_second2"); err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:     gatherer,
		Frames:       frames,
		WriteLatency: latency,
		Distance:     distance,
		Speed:        speed,
		AccelChange:  accel,
	}, nil
}

func (c *Collector) OnStep(s sim.Snapshot) {
	if c == nil {
		return
	}
	c.Frames.Inc()
	c.WriteLatency.Observe(s.WriteLatency.Seconds())
	c.Distance.Set(units.ToPhysical(s.Distance))
	c.Speed.Set(s.Record.Speed)
	c.AccelChange.Set(s.Record.AccelChange)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func register(reg prometheus.Registerer, c prometheus.Collector, name string) error {
	if err := reg.Register(c); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return fmt.Errorf("collector %s already registered", name)
		}
		return err
	}
	return nil
}
