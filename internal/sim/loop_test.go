package sim_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/telemetry"
	"github.com/san-kum/orbitsim/internal/units"
)

type recordingRenderer struct {
	scenes []sim.Scene
	err    error
}

func (r *recordingRenderer) Render(s sim.Scene) error {
	r.scenes = append(r.scenes, s)
	return r.err
}

type countingMetric struct {
	n int
}

func (c *countingMetric) Name() string            { return "count" }
func (c *countingMetric) Observe(_ sim.Snapshot) { c.n++ }
func (c *countingMetric) Value() float64          { return float64(c.n) }
func (c *countingMetric) Reset()                  { c.n = 0 }

var _ = Describe("Loop", func() {
	var (
		path     string
		renderer *recordingRenderer
		loop     *sim.Loop
		earth    scenario.Descriptor
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), telemetry.DefaultPath)
		renderer = &recordingRenderer{}
		loop = sim.New(sim.Config{TelemetryPath: path, Renderer: renderer})

		var err error
		earth, err = scenario.FromPreset("earth", scenario.Center(800, 600))
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts awaiting a scenario", func() {
		Expect(loop.Phase()).To(Equal(sim.AwaitingScenario))
	})

	It("rejects steps before a scenario arrives", func() {
		_, err := loop.Step()
		Expect(errors.Is(err, dynamo.ErrInvalidPhase)).To(BeTrue())
	})

	It("cannot be started twice", func() {
		Expect(loop.Start(earth)).To(Succeed())
		Expect(errors.Is(loop.Start(earth), dynamo.ErrInvalidPhase)).To(BeTrue())
	})

	It("writes only the header on start", func() {
		Expect(loop.Start(earth)).To(Succeed())
		Expect(loop.Phase()).To(Equal(sim.Running))

		records, err := telemetry.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	Describe("the Earth scenario", func() {
		It("pulls the spacecraft towards the planet on the first tick", func() {
			Expect(loop.Start(earth)).To(Succeed())

			snap, err := loop.Step()
			Expect(err).NotTo(HaveOccurred())

			Expect(snap.Force.X).To(BeNumerically("<", 0))
			Expect(math.Abs(snap.Force.Y)).To(BeNumerically("<", 1e-12))
			Expect(snap.Distance).To(BeNumerically("~", 300, 1e-9))
			Expect(snap.Velocity.Y).To(BeNumerically("<", 0))
			Expect(snap.Velocity.X).To(BeNumerically("<", 0))
			Expect(snap.Velocity.X).To(BeNumerically(">", -0.01))
			Expect(loop.State().Frame).To(Equal(1))

			records, err := telemetry.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Frame).To(Equal(0))
		})

		It("records N rows after N ticks", func() {
			Expect(loop.Start(earth)).To(Succeed())

			const n = 250
			for i := 0; i < n; i++ {
				_, err := loop.Step()
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(loop.State().Frame).To(Equal(n))
			records, err := telemetry.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(n))
			for i, r := range records {
				Expect(r.Frame).To(Equal(i))
			}
		})

		It("writes a speed column consistent with the state velocity", func() {
			Expect(loop.Start(earth)).To(Succeed())

			for i := 0; i < 20; i++ {
				snap, err := loop.Step()
				Expect(err).NotTo(HaveOccurred())

				v := loop.State().Velocity
				Expect(snap.Record.Speed).To(BeNumerically("~", math.Sqrt(v.X*v.X+v.Y*v.Y)/units.K, 1e-9))
			}

			records, err := telemetry.Load(path)
			Expect(err).NotTo(HaveOccurred())
			last := records[len(records)-1]
			v := loop.State().Velocity
			Expect(last.Speed).To(BeNumerically("~", math.Sqrt(v.X*v.X+v.Y*v.Y)/units.K, 1e-9))
		})

		It("carries the acceleration history between frames", func() {
			Expect(loop.Start(earth)).To(Succeed())

			first, err := loop.Step()
			Expect(err).NotTo(HaveOccurred())
			// previous acceleration starts at zero
			Expect(first.AccelChange).To(BeNumerically("~", first.Acceleration.Norm(), 1e-15))

			second, err := loop.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(second.AccelChange).To(BeNumerically("~", second.Acceleration.Sub(first.Acceleration).Norm(), 1e-15))
			Expect(loop.State().LastAcceleration).To(Equal(second.Acceleration))
		})

		It("hands rounded draw coordinates to the renderer", func() {
			Expect(loop.Start(earth)).To(Succeed())
			_, err := loop.Step()
			Expect(err).NotTo(HaveOccurred())

			Expect(renderer.scenes).To(HaveLen(1))
			scene := renderer.scenes[0]
			Expect(scene.Planet).To(Equal(sim.Circle{X: 400, Y: 300, Radius: sim.PlanetDrawRadius}))
			Expect(scene.Spacecraft.X).To(Equal(700))
			Expect(scene.Spacecraft.Y).To(Equal(299))
			Expect(scene.Spacecraft.Radius).To(Equal(sim.SpacecraftDrawRadius))
		})

		It("keeps running when the renderer fails", func() {
			renderer.err = errors.New("surface lost")
			Expect(loop.Start(earth)).To(Succeed())

			_, err := loop.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(loop.Phase()).To(Equal(sim.Running))
		})

		It("feeds metrics and resets them on start", func() {
			m := &countingMetric{n: 99}
			loop.AddMetric(m)
			Expect(loop.Start(earth)).To(Succeed())

			for i := 0; i < 3; i++ {
				_, err := loop.Step()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(loop.Metrics()).To(HaveKeyWithValue("count", 3.0))
		})
	})

	Describe("stopping", func() {
		It("stops within one tick of the stop signal", func() {
			ticks := 0
			loop = sim.New(sim.Config{
				TelemetryPath: path,
				StopSignal:    func() bool { return ticks >= 5 },
				Clock:         clockFunc(func() { ticks++ }),
			})
			Expect(loop.Start(earth)).To(Succeed())

			Expect(loop.Run(context.Background())).To(Succeed())
			Expect(loop.Phase()).To(Equal(sim.Stopped))
			Expect(loop.Err()).NotTo(HaveOccurred())

			records, err := telemetry.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(5))
		})

		It("stops when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			ticks := 0
			loop = sim.New(sim.Config{
				TelemetryPath: path,
				Clock: clockFunc(func() {
					ticks++
					if ticks == 3 {
						cancel()
					}
				}),
			})
			Expect(loop.Start(earth)).To(Succeed())

			Expect(loop.Run(ctx)).To(Succeed())
			Expect(loop.Phase()).To(Equal(sim.Stopped))

			records, err := telemetry.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(3))
		})

		It("refuses to step once stopped", func() {
			Expect(loop.Start(earth)).To(Succeed())
			loop.Stop()
			loop.Stop()

			_, err := loop.Step()
			Expect(errors.Is(err, dynamo.ErrInvalidPhase)).To(BeTrue())
			Expect(errors.Is(loop.Run(context.Background()), dynamo.ErrInvalidPhase)).To(BeTrue())
		})
	})

	Describe("failures", func() {
		It("aborts on zero separation", func() {
			desc := earth
			desc.Position = desc.PlanetPosition
			Expect(loop.Start(desc)).To(Succeed())

			_, err := loop.Step()
			Expect(errors.Is(err, dynamo.ErrDegenerateGeometry)).To(BeTrue())

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Frame).To(Equal(0))
			Expect(loop.Phase()).To(Equal(sim.Stopped))
			Expect(loop.Err()).To(MatchError(err))

			records, err := telemetry.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		It("returns the step error from Run", func() {
			desc := earth
			desc.Position = desc.PlanetPosition
			Expect(loop.Start(desc)).To(Succeed())

			err := loop.Run(context.Background())
			Expect(errors.Is(err, dynamo.ErrDegenerateGeometry)).To(BeTrue())
		})

		It("treats an unwritable log as fatal", func() {
			loop = sim.New(sim.Config{TelemetryPath: filepath.Join(GinkgoT().TempDir(), "missing", "log.csv")})

			err := loop.Start(earth)
			Expect(errors.Is(err, dynamo.ErrTelemetry)).To(BeTrue())
			Expect(loop.Phase()).To(Equal(sim.Stopped))
		})
	})
})

type clockFunc func()

func (f clockFunc) Wait() { f() }

type eventLog struct{ events []string }

type loggingRenderer struct{ log *eventLog }

func (r loggingRenderer) Render(sim.Scene) error {
	r.log.events = append(r.log.events, "render")
	return nil
}

type loggingObserver struct{ log *eventLog }

func (o loggingObserver) OnStep(s sim.Snapshot) {
	o.log.events = append(o.log.events, fmt.Sprintf("observe %d", s.Frame))
}

var _ = Describe("Loop with overflowing scenarios", func() {
	var path string

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), telemetry.DefaultPath)
	})

	It("fails before logging a non-finite row", func() {
		desc, err := scenario.Build(config.ScenarioConfig{
			Name:           "Heavy",
			PlanetMass:     1e308,
			SpacecraftMass: 1e308,
			Position:       config.XYConfig{X: 30000},
		}, scenario.Center(800, 600))
		Expect(err).NotTo(HaveOccurred())

		loop := sim.New(sim.Config{TelemetryPath: path})
		Expect(loop.Start(desc)).To(Succeed())

		_, err = loop.Step()
		Expect(errors.Is(err, dynamo.ErrNonFinite)).To(BeTrue())
		Expect(errors.Is(err, dynamo.ErrDegenerateGeometry)).To(BeFalse())

		var simErr *dynamo.SimulationError
		Expect(errors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Frame).To(Equal(0))
		Expect(loop.Phase()).To(Equal(sim.Stopped))

		records, err := telemetry.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(BeEmpty())
	})

	It("notifies observers before the frame is drawn", func() {
		earth, err := scenario.FromPreset("earth", scenario.Center(800, 600))
		Expect(err).NotTo(HaveOccurred())

		events := &eventLog{}
		loop := sim.New(sim.Config{TelemetryPath: path, Renderer: loggingRenderer{events}})
		loop.AddObserver(loggingObserver{events})
		Expect(loop.Start(earth)).To(Succeed())

		for range 2 {
			_, err := loop.Step()
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(events.events).To(Equal([]string{"observe 0", "render", "observe 1", "render"}))
	})
})
