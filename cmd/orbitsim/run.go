package main

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/gui"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
)

const windowTitle = "Orbit Simulation"

// session carries what one run needs besides the scenario.
type session struct {
	cfg       *config.Config
	logger    log.Logger
	collector *metrics.Collector
	maxFrames int
}

func (o *options) newSession() (*session, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(o.stderr, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	s := &session{cfg: cfg, logger: logger, maxFrames: o.v.GetInt("frames")}
	cleanup := func() {}
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		s.collector, err = metrics.NewCollector(reg)
		if err != nil {
			return nil, nil, err
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.collector.Handler())
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				level.Error(logger).Log("msg", "metrics server failed", "addr", cfg.MetricsAddr, "err", err)
			}
		}()
		level.Info(logger).Log("msg", "serving metrics", "addr", cfg.MetricsAddr)
		cleanup = func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}
	}
	return s, cleanup, nil
}

func (s *session) clock() sim.Clock {
	if s.cfg.FPS <= 0 {
		return sim.Unthrottled{}
	}
	return sim.NewTickerClock(s.cfg.FPS)
}

// newLoop builds a loop for sc with the standard metrics attached. stop may
// be nil.
func (s *session) newLoop(sc config.ScenarioConfig, r sim.Renderer, clock sim.Clock, stop func() bool) (*sim.Loop, scenario.Descriptor, error) {
	desc, err := scenario.Build(sc, scenario.Center(s.cfg.Surface.Width, s.cfg.Surface.Height))
	if err != nil {
		return nil, scenario.Descriptor{}, err
	}

	var loop *sim.Loop
	loop = sim.New(sim.Config{
		TelemetryPath: s.cfg.TelemetryPath,
		Renderer:      r,
		Clock:         clock,
		Logger:        s.logger,
		StopSignal: func() bool {
			if s.maxFrames > 0 && loop.State().Frame >= s.maxFrames {
				return true
			}
			return stop != nil && stop()
		},
	})
	body := physics.NewTwoBody(desc.PlanetPosition, desc.PlanetMass, desc.SpacecraftMass)
	for _, m := range metrics.Standard(metrics.NewEnergyDrift(body)) {
		loop.AddMetric(m)
	}
	if s.collector != nil {
		loop.AddObserver(s.collector)
	}
	return loop, desc, nil
}

// execute runs sc to completion on the configured renderer.
func (s *session) execute(ctx context.Context, sc config.ScenarioConfig) (*sim.Loop, error) {
	switch s.cfg.Renderer {
	case "tui":
		r := viz.NewCanvasRenderer(80, 24, s.cfg.Surface.Width, s.cfg.Surface.Height)
		loop, desc, err := s.newLoop(sc, r, sim.Unthrottled{}, nil)
		if err != nil {
			return nil, err
		}
		if err := loop.Start(desc); err != nil {
			return loop, err
		}
		live, err := viz.RunLive(loop, r, s.cfg.FPS, s.maxFrames, tea.WithAltScreen(), tea.WithContext(ctx))
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return loop, err
		}
		loop.Stop()
		return loop, live.Err()

	case "window":
		win := gui.Open(s.cfg.Surface.Width, s.cfg.Surface.Height, windowTitle)
		defer win.Close()
		clock := s.clock()
		if tc, ok := clock.(*sim.TickerClock); ok {
			defer tc.Stop()
		}
		loop, desc, err := s.newLoop(sc, win, clock, win.Closed)
		if err != nil {
			return nil, err
		}
		loop.AddObserver(win)
		if err := loop.Start(desc); err != nil {
			return loop, err
		}
		return loop, loop.Run(ctx)

	default:
		clock := s.clock()
		if tc, ok := clock.(*sim.TickerClock); ok {
			defer tc.Stop()
		}
		loop, desc, err := s.newLoop(sc, nil, clock, nil)
		if err != nil {
			return nil, err
		}
		if err := loop.Start(desc); err != nil {
			return loop, err
		}
		return loop, loop.Run(ctx)
	}
}

// finish reports and archives a run. runErr is returned unchanged.
func (o *options) finish(s *session, loop *sim.Loop, runErr error) error {
	if loop == nil || loop.Phase() == sim.AwaitingScenario {
		return runErr
	}
	level.Info(s.logger).Log("msg", "run finished", "scenario", loop.Descriptor().Name,
		"frames", loop.State().Frame, "telemetry", s.cfg.TelemetryPath)

	w := tabwriter.NewWriter(o.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "scenario\t%s\n", loop.Descriptor().Name)
	fmt.Fprintf(w, "frames\t%d\n", loop.State().Frame)
	for _, name := range slices.Sorted(maps.Keys(loop.Metrics())) {
		fmt.Fprintf(w, "%s\t%.6g\n", name, loop.Metrics()[name])
	}
	if runErr != nil {
		fmt.Fprintf(w, "error\t%v\n", runErr)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if s.cfg.ArchiveDir != "" {
		st := storage.New(s.cfg.ArchiveDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := storage.RunMetadata{
			Scenario: scenarioOf(loop),
			Frames:   loop.State().Frame,
			FPS:      s.cfg.FPS,
			Metrics:  loop.Metrics(),
		}
		if runErr != nil {
			meta.Error = runErr.Error()
		}
		id, err := st.Save(meta, s.cfg.TelemetryPath)
		if err != nil {
			level.Error(s.logger).Log("msg", "archive failed", "err", err)
		} else {
			level.Info(s.logger).Log("msg", "run archived", "id", id)
		}
	}
	return runErr
}

func scenarioOf(loop *sim.Loop) config.ScenarioConfig {
	return scenario.Physical(loop.Descriptor())
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSimulation(o *options) error {
	s, cleanup, err := o.newSession()
	if err != nil {
		return err
	}
	defer cleanup()

	sc := s.cfg.Scenario
	if o.v.GetBool("custom") {
		sc, err = scenario.NewPrompter(o.stdin, o.stdout).Custom()
		if err != nil {
			return err
		}
	}

	ctx, stop := signalContext()
	defer stop()
	loop, err := s.execute(ctx, sc)
	return o.finish(s, loop, err)
}

// runInteractive asks for a scenario first: a Bubble Tea menu for the tui
// renderer, line prompts otherwise.
func runInteractive(o *options) error {
	s, cleanup, err := o.newSession()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signalContext()
	defer stop()

	if s.cfg.Renderer == "tui" {
		launch := func(sc config.ScenarioConfig, r sim.Renderer) (*sim.Loop, error) {
			loop, desc, err := s.newLoop(sc, r, sim.Unthrottled{}, nil)
			if err != nil {
				return nil, err
			}
			return loop, loop.Start(desc)
		}
		app, err := viz.Run(launch, viz.AppOptions{
			SurfaceW:  s.cfg.Surface.Width,
			SurfaceH:  s.cfg.Surface.Height,
			FPS:       s.cfg.FPS,
			MaxFrames: s.maxFrames,
		}, tea.WithAltScreen(), tea.WithContext(ctx))
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		if !app.Started() {
			fmt.Fprintln(o.stdout, "Exiting program.")
			return nil
		}
		loop := app.Live().Loop()
		loop.Stop()
		return o.finish(s, loop, app.Live().Err())
	}

	sc, ok, err := scenario.NewPrompter(o.stdin, o.stdout).Select()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(o.stdout, "Exiting program.")
		return nil
	}
	loop, err := s.execute(ctx, sc)
	return o.finish(s, loop, err)
}
