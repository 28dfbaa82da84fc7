package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/orbitsim/internal/config"
)

// raylib must own the main OS thread.
func init() { runtime.LockOSThread() }

type options struct {
	v      *viper.Viper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	o := &options{v: viper.New(), stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := newRootCmd(o).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(o *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "two-body orbit simulator",
		Long: "orbitsim flies one spacecraft around a fixed planet under Newtonian gravity,\n" +
			"renders it in real time and logs every frame to a CSV telemetry file.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(o)
		},
	}
	rootCmd.SetOut(o.stdout)
	rootCmd.SetErr(o.stderr)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file path (yaml)")
	pf.String("log-level", config.DefaultLogLevel, "debug, info, warn or error")
	pf.String("telemetry", config.DefaultTelemetryPath, "telemetry log path")
	pf.Int("fps", config.DefaultFPS, "frame rate cap, 0 runs unthrottled")
	pf.String("renderer", config.DefaultRenderer, "window, tui or none")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address")
	pf.String("archive", "", "archive finished runs under this directory")
	bindFlags(o.v, pf.VisitAll)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(o)
		},
	}
	runCmd.Flags().String("preset", "", "built-in scenario (see presets)")
	runCmd.Flags().Bool("custom", false, "enter the scenario on stdin")
	runCmd.Flags().Int("frames", 0, "stop after this many frames, 0 runs until closed")
	bindFlags(o.v, runCmd.Flags().VisitAll)

	rootCmd.AddCommand(
		runCmd,
		newPresetsCmd(o),
		newPlotCmd(o),
		newAnalyzeCmd(o),
		newExportJSONCmd(o),
		newExportSVGCmd(o),
		newRunsCmd(o),
	)
	return rootCmd
}

// loadConfig layers the config file, ORBITSIM_* environment variables and
// explicitly set flags, in that order.
func (o *options) loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := o.v.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if o.v.IsSet("fps") {
		cfg.FPS = o.v.GetInt("fps")
	}
	if o.v.IsSet("telemetry") {
		cfg.TelemetryPath = o.v.GetString("telemetry")
	}
	if o.v.IsSet("renderer") {
		cfg.Renderer = o.v.GetString("renderer")
	}
	if o.v.IsSet("metrics-addr") {
		cfg.MetricsAddr = o.v.GetString("metrics-addr")
	}
	if o.v.IsSet("log-level") {
		cfg.LogLevel = o.v.GetString("log-level")
	}
	if o.v.IsSet("archive") {
		cfg.ArchiveDir = o.v.GetString("archive")
	}

	if name := o.v.GetString("preset"); name != "" {
		sc := config.GetPreset(name)
		if sc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		cfg.Scenario = *sc
	}

	switch cfg.Renderer {
	case "window", "tui", "none":
	default:
		return nil, fmt.Errorf("unknown renderer: %s", cfg.Renderer)
	}
	if cfg.Surface.Width <= 0 || cfg.Surface.Height <= 0 {
		return nil, fmt.Errorf("invalid surface %dx%d", cfg.Surface.Width, cfg.Surface.Height)
	}
	return cfg, nil
}

func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var opt level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		opt = level.AllowDebug()
	case "info", "":
		opt = level.AllowInfo()
	case "warn", "warning":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, fmt.Errorf("unknown log level: %s", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, opt), nil
}
