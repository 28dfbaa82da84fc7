package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitsim/internal/analysis"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/telemetry"
	"github.com/san-kum/orbitsim/internal/units"
)

// logSource is a telemetry log plus the scenario that produced it.
type logSource struct {
	path     string
	scenario config.ScenarioConfig
	records  []telemetry.Record
	center   dynamo.Vec2
}

// openLog reads the archived log of runID, or the configured telemetry log
// when runID is empty.
func (o *options) openLog(runID string) (*logSource, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	src := &logSource{path: cfg.TelemetryPath, scenario: cfg.Scenario}
	if runID != "" {
		if cfg.ArchiveDir == "" {
			return nil, fmt.Errorf("--run needs an archive directory (--archive)")
		}
		st := storage.New(cfg.ArchiveDir)
		meta, err := st.Load(runID)
		if err != nil {
			return nil, err
		}
		src.path, src.scenario = st.TelemetryPath(runID), meta.Scenario
	}

	src.records, err = telemetry.Load(src.path)
	if err != nil {
		return nil, err
	}
	src.center = units.VecToPhysical(scenario.Center(cfg.Surface.Width, cfg.Surface.Height))
	return src, nil
}

func newPresetsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(o.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE\tPLANET MASS\tRADIUS\tCRAFT MASS\tPOSITION\tVELOCITY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%g kg\t%g km\t%g kg\t(%g, %g) km\t(%g, %g) km/s\n",
					name, p.Name, p.PlanetMass, p.PlanetRadius, p.SpacecraftMass,
					p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y)
			}
			return w.Flush()
		},
	}
}

func newPlotCmd(o *options) *cobra.Command {
	var runID string
	cmd := &cobra.Command{
		Use:   "plot [column...]",
		Short: "plot telemetry columns",
		Long:  fmt.Sprintf("plot telemetry columns against frame number; columns: %v", telemetry.Columns),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := o.openLog(runID)
			if err != nil {
				return err
			}
			if len(src.records) == 0 {
				return fmt.Errorf("no data to plot")
			}
			if len(args) == 0 {
				args = []string{"distance", "speed"}
			}

			fmt.Fprintf(o.stdout, "log: %s\n", src.path)
			fmt.Fprintf(o.stdout, "scenario: %s\n", src.scenario.Name)
			fmt.Fprintf(o.stdout, "frames: %d\n\n", len(src.records))
			for _, name := range args {
				data, err := telemetry.Column(src.records, name)
				if err != nil {
					return err
				}
				graph := asciigraph.Plot(data,
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption(name+" vs frame"),
				)
				fmt.Fprintln(o.stdout, graph)
				fmt.Fprintln(o.stdout)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "archived run id")
	return cmd
}

func newAnalyzeCmd(o *options) *cobra.Command {
	var (
		runID      string
		asJSON     bool
		trajectory bool
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "summarise a telemetry log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := o.openLog(runID)
			if err != nil {
				return err
			}
			rep, err := analysis.Analyze(src.records, src.center)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(o.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			return printReport(o.stdout, src, rep, trajectory)
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "archived run id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&trajectory, "trajectory", false, "draw the flown path")
	return cmd
}

func printReport(out io.Writer, src *logSource, rep analysis.Report, trajectory bool) error {
	fmt.Fprintf(out, "analysis: %s\n", src.path)
	fmt.Fprintf(out, "scenario: %s\n\n", src.scenario.Name)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tMIN\tMAX\tMEAN\tSTD")
	for _, row := range []struct {
		name string
		s    analysis.Summary
	}{
		{"distance (km)", rep.Distance},
		{"speed (km/s)", rep.Speed},
		{"accel change (km/s²)", rep.AccelChange},
	} {
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.6g\t%.6g\n", row.name, row.s.Min, row.s.Max, row.s.Mean, row.s.StdDev)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nframes: %d\n", rep.Frames)
	if src.scenario.PlanetRadius > 0 {
		fmt.Fprintf(out, "lowest altitude: %.1f km\n", rep.Distance.Min-src.scenario.PlanetRadius)
	}
	fmt.Fprintf(out, "revolutions: %d\n", rep.Revolutions)
	if rep.CrossingPeriod > 0 {
		fmt.Fprintf(out, "period (crossings): %.1f frames\n", rep.CrossingPeriod)
	}
	if rep.SpectralPeriod > 0 {
		fmt.Fprintf(out, "period (spectrum): %.1f frames\n", rep.SpectralPeriod)
	}

	if len(src.records) >= 4 {
		xs, _ := telemetry.Column(src.records, "x")
		ps := analysis.PowerSpectrum(xs)
		if len(ps) > 1 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, asciigraph.Plot(ps[1:],
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption("power spectrum (x)"),
			))
		}
	}

	if trajectory {
		path := make([]dynamo.Vec2, len(src.records))
		for i, r := range src.records {
			path[i] = r.Position
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, analysis.TrajectoryASCII(path, src.center, 80, 30))
	}
	return nil
}

func newExportJSONCmd(o *options) *cobra.Command {
	var runID string
	cmd := &cobra.Command{
		Use:   "export-json",
		Short: "print a telemetry log as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := o.openLog(runID)
			if err != nil {
				return err
			}
			return telemetry.ExportJSON(o.stdout, src.path, src.records)
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "archived run id")
	return cmd
}

func newExportSVGCmd(o *options) *cobra.Command {
	var (
		runID         string
		out           string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "export-svg",
		Short: "draw the flown path as SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := o.openLog(runID)
			if err != nil {
				return err
			}
			path := make([]dynamo.Vec2, len(src.records))
			for i, r := range src.records {
				path[i] = r.Position
			}
			tr := export.Trajectory{
				Path:         path,
				Center:       src.center,
				PlanetRadius: src.scenario.PlanetRadius,
				Title:        src.scenario.Name,
			}

			var w io.Writer = o.stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return export.TrajectoryToSVG(w, tr, width, height)
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "archived run id")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&width, "width", 800, "image width")
	cmd.Flags().IntVar(&height, "height", 600, "image height")
	return cmd
}

func newRunsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig()
			if err != nil {
				return err
			}
			if cfg.ArchiveDir == "" {
				return fmt.Errorf("no archive directory configured (--archive)")
			}
			runs, err := storage.New(cfg.ArchiveDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(o.stdout, "no runs found")
				return nil
			}

			w := tabwriter.NewWriter(o.stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFRAMES\tSTATUS")
			for _, run := range runs {
				status := "ok"
				if run.Error != "" {
					status = run.Error
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					run.ID,
					run.Scenario.Name,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Frames,
					status,
				)
			}
			return w.Flush()
		},
	}
}
