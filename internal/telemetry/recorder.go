package telemetry

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

// DefaultPath is the log location relative to the working directory.
const DefaultPath = "simulation_data.csv"

// Recorder owns one telemetry log file. Each Append opens the file, writes
// one row, syncs and closes, so a row is on disk before the next frame runs.
type Recorder struct {
	path string
	rows int
}

// Create truncates (or creates) the log at path and writes the header.
func Create(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", dynamo.ErrTelemetry, path, err)
	}
	if err := writeRow(f, Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: header: %w", dynamo.ErrTelemetry, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %w", dynamo.ErrTelemetry, path, err)
	}
	return &Recorder{path: path}, nil
}

// Append writes one record durably. The file must still exist: a log removed
// mid-run is an error, not a fresh file.
func (r *Recorder) Append(rec Record) error {
	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", dynamo.ErrTelemetry, r.path, err)
	}
	if err := writeRow(f, rec.Row()); err != nil {
		f.Close()
		return fmt.Errorf("%w: frame %d: %w", dynamo.ErrTelemetry, rec.Frame, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", dynamo.ErrTelemetry, r.path, err)
	}
	r.rows++
	return nil
}

func (r *Recorder) Path() string { return r.path }

// Rows is the number of data rows appended so far.
func (r *Recorder) Rows() int { return r.rows }

func writeRow(f *os.File, row []string) error {
	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}
