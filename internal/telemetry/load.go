package telemetry

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// Load reads a telemetry log back into records.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Header)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty log", path)
	}
	if !slices.Equal(rows[0], Header) {
		return nil, fmt.Errorf("%s: unexpected header %v", path, rows[0])
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", path, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Columns lists the numeric series that can be extracted with Column.
var Columns = []string{"x", "y", "vx", "vy", "fx", "fy", "distance", "speed", "accel"}

// Column extracts one series by name.
func Column(records []Record, name string) ([]float64, error) {
	var get func(Record) float64
	switch name {
	case "x":
		get = func(r Record) float64 { return r.Position.X }
	case "y":
		get = func(r Record) float64 { return r.Position.Y }
	case "vx":
		get = func(r Record) float64 { return r.Velocity.X }
	case "vy":
		get = func(r Record) float64 { return r.Velocity.Y }
	case "fx":
		get = func(r Record) float64 { return r.Force.X }
	case "fy":
		get = func(r Record) float64 { return r.Force.Y }
	case "distance":
		get = func(r Record) float64 { return r.Distance }
	case "speed":
		get = func(r Record) float64 { return r.Speed }
	case "accel":
		get = func(r Record) float64 { return r.AccelChange }
	default:
		return nil, fmt.Errorf("unknown column %q (available: %v)", name, Columns)
	}

	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = get(r)
	}
	return out, nil
}

type exportData struct {
	Source  string   `json:"source"`
	Frames  int      `json:"frames"`
	Records []Record `json:"records"`
}

// ExportJSON writes the records as indented JSON.
func ExportJSON(w io.Writer, source string, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData{Source: source, Frames: len(records), Records: records})
}
