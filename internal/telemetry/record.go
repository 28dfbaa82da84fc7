package telemetry

import (
	"fmt"
	"strconv"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/units"
)

// Header is the first row of every telemetry log.
var Header = []string{
	"Frame",
	"Satellite X (km)",
	"Satellite Y (km)",
	"Velocity X (km/s)",
	"Velocity Y (km/s)",
	"Force X (N)",
	"Force Y (N)",
	"Total Distance (km)",
	"Total Velocity (km/s)",
	"Total Acceleration (km/s²)",
}

// Record is one telemetry row in physical units.
type Record struct {
	Frame       int         `json:"frame"`
	Position    dynamo.Vec2 `json:"position_km"`
	Velocity    dynamo.Vec2 `json:"velocity_km_s"`
	Force       dynamo.Vec2 `json:"force_n"`
	Distance    float64     `json:"distance_km"`
	Speed       float64     `json:"speed_km_s"`
	AccelChange float64     `json:"accel_change_km_s2"`
}

// RecordFrom builds a record from display-unit quantities. Force is passed
// through unconverted.
func RecordFrom(frame int, pos, vel, force dynamo.Vec2, distance, speed, accelChange float64) Record {
	return Record{
		Frame:       frame,
		Position:    units.VecToPhysical(pos),
		Velocity:    units.VecToPhysical(vel),
		Force:       force,
		Distance:    units.ToPhysical(distance),
		Speed:       units.ToPhysical(speed),
		AccelChange: units.AccelToPhysical(accelChange),
	}
}

// Row formats the record in Header order.
func (r Record) Row() []string {
	return []string{
		strconv.Itoa(r.Frame),
		formatFloat(r.Position.X),
		formatFloat(r.Position.Y),
		formatFloat(r.Velocity.X),
		formatFloat(r.Velocity.Y),
		formatFloat(r.Force.X),
		formatFloat(r.Force.Y),
		formatFloat(r.Distance),
		formatFloat(r.Speed),
		formatFloat(r.AccelChange),
	}
}

func parseRow(row []string) (Record, error) {
	if len(row) != len(Header) {
		return Record{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(row))
	}
	frame, err := strconv.Atoi(row[0])
	if err != nil {
		return Record{}, fmt.Errorf("frame: %w", err)
	}

	vals := make([]float64, len(row)-1)
	for i, field := range row[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Record{}, fmt.Errorf("%s: %w", Header[i+1], err)
		}
		vals[i] = v
	}

	return Record{
		Frame:       frame,
		Position:    dynamo.V(vals[0], vals[1]),
		Velocity:    dynamo.V(vals[2], vals[3]),
		Force:       dynamo.V(vals[4], vals[5]),
		Distance:    vals[6],
		Speed:       vals[7],
		AccelChange: vals[8],
	}, nil
}

// shortest representation that parses back to the same float
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
